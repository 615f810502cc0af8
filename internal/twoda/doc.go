// Package twoda reads and writes the spawn group table, a whitespace
// delimited 2DA file.
//
// Layout:
//
//	2DA V1.0
//	<default value>
//	          GROUP1    GROUP2 ...
//	<label>   <diff1>   <diff2> ...
//	<label>   <slot1>   <slot1> ...     (exactly capacity slot rows)
//
// The first column of every row after the name row is a row label. The name
// row has no label cell.
package twoda
