package area

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldKey returns the case-insensitive identity of a creature name.
func foldKey(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

// NormalizeToFirst rewrites every case variant of a name to the spelling
// seen first, keeping sequence order and length.
func NormalizeToFirst(items []string) []string {
	first := make(map[string]string, len(items))
	out := make([]string, len(items))
	for i, item := range items {
		key := foldKey(item)
		canon, ok := first[key]
		if !ok {
			canon = item
			first[key] = item
		}
		out[i] = canon
	}
	return out
}

// Uniques returns the case-insensitively distinct names in first-seen order,
// each in its first-seen spelling.
func Uniques(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		key := foldKey(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
