// Package area builds one creature pool per area from the actor feed and
// runs the apportionment engine over each of them.
//
// Per area the aggregator:
//   - widens sparse pools with neighboring areas that share a name prefix
//   - folds creature name case variants to their first-seen spelling
//   - apportions the pool into a fixed-size roster
//   - replaces the roster with a manual override when one exists
//
// Areas are independent and are apportioned concurrently.
package area
