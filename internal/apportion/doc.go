// Package apportion distributes a fixed number of roster slots among a
// weighted multiset of items.
//
// The pipeline for the default strategy (StealByRatio) is:
//   - Count: reduce the input sequence to item → occurrences, first-seen order kept
//   - Reduce: drop the least frequent items until at most capacity distinct remain
//   - Allocate: floor each ideal share, hand leftover slots to the largest remainders
//   - Repair: lift zero-slot items to one slot, taking from the most overrepresented donor
//   - Materialize: expand slot counts into a roster of exactly capacity entries
//
// # Determinism
//
// All comparisons use exact integer arithmetic. For an item with count c out of
// total t and capacity n, the ideal share is c*n/t; remainders compare as
// (c*n mod t) and donor surplus compares as (slots*t - c*n). Every tie is
// broken by first-seen order, earliest first.
//
// # Purity
//
// Every call works on call-scoped state only. Strategies are stateless and
// safe for concurrent use.
package apportion
