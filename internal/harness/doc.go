// Package harness provides conformance scenarios for the apportionment
// engine.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: designer_list
//	description: "What this scenario validates"
//	strategy: steal-by-ratio     # optional, defaults to steal-by-ratio
//	capacity: 8
//	items: [Adam, Adam, Eve]     # ordered multiset, or
//	counts:                      # ordered item: occurrences mapping
//	  Adam: 6
//	  Eve: 3
//	expect:
//	  roster: [Adam, Adam, Adam, Eve, Eve, Eve, "*", "*"]
//	  slots: { Adam: 3, Eve: 3 }
//	  dropped: []
//	  unrepaired: []
//	  distinct_all: true
//
// counts expands in mapping order, so first-seen order is the order keys
// are written in. Every expect field is optional; only given fields are
// checked.
//
// # Golden Files
//
// RunWithGolden snapshots the result as indented JSON and compares it via
// goldie against testdata/golden/{scenario.Name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
