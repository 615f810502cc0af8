package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/spawngen/internal/apportion"
)

// Scenario defines one engine conformance case.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Strategy selects the apportionment strategy. Empty means the default.
	Strategy string `yaml:"strategy,omitempty"`

	// Capacity is the roster size.
	Capacity int `yaml:"capacity"`

	// Items is the input multiset in order.
	Items []string `yaml:"items,omitempty"`

	// Counts is an alternative to Items, expanded in mapping order.
	Counts OrderedCounts `yaml:"counts,omitempty"`

	// Expect holds the checks to run against the result.
	Expect Expect `yaml:"expect"`
}

// Expect lists optional result checks.
type Expect struct {
	// Roster is the exact expected roster.
	Roster []string `yaml:"roster,omitempty"`

	// Slots maps items to expected slot counts in the roster.
	Slots map[string]int `yaml:"slots,omitempty"`

	// Dropped is the expected cardinality reduction drop list.
	Dropped *[]string `yaml:"dropped,omitempty"`

	// Unrepaired is the expected list of items left without a slot.
	Unrepaired *[]string `yaml:"unrepaired,omitempty"`

	// DistinctAll requires every surviving input item to appear in the roster.
	DistinctAll bool `yaml:"distinct_all,omitempty"`
}

// Count is one entry of an OrderedCounts mapping.
type Count struct {
	Item string
	N    int
}

// OrderedCounts is an item → occurrences mapping that keeps YAML key order.
type OrderedCounts []Count

// UnmarshalYAML decodes a mapping node pair by pair so key order survives.
func (c *OrderedCounts) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: counts must be a mapping", node.Line)
	}
	out := make(OrderedCounts, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var entry Count
		if err := node.Content[i].Decode(&entry.Item); err != nil {
			return err
		}
		if err := node.Content[i+1].Decode(&entry.N); err != nil {
			return fmt.Errorf("counts.%s: %w", entry.Item, err)
		}
		if entry.N < 1 {
			return fmt.Errorf("counts.%s: occurrences must be at least 1, got %d", entry.Item, entry.N)
		}
		out = append(out, entry)
	}
	*c = out
	return nil
}

// Expand returns the multiset as an ordered item sequence.
func (c OrderedCounts) Expand() []string {
	var items []string
	for _, entry := range c {
		for i := 0; i < entry.N; i++ {
			items = append(items, entry.Item)
		}
	}
	return items
}

// Input returns the scenario's item sequence.
func (s *Scenario) Input() []string {
	if len(s.Counts) > 0 {
		return s.Counts.Expand()
	}
	return s.Items
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", s.Capacity)
	}

	if len(s.Items) > 0 && len(s.Counts) > 0 {
		return fmt.Errorf("items and counts are mutually exclusive")
	}

	if s.Strategy != "" {
		if _, err := apportion.Lookup(s.Strategy); err != nil {
			return err
		}
	}

	if s.Expect.Roster != nil && len(s.Expect.Roster) != s.Capacity {
		return fmt.Errorf("expect.roster has %d entries, capacity is %d", len(s.Expect.Roster), s.Capacity)
	}

	return nil
}
