package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot is the golden serialization of a scenario outcome. Ideal shares
// are left out so snapshots hold only integers and strings.
type Snapshot struct {
	ScenarioName string         `json:"scenario_name"`
	Strategy     string         `json:"strategy"`
	Capacity     int            `json:"capacity"`
	Roster       []string       `json:"roster"`
	Slots        []SnapshotSlot `json:"slots"`
	Dropped      []string       `json:"dropped"`
	Unrepaired   []string       `json:"unrepaired"`
}

// SnapshotSlot is one materialized item of a Snapshot.
type SnapshotSlot struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
	Slots int    `json:"slots"`
}

// NewSnapshot builds the snapshot of a scenario result.
func NewSnapshot(s *Scenario, r *Result) Snapshot {
	strategy := s.Strategy
	if strategy == "" {
		strategy = "default"
	}
	snap := Snapshot{
		ScenarioName: s.Name,
		Strategy:     strategy,
		Capacity:     s.Capacity,
		Roster:       append([]string{}, r.Outcome.Roster...),
		Slots:        []SnapshotSlot{},
		Dropped:      append([]string{}, r.Outcome.Dropped...),
		Unrepaired:   append([]string{}, r.Outcome.Unrepaired...),
	}
	for _, slot := range r.Outcome.Slots {
		snap.Slots = append(snap.Slots, SnapshotSlot{Item: slot.Item, Count: slot.Count, Slots: slot.Slots})
	}
	return snap
}

// Marshal encodes the snapshot as indented JSON with a trailing newline.
func (s Snapshot) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares the snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	data, err := NewSnapshot(scenario, result).Marshal()
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}

// CompareGolden reports whether the snapshot of result matches the golden
// file at path, for use outside of go test.
func CompareGolden(scenario *Scenario, result *Result, path string) (bool, error) {
	want, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}
	got, err := NewSnapshot(scenario, result).Marshal()
	if err != nil {
		return false, err
	}
	return bytes.Equal(want, got), nil
}

// WriteGolden writes the snapshot of result to path.
func WriteGolden(scenario *Scenario, result *Result, path string) error {
	data, err := NewSnapshot(scenario, result).Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}
