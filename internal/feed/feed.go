// Package feed decodes the per-area actor records feed and folds it into one
// creature pool per area.
package feed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed actor.schema.json
var schemaJSON string

const schemaURL = "spawngen://actor.schema.json"

var actorSchema = jsonschema.MustCompileString(schemaURL, schemaJSON)

// Actor is one placed actor in an area.
type Actor struct {
	Area        string `json:"area"`
	Creature    string `json:"creature_file"`
	Hostile     bool   `json:"hostile"`
	FoundCRE    bool   `json:"found_cre_file"`
	ClassLevels []int  `json:"class_levels,omitempty"`
	PowerLevel  int    `json:"power_level,omitempty"`
	HPMax       int    `json:"hp_max,omitempty"`
}

// CountsAsHostile reports whether the actor enters its area's pool.
// Actors with no creature file are assumed hostile.
func (a Actor) CountsAsHostile() bool {
	return a.Hostile || !a.FoundCRE
}

// Power estimates the actor's strength as the largest of its top class
// level, its power level and an eighth of its maximum hit points.
func (a Actor) Power() float64 {
	power := float64(a.PowerLevel)
	for _, lvl := range a.ClassLevels {
		if float64(lvl) > power {
			power = float64(lvl)
		}
	}
	if hp := float64(a.HPMax) / 8; hp > power {
		power = hp
	}
	return power
}

// ValidationError reports a feed that does not match the actor schema.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid actor feed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Decode validates r against the actor schema and decodes its records.
func Decode(r io.Reader) ([]Actor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read actor feed: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Err: err}
	}
	if err := actorSchema.Validate(doc); err != nil {
		return nil, &ValidationError{Err: err}
	}

	var actors []Actor
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&actors); err != nil {
		return nil, fmt.Errorf("decode actor feed: %w", err)
	}
	return actors, nil
}

// DecodeFile is Decode over the file at path.
func DecodeFile(path string) ([]Actor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open actor feed: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
