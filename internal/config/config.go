// Package config holds the explicit configuration passed to the area
// aggregator and CLI commands.
//
// Sources, lowest to highest precedence: Default(), an optional CUE file,
// SPAWNGEN_* environment variables, then CLI flags applied by the caller.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/caarlos0/env/v11"

	"github.com/roach88/spawngen/internal/apportion"
	"github.com/roach88/spawngen/internal/override"
)

//go:embed schema.cue
var schemaCUE string

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "SPAWNGEN_"

// Config is the full generator configuration.
type Config struct {
	// GamePath is the game install directory. Relative table paths resolve
	// against it.
	GamePath string `json:"game_path" env:"GAME_PATH"`

	PristineTable string `json:"pristine_table" env:"PRISTINE_TABLE"`
	OutputTable   string `json:"output_table" env:"OUTPUT_TABLE"`

	// FeedPath and OverridesPath resolve against the working directory.
	FeedPath      string `json:"feed_path" env:"FEED_PATH"`
	OverridesPath string `json:"overrides_path" env:"OVERRIDES_PATH"`

	// Database is an optional run history SQLite path.
	Database string `json:"database" env:"DATABASE"`

	DefaultDifficulty int `json:"default_difficulty" env:"DEFAULT_DIFFICULTY"`
	Capacity          int `json:"capacity" env:"CAPACITY"`

	// MinDistinct is the distinct-creature count below which an area pool is
	// widened with neighboring areas.
	MinDistinct int `json:"min_distinct" env:"MIN_DISTINCT"`

	GroupPrefix string `json:"group_prefix" env:"GROUP_PREFIX"`
	Strategy    string `json:"strategy" env:"STRATEGY"`
	ColumnWidth int    `json:"column_width" env:"COLUMN_WIDTH"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		PristineTable:     filepath.Join("override.pristine", "SPAWNGRP.2da"),
		OutputTable:       filepath.Join("override", "SPAWNGRP.2da"),
		FeedPath:          filepath.Join("bin", "actor_stats.json"),
		DefaultDifficulty: 10,
		Capacity:          8,
		MinDistinct:       4,
		GroupPrefix:       "RD",
		Strategy:          apportion.NameStealByRatio,
		ColumnWidth:       10,
	}
}

// LoadFile overlays the CUE file at path onto c. The file is unified with
// the embedded schema before decoding, so type and range errors surface
// with CUE positions.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return fmt.Errorf("compile config %s: %w", path, err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("validate config %s: %w", path, err)
	}
	if err := unified.Decode(c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// FromEnv overlays SPAWNGEN_* variables from environ onto c. A nil environ
// reads the process environment.
func (c *Config) FromEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks numeric bounds and the strategy name.
func (c Config) Validate() error {
	var errs []error
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("capacity %d: %w", c.Capacity, apportion.ErrInvalidCapacity))
	}
	if c.DefaultDifficulty <= override.MinDifficulty || c.DefaultDifficulty >= override.MaxDifficulty {
		errs = append(errs, fmt.Errorf("default difficulty %d out of range (%d, %d)", c.DefaultDifficulty, override.MinDifficulty, override.MaxDifficulty))
	}
	if c.MinDistinct < 0 {
		errs = append(errs, fmt.Errorf("min distinct %d is negative", c.MinDistinct))
	}
	if c.ColumnWidth < 1 {
		errs = append(errs, fmt.Errorf("column width %d must be positive", c.ColumnWidth))
	}
	if _, err := apportion.Lookup(c.Strategy); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Resolve joins a relative table path with GamePath.
func (c Config) Resolve(path string) string {
	if filepath.IsAbs(path) || c.GamePath == "" {
		return path
	}
	return filepath.Join(c.GamePath, path)
}

// Load builds a configuration from defaults, the optional CUE file at path
// (skipped when empty) and the process environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.FromEnv(nil); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
