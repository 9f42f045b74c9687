// This file is part of Pep9.
//
// Pep9 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pep9 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pep9.  If not, see <https://www.gnu.org/licenses/>.

// Package config holds the CLI-tunable knobs for the assembler,
// microassembler and CPU engine. Unlike the teacher's prefs package this
// carries no GUI bindings or on-disk auto-save; it is a plain struct built
// with functional options, with an optional YAML profile for batch runs
// (grounded on the yaml.v3 dependency present elsewhere in the retrieval
// pack).
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pep9sim/pep9/errors"
)

// Config collects the knobs that would otherwise be scattered across CLI
// flags and environment defaults.
type Config struct {
	// ExtendedMicrocode enables the symbolic if/goto/AMD/ISD syntax in the
	// microcode assembler. When false, those tokens are a syntax error.
	ExtendedMicrocode bool `yaml:"extended_microcode"`

	// ForceBurnAtFFFF requires an operating system's .BURN value to be
	// exactly 0xFFFF.
	ForceBurnAtFFFF bool `yaml:"force_burn_at_ffff"`

	// CharInDefault is read, one byte at a time, by CharIn when the CLI was
	// not given an explicit input file. Mirrors the spec's "\n if absent".
	CharInDefault string `yaml:"char_in_default"`

	// CacheTagBits, CacheIndexBits and CacheOffsetBits describe the default
	// cache geometry; they must sum to 16.
	CacheTagBits    uint16 `yaml:"cache_tag_bits"`
	CacheIndexBits  uint16 `yaml:"cache_index_bits"`
	CacheOffsetBits uint16 `yaml:"cache_offset_bits"`

	// CacheAssociativity is the number of ways per cache set.
	CacheAssociativity uint16 `yaml:"cache_associativity"`

	// CacheAgingPeriod is the number of references between LFU-DA
	// normalisation passes, mirroring the magic constant in the original
	// cachealgs.cpp.
	CacheAgingPeriod uint32 `yaml:"cache_aging_period"`

	// RunSliceSize is the number of micro-cycles onRun() executes before
	// yielding control back to the caller.
	RunSliceSize int `yaml:"run_slice_size"`

	// LogCapacity is the number of entries retained by the shared logger.
	LogCapacity int `yaml:"log_capacity"`
}

// Option mutates a Config during construction.
type Option func(*Config)

// Default returns the configuration used when the CLI is given no
// overrides.
func Default() Config {
	return Config{
		ExtendedMicrocode:  true,
		ForceBurnAtFFFF:    false,
		CharInDefault:      "\n",
		CacheTagBits:       9,
		CacheIndexBits:     4,
		CacheOffsetBits:    3,
		CacheAssociativity: 2,
		CacheAgingPeriod:   1024,
		RunSliceSize:       5000,
		LogCapacity:        1000,
	}
}

// New builds a Config from Default with the given options applied.
func New(opts ...Option) Config {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithExtendedMicrocode toggles the symbolic microcode syntax.
func WithExtendedMicrocode(v bool) Option {
	return func(c *Config) { c.ExtendedMicrocode = v }
}

// WithForceBurnAtFFFF toggles the forced burn-address check.
func WithForceBurnAtFFFF(v bool) Option {
	return func(c *Config) { c.ForceBurnAtFFFF = v }
}

// WithCharInDefault sets the fallback CharIn source text.
func WithCharInDefault(v string) Option {
	return func(c *Config) { c.CharInDefault = v }
}

// WithCacheGeometry sets the tag/index/offset bit widths and associativity.
func WithCacheGeometry(tag, index, offset, associativity uint16) Option {
	return func(c *Config) {
		c.CacheTagBits = tag
		c.CacheIndexBits = index
		c.CacheOffsetBits = offset
		c.CacheAssociativity = associativity
	}
}

// LoadYAML reads a Config profile from path, starting from Default() so
// that a partial file only overrides what it mentions.
func LoadYAML(path string) (Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Errorf(errors.CannotOpen, path, err)
	}

	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, errors.Errorf(errors.CannotOpen, path, err)
	}

	return c, nil
}

// Validate checks the invariants required by §4.6 of the cache geometry
// and returns a descriptive error if they are violated.
func (c Config) Validate() error {
	if int(c.CacheTagBits)+int(c.CacheIndexBits)+int(c.CacheOffsetBits) != 16 {
		return errors.Errorf(errors.ArgumentOutOfRange, c.CacheTagBits+c.CacheIndexBits+c.CacheOffsetBits, "cache address width")
	}
	if (uint32(1) << c.CacheIndexBits) < uint32(c.CacheAssociativity) {
		return errors.Errorf(errors.ArgumentOutOfRange, c.CacheAssociativity, "cache associativity")
	}
	return nil
}
