// Package config loads the TOML-based engine configuration: the base
// alphabet an automatic presentation is built over, the padding symbol, and
// a few tuning knobs for minimization and enumeration.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Engine holds the tunable parameters of an automatic presentation engine.
// Zero value is not meant for direct use; call Default or Load.
type Engine struct {
	// Alphabet is the base alphabet relations are encoded over, before the
	// padding symbol is appended. Büchi arithmetic uses {"0","1"}.
	Alphabet []string `toml:"alphabet"`

	// Padding is the distinguished padding symbol appended to the base
	// alphabet to equalize component lengths in a convolution.
	Padding string `toml:"padding"`

	// EagerMinimize records whether automaton results are to be minimized
	// immediately after every operation (default true). It is carried and
	// returned through Structure.Config; nothing in this module reads it,
	// and the compiler and presentation minimize their results regardless.
	EagerMinimize bool `toml:"eager_minimize"`

	// EnumerationHeapCap records a bound on the number of in-flight (word,
	// state) pairs of an enumeration search; 0 means unbounded. It is
	// carried and returned through Structure.Config; the Enumerator does not
	// read it and its heap is never capped.
	EnumerationHeapCap int `toml:"enumeration_heap_cap"`
}

// Default returns the configuration Büchi arithmetic over naturals is built
// with.
func Default() Engine {
	return Engine{
		Alphabet:           []string{"0", "1"},
		Padding:            "*",
		EagerMinimize:      true,
		EnumerationHeapCap: 0,
	}
}

// Load reads and parses a TOML configuration file at path, starting from
// Default and overriding whatever the file specifies.
func Load(path string) (Engine, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Engine{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Engine{}, err
	}
	return cfg, nil
}
