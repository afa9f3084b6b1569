package config

import (
	"errors"
	"fmt"
)

// Keys persisted for the clean workflow, scoped by feature namespace.
const (
	KeyDir     = "clean.dir"
	KeyCommand = "clean"
)

// DefaultFeature is the namespace used when none is selected.
const DefaultFeature = "default"

// Sentinel errors for store failures distinguishable with errors.Is.
var (
	// ErrKeyNotFound means the store is reachable but has no value for
	// the requested key. Reconciliation treats this as "no stored value";
	// every other store failure propagates.
	ErrKeyNotFound = errors.New("config key not found")

	// ErrToolNotFound means the external config tool is missing or not
	// executable.
	ErrToolNotFound = errors.New("config tool not found")
)

// Store is the key-value capability backing persisted clean settings.
type Store interface {
	// Get returns the value for key in the feature namespace, or an
	// error wrapping ErrKeyNotFound when the key has no value.
	Get(feature, key string) (string, error)

	// Set persists value for key in the feature namespace.
	Set(feature, key, value string) error
}

// IOError is a read or write failure against the config store that is
// not a missing key.
type IOError struct {
	Op  string // "get" or "set"
	Key string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("config %s %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
