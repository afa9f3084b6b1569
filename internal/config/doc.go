// Package config reads and writes per-feature clean settings and merges
// them with explicit CLI arguments.
//
// Persistence is owned by an external key-value tool (sweep-config by
// default); this package only speaks its get/set CLI protocol through the
// Store interface. Reconcile applies the precedence explicit argument >
// stored value and refuses to proceed while either the directory or the
// command is still unresolved.
package config
