package config

import (
	"errors"
	"fmt"
)

// Invocation is the fully resolved (directory, command) pair for one run.
// Dir may be relative to the project root or absolute; Argv is the
// program followed by its arguments.
type Invocation struct {
	Dir  string
	Argv []string
}

// MissingArgumentError reports that neither the CLI nor the store could
// supply a required field.
type MissingArgumentError struct {
	Field string // "dir" or "command"
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required argument %q: pass it explicitly or persist it with a previous run", e.Field)
}

// Reconcile merges explicit CLI arguments with stored configuration under
// the precedence explicit > stored. A store miss (ErrKeyNotFound) counts
// as "no stored value"; any other store failure propagates. Both fields
// must resolve or the run stops before any side effect.
func Reconcile(st Store, feature, cliDir string, cliArgv []string) (Invocation, error) {
	inv := Invocation{Dir: cliDir, Argv: cliArgv}

	if inv.Dir == "" {
		v, err := st.Get(feature, KeyDir)
		switch {
		case err == nil:
			inv.Dir = v
		case errors.Is(err, ErrKeyNotFound):
			// leave absent
		default:
			return Invocation{}, err
		}
	}

	if len(inv.Argv) == 0 {
		v, err := st.Get(feature, KeyCommand)
		switch {
		case err == nil:
			argv, perr := SplitCommand(v)
			if perr != nil {
				return Invocation{}, &IOError{Op: "get", Key: KeyCommand, Err: perr}
			}
			inv.Argv = argv
		case errors.Is(err, ErrKeyNotFound):
			// leave absent
		default:
			return Invocation{}, err
		}
	}

	if inv.Dir == "" {
		return Invocation{}, &MissingArgumentError{Field: "dir"}
	}
	if len(inv.Argv) == 0 {
		return Invocation{}, &MissingArgumentError{Field: "command"}
	}
	return inv, nil
}

// Persist writes the reconciled pair back to the store, so a later bare
// invocation in the same namespace replays the identical run.
func Persist(st Store, feature string, inv Invocation) error {
	if err := st.Set(feature, KeyDir, inv.Dir); err != nil {
		return err
	}
	return st.Set(feature, KeyCommand, JoinCommand(inv.Argv))
}
