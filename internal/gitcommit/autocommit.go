// Package gitcommit records configuration-directory changes as single git
// commits, strictly best-effort: every failure degrades to an Outcome the
// caller can log, never to an error that stops the run.
package gitcommit

import (
	"errors"
	"fmt"
	"os"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	// EnvDisable disables auto-commit. Only the exact values "", "0" and
	// "false" keep it enabled; any other value disables it.
	EnvDisable = "SWEEP_NO_AUTOCOMMIT"

	// DefaultMessagePrefix starts every auto-commit message; a timestamp
	// is appended.
	DefaultMessagePrefix = "sweep: record configuration change"

	fallbackName  = "sweep"
	fallbackEmail = "sweep@localhost"
)

// Status is the terminal state of one auto-commit attempt.
type Status int

const (
	// Committed means exactly one new commit was created.
	Committed Status = iota
	// NoChanges means the repository was present and clean.
	NoChanges
	// Skipped means auto-commit did not apply (disabled, or no
	// repository under the configuration directory).
	Skipped
	// Warned means staging or committing failed; the run continues.
	Warned
)

func (s Status) String() string {
	switch s {
	case Committed:
		return "committed"
	case NoChanges:
		return "no changes"
	case Skipped:
		return "skipped"
	case Warned:
		return "warned"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome describes what the agent did. Reason is set for Skipped, Err
// for Warned, Hash for Committed.
type Outcome struct {
	Status Status
	Reason string
	Err    error
	Hash   string
}

func (o Outcome) String() string {
	switch o.Status {
	case Committed:
		return fmt.Sprintf("committed %s", o.Hash)
	case Skipped:
		return fmt.Sprintf("skipped (%s)", o.Reason)
	case Warned:
		return fmt.Sprintf("warning: %v", o.Err)
	default:
		return o.Status.String()
	}
}

// Agent creates auto-commits in the configuration directory.
type Agent struct {
	messagePrefix string
	now           func() time.Time
	lookupEnv     func(string) (string, bool)
}

// New creates an agent. An empty prefix selects DefaultMessagePrefix.
func New(messagePrefix string) *Agent {
	if messagePrefix == "" {
		messagePrefix = DefaultMessagePrefix
	}
	return &Agent{
		messagePrefix: messagePrefix,
		now:           time.Now,
		lookupEnv:     os.LookupEnv,
	}
}

// enabledValue reports whether an EnvDisable value keeps auto-commit
// enabled. Exact literal match: "", "0", "false".
func enabledValue(v string) bool {
	return v == "" || v == "0" || v == "false"
}

// MaybeCommit stages and commits pending changes under configDir.
// It never returns an error: every failure past the status check becomes
// a Warned outcome, and a missing repository or disabled agent a Skipped
// one.
func (a *Agent) MaybeCommit(configDir string) Outcome {
	if v, ok := a.lookupEnv(EnvDisable); ok && !enabledValue(v) {
		return Outcome{Status: Skipped, Reason: "disabled by " + EnvDisable}
	}

	repo, err := git.PlainOpen(configDir)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Outcome{Status: Skipped, Reason: "no git repository in " + configDir}
		}
		return Outcome{Status: Warned, Err: err}
	}

	wt, err := repo.Worktree()
	if err != nil {
		return Outcome{Status: Warned, Err: err}
	}

	status, err := wt.Status()
	if err != nil {
		return Outcome{Status: Warned, Err: err}
	}
	if status.IsClean() {
		return Outcome{Status: NoChanges}
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return Outcome{Status: Warned, Err: fmt.Errorf("staging changes: %w", err)}
	}

	msg := fmt.Sprintf("%s - %s", a.messagePrefix, a.now().Format("2006-01-02 15:04:05"))
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: a.signature(repo)})
	if err != nil {
		return Outcome{Status: Warned, Err: fmt.Errorf("creating commit: %w", err)}
	}

	return Outcome{Status: Committed, Hash: hash.String()}
}

// signature builds the commit author from the repository's merged git
// config, falling back to a fixed identity when none is set.
func (a *Agent) signature(repo *git.Repository) *object.Signature {
	when := a.now()
	if cfg, err := repo.ConfigScoped(gitconfig.SystemScope); err == nil && cfg.User.Name != "" {
		return &object.Signature{Name: cfg.User.Name, Email: cfg.User.Email, When: when}
	}
	return &object.Signature{Name: fallbackName, Email: fallbackEmail, When: when}
}
