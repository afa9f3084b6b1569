package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

const (
	// EnvConfigTool overrides the config-store executable.
	EnvConfigTool = "SWEEP_CONFIG"

	// DefaultTool is the executable resolved on PATH when no override is
	// set.
	DefaultTool = "sweep-config"
)

// ResolveToolPath picks the config-store executable: environment
// override, then the project settings value, then the well-known name.
func ResolveToolPath(settingsTool string) string {
	if v := os.Getenv(EnvConfigTool); v != "" {
		return v
	}
	if settingsTool != "" {
		return settingsTool
	}
	return DefaultTool
}

// ToolStore persists settings by invoking the external config tool.
//
// Protocol:
//
//	<tool> get --feature <ns> <key>          value on stdout, exit 1 = absent
//	<tool> set --feature <ns> <key> <value>
type ToolStore struct {
	path string
	dir  string // working directory for tool invocations (project root)
}

// NewToolStore probes the tool once with --help and returns a store bound
// to it. A tool that cannot be executed yields ErrToolNotFound.
func NewToolStore(path, dir string) (*ToolStore, error) {
	cmd := exec.Command(path, "--help")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		slog.Debug("config tool probe failed", "path", path, "output", string(out), "error", err)
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, path)
	}
	return &ToolStore{path: path, dir: dir}, nil
}

func (s *ToolStore) Get(feature, key string) (string, error) {
	cmd := exec.Command(s.path, "get", "--feature", feature, key)
	cmd.Dir = s.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", fmt.Errorf("%w: %s/%s", ErrKeyNotFound, feature, key)
		}
		return "", &IOError{Op: "get", Key: key, Err: toolErr(err, stderr.String())}
	}

	return strings.TrimRight(stdout.String(), "\r\n"), nil
}

func (s *ToolStore) Set(feature, key, value string) error {
	cmd := exec.Command(s.path, "set", "--feature", feature, key, value)
	cmd.Dir = s.dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &IOError{Op: "set", Key: key, Err: toolErr(err, stderr.String())}
	}
	return nil
}

// toolErr folds the tool's stderr into the error when it said anything.
func toolErr(err error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return err
	}
	return fmt.Errorf("%v: %s", err, stderr)
}
