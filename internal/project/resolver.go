package project

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvProjectRoot bypasses marker search when it names an existing
	// directory. A value naming anything else is ignored with a warning.
	EnvProjectRoot = "SWEEP_PROJECT_ROOT"

	// ConfigDirName is the directory at the project root that holds the
	// config store's data and its optional git history.
	ConfigDirName = ".sweep"

	// SettingsFileName is the optional project settings file at the root.
	// Its presence also marks a directory as a project root.
	SettingsFileName = ".sweep.yaml"
)

// DefaultMarkers are the entries whose presence identifies a project root.
var DefaultMarkers = []string{ConfigDirName, SettingsFileName}

// Resolver finds the project root for a working directory.
type Resolver struct {
	fs        FS
	markers   []string
	lookupEnv func(string) (string, bool)
}

// NewResolver creates a resolver over the real filesystem and process
// environment with the default marker set.
func NewResolver() *Resolver {
	return &Resolver{fs: osFS{}, markers: DefaultMarkers, lookupEnv: os.LookupEnv}
}

// NewResolverWithFS creates a resolver with explicit dependencies.
// A nil lookupEnv disables the environment override.
func NewResolverWithFS(fs FS, markers []string, lookupEnv func(string) (string, bool)) *Resolver {
	if lookupEnv == nil {
		lookupEnv = func(string) (string, bool) { return "", false }
	}
	return &Resolver{fs: fs, markers: markers, lookupEnv: lookupEnv}
}

// Resolve returns the project root for cwd. It always returns a root:
// the environment override when valid, else the nearest ancestor
// (including cwd) containing a marker, else cwd itself.
func (r *Resolver) Resolve(cwd string) string {
	if v, ok := r.lookupEnv(EnvProjectRoot); ok && v != "" {
		root := v
		if !filepath.IsAbs(root) {
			root = filepath.Join(cwd, root)
		}
		if r.fs.IsDir(root) {
			slog.Debug("using project root override", "root", root)
			return root
		}
		slog.Warn("project root override is not a directory, falling back to marker search",
			"var", EnvProjectRoot, "value", v)
	}

	for dir := cwd; ; {
		if r.hasMarker(dir) {
			slog.Debug("found project marker", "root", dir)
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	slog.Debug("no project marker found, using working directory", "dir", cwd)
	return cwd
}

// hasMarker reports whether dir contains any root marker. The config
// directory marker must actually be a directory; file markers need only
// exist.
func (r *Resolver) hasMarker(dir string) bool {
	for _, m := range r.markers {
		p := filepath.Join(dir, m)
		if m == ConfigDirName {
			if r.fs.IsDir(p) {
				return true
			}
			continue
		}
		if r.fs.Exists(p) {
			return true
		}
	}
	return false
}

// RelativeDir returns cwd relative to root for display and config
// namespacing: "." when cwd is the root itself, and the absolute cwd when
// cwd is not under the root subtree.
func RelativeDir(root, cwd string) string {
	rel, err := filepath.Rel(root, cwd)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return cwd
	}
	return rel
}

// ConfigDir returns the configuration directory under root.
func ConfigDir(root string) string {
	return filepath.Join(root, ConfigDirName)
}

// EnsureConfigDir creates the configuration directory if it is absent.
func EnsureConfigDir(root string) error {
	return os.MkdirAll(ConfigDir(root), 0o755)
}
