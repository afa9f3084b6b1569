package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memFS is an in-memory tree for deterministic resolver tests.
type memFS struct {
	dirs  map[string]bool
	files map[string]bool
}

func newMemFS(dirs, files []string) *memFS {
	fs := &memFS{dirs: map[string]bool{}, files: map[string]bool{}}
	for _, d := range dirs {
		fs.dirs[d] = true
	}
	for _, f := range files {
		fs.files[f] = true
	}
	return fs
}

func (m *memFS) Exists(path string) bool { return m.dirs[path] || m.files[path] }
func (m *memFS) IsDir(path string) bool  { return m.dirs[path] }

func noEnv(string) (string, bool) { return "", false }

func TestResolveMarkerAtCurrentDirectory(t *testing.T) {
	fs := newMemFS([]string{"/repo", "/repo/.sweep"}, nil)
	r := NewResolverWithFS(fs, DefaultMarkers, noEnv)

	assert.Equal(t, "/repo", r.Resolve("/repo"))
}

func TestResolveMarkerAtAncestor(t *testing.T) {
	tests := []struct {
		name string
		cwd  string
	}{
		{"one level up", "/repo/src"},
		{"three levels up", "/repo/src/pkg/util"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newMemFS([]string{
				"/repo", "/repo/.sweep",
				"/repo/src", "/repo/src/pkg", "/repo/src/pkg/util",
			}, nil)
			r := NewResolverWithFS(fs, DefaultMarkers, noEnv)

			assert.Equal(t, "/repo", r.Resolve(tt.cwd))
		})
	}
}

func TestResolveNearestMarkerWins(t *testing.T) {
	fs := newMemFS([]string{
		"/outer", "/outer/.sweep",
		"/outer/inner", "/outer/inner/.sweep",
		"/outer/inner/sub",
	}, nil)
	r := NewResolverWithFS(fs, DefaultMarkers, noEnv)

	assert.Equal(t, "/outer/inner", r.Resolve("/outer/inner/sub"))
}

func TestResolveSettingsFileIsMarker(t *testing.T) {
	fs := newMemFS([]string{"/repo", "/repo/src"}, []string{"/repo/.sweep.yaml"})
	r := NewResolverWithFS(fs, DefaultMarkers, noEnv)

	assert.Equal(t, "/repo", r.Resolve("/repo/src"))
}

func TestResolveMarkerFileNamedLikeConfigDirIgnored(t *testing.T) {
	// A plain file named .sweep is not a config directory and must not
	// anchor the root.
	fs := newMemFS([]string{"/repo", "/repo/sub"}, []string{"/repo/sub/.sweep"})
	r := NewResolverWithFS(fs, DefaultMarkers, noEnv)

	assert.Equal(t, "/repo/sub", r.Resolve("/repo/sub"))
}

func TestResolveNoMarkerFallsBackToCwd(t *testing.T) {
	fs := newMemFS([]string{"/a", "/a/b", "/a/b/c"}, nil)
	r := NewResolverWithFS(fs, DefaultMarkers, noEnv)

	assert.Equal(t, "/a/b/c", r.Resolve("/a/b/c"))
}

func TestResolveEnvOverride(t *testing.T) {
	fs := newMemFS([]string{"/elsewhere", "/repo", "/repo/.sweep"}, nil)

	env := func(key string) (string, bool) {
		if key == EnvProjectRoot {
			return "/elsewhere", true
		}
		return "", false
	}
	r := NewResolverWithFS(fs, DefaultMarkers, env)

	// Override wins even though a marker exists at the cwd.
	assert.Equal(t, "/elsewhere", r.Resolve("/repo"))
}

func TestResolveEnvOverrideRelative(t *testing.T) {
	fs := newMemFS([]string{"/repo", "/repo/sub", "/repo/sub/root"}, nil)

	env := func(key string) (string, bool) {
		if key == EnvProjectRoot {
			return "root", true
		}
		return "", false
	}
	r := NewResolverWithFS(fs, DefaultMarkers, env)

	assert.Equal(t, "/repo/sub/root", r.Resolve("/repo/sub"))
}

func TestResolveEnvOverrideInvalidFallsThrough(t *testing.T) {
	fs := newMemFS([]string{"/repo", "/repo/.sweep", "/repo/src"}, nil)

	env := func(key string) (string, bool) {
		if key == EnvProjectRoot {
			return "/does/not/exist", true
		}
		return "", false
	}
	r := NewResolverWithFS(fs, DefaultMarkers, env)

	assert.Equal(t, "/repo", r.Resolve("/repo/src"))
}

func TestResolveEnvOverridePointsAtFile(t *testing.T) {
	fs := newMemFS([]string{"/repo", "/repo/.sweep"}, []string{"/notadir"})

	env := func(key string) (string, bool) {
		if key == EnvProjectRoot {
			return "/notadir", true
		}
		return "", false
	}
	r := NewResolverWithFS(fs, DefaultMarkers, env)

	assert.Equal(t, "/repo", r.Resolve("/repo"))
}

func TestResolveRealFilesystem(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".sweep"), 0o755))
	sub := filepath.Join(root, "build", "debug")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	r := NewResolverWithFS(osFS{}, DefaultMarkers, noEnv)
	assert.Equal(t, root, r.Resolve(sub))
}

func TestRelativeDir(t *testing.T) {
	tests := []struct {
		name string
		root string
		cwd  string
		want string
	}{
		{"cwd is root", "/repo", "/repo", "."},
		{"nested", "/repo", "/repo/src/pkg", filepath.Join("src", "pkg")},
		{"outside subtree", "/repo", "/other/place", "/other/place"},
		{"sibling", "/repo/a", "/repo/b", "/repo/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDir(tt.root, tt.cwd))
		})
	}
}

func TestEnsureConfigDir(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, EnsureConfigDir(root))
	info, err := os.Stat(ConfigDir(root))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent.
	require.NoError(t, EnsureConfigDir(root))
}
