package project

import "os"

// FS is the read-only filesystem capability the resolver probes.
// Implementations must not mutate the tree.
type FS interface {
	// Exists reports whether path names an existing entry of any kind.
	Exists(path string) bool

	// IsDir reports whether path names an existing directory.
	IsDir(path string) bool
}

// osFS probes the real filesystem via os.Stat.
type osFS struct{}

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
