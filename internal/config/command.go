package config

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// SplitCommand parses a stored command string into argv using shell-style
// word splitting, so quoted arguments survive a round trip through the
// store.
func SplitCommand(s string) ([]string, error) {
	argv, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("parsing stored command %q: %w", s, err)
	}
	return argv, nil
}

// JoinCommand renders argv as a single string that SplitCommand parses
// back to the same argv.
func JoinCommand(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		parts[i] = quoteArg(arg)
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\n'\"\\") {
		return arg
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range arg {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
