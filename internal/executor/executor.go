// Package executor runs the resolved clean command, streaming its output
// as it is produced.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"
)

// Result describes a completed command.
type Result struct {
	ExitCode int
	Duration time.Duration
}

// DirectoryError reports that the working directory for the command is
// missing or not a directory. The directory is never created.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory not found: %s", e.Path)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// SpawnError reports that the command could not be started at all.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("cannot run %q: %v", e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitStatusError reports a command that ran to completion with a
// non-zero exit status. Its output has already been streamed.
type ExitStatusError struct {
	Code int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}

// Execute runs argv with its working directory set to dir, copying the
// child's stdout and stderr to the given writers as they are produced.
// Both pipes are drained concurrently so a full pipe buffer can never
// deadlock the child; interleaving between the two streams is
// best-effort. The command is never retried and no timeout is applied
// beyond ctx.
func Execute(ctx context.Context, dir string, argv []string, stdout, stderr io.Writer) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("no command to execute")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return Result{}, &DirectoryError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return Result{}, &DirectoryError{Path: dir, Err: fmt.Errorf("not a directory")}
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, &SpawnError{Program: argv[0], Err: err}
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, &SpawnError{Program: argv[0], Err: err}
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Result{}, &SpawnError{Program: argv[0], Err: err}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go drain(&wg, stdout, outPipe)
	go drain(&wg, stderr, errPipe)
	wg.Wait()

	err = cmd.Wait()
	res := Result{Duration: time.Since(start)}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &ExitStatusError{Code: res.ExitCode}
		}
		return res, &SpawnError{Program: argv[0], Err: err}
	}
	return res, nil
}

// drain copies one child pipe until EOF. Copy errors are expected when
// the child is killed mid-write and are only logged.
func drain(wg *sync.WaitGroup, w io.Writer, r io.Reader) {
	defer wg.Done()
	if _, err := io.Copy(w, r); err != nil {
		slog.Debug("output stream closed early", "error", err)
	}
}
