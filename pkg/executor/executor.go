package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Executor runs external tools such as ffmpeg, ffprobe and whisper.cpp
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	Stream(ctx context.Context, name string, args ...string) (Stream, error)
}

// Stream is a running command whose stdout is consumed incrementally.
// Close waits for the process and reports its exit status.
type Stream interface {
	io.Reader
	Close() error
}

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", commandError(name, err, &stderr)
	}

	return stdout.String(), nil
}

// Stream starts an external command and exposes its stdout as a reader
func (e *implExecutor) Stream(ctx context.Context, name string, args ...string) (Stream, error) {
	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("command '%s' stdout pipe: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("command '%s' failed to start: %w", name, err)
	}

	return &cmdStream{name: name, cmd: cmd, stdout: stdout, stderr: &stderr, cancel: cancel}, nil
}

type cmdStream struct {
	name    string
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	stderr  *bytes.Buffer
	cancel  context.CancelFunc
	drained bool
}

func (s *cmdStream) Read(p []byte) (int, error) {
	n, err := s.stdout.Read(p)
	if err == io.EOF {
		s.drained = true
	}
	return n, err
}

// Close stops the command if the caller did not read to the end, then waits for it
func (s *cmdStream) Close() error {
	if !s.drained {
		s.cancel()
	}
	err := s.cmd.Wait()
	s.cancel()
	if err != nil && s.drained {
		return commandError(s.name, err, s.stderr)
	}
	return nil
}

// commandError includes stderr in the error message for debugging
func commandError(name string, err error, stderr *bytes.Buffer) error {
	stderrStr := strings.TrimSpace(stderr.String())
	if stderrStr != "" {
		return fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
	}
	return fmt.Errorf("command '%s' failed: %w", name, err)
}
