// Package errors provides sentinel errors and custom error types for gitbind.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for every failure kind the binding can report
var (
	// ErrWorkingDirectoryInaccessible indicates that the process working directory could not be resolved
	ErrWorkingDirectoryInaccessible = errors.New("unable to access current working directory")

	// ErrExecution indicates that the git process could not be started
	ErrExecution = errors.New("unable to execute git process")

	// ErrUndecodable indicates that git produced output that is not valid UTF-8
	ErrUndecodable = errors.New("unable to decode git output as UTF-8")

	// ErrInvalidURL indicates that a remote URL failed validation
	ErrInvalidURL = errors.New("git URL is invalid")

	// ErrInvalidRefName indicates that a reference name failed validation
	ErrInvalidRefName = errors.New("reference name is invalid")

	// ErrGit indicates that git ran and exited with a non-zero status
	ErrGit = errors.New("git exited with a non-zero status")

	// ErrInvalidRemoteName indicates that a remote name is empty or could be parsed as a git option
	ErrInvalidRemoteName = errors.New("remote name is invalid")

	// ErrNoRemoteRepositorySet indicates that an operation needed a remote and none is configured
	ErrNoRemoteRepositorySet = errors.New("no remote repository is set")
)

// ExecutionError represents a failure to spawn the git binary
type ExecutionError struct {
	Command string
	Err     error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to execute %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("unable to execute %s", e.Command)
}

// Is returns true if the target error is ErrExecution
func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecution
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NewExecutionError creates a new ExecutionError
func NewExecutionError(command string, err error) *ExecutionError {
	return &ExecutionError{Command: command, Err: err}
}

// GitCommandError represents a git invocation that exited non-zero.
// Stdout and Stderr hold the captured streams verbatim.
type GitCommandError struct {
	Command  string
	Args     []string
	Dir      string
	Stdout   string
	Stderr   string
	ExitCode int
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += " " + strings.Join(e.Args, " ")
	}
	msg += fmt.Sprintf(" (exit status %d)", e.ExitCode)
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", strings.TrimRight(e.Stderr, "\n"))
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", strings.TrimRight(e.Stdout, "\n"))
	}
	return msg
}

// Is returns true if the target error is ErrGit
func (e *GitCommandError) Is(target error) bool {
	return target == ErrGit
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, dir, stdout, stderr string, exitCode int) *GitCommandError {
	return &GitCommandError{
		Command:  command,
		Args:     args,
		Dir:      dir,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
	}
}

// AsGitCommandError unwraps err to a *GitCommandError if there is one in its chain
func AsGitCommandError(err error) (*GitCommandError, bool) {
	var gitErr *GitCommandError
	if errors.As(err, &gitErr) {
		return gitErr, true
	}
	return nil, false
}
