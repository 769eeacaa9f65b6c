package testhelpers

import (
	"context"
	"strings"
	"sync"

	"gitbind.dev/gitbind/internal/git"
)

// ExecCall records a single Execute invocation.
type ExecCall struct {
	Dir  string
	Args []string
}

// ExecResult is the canned response for a command.
type ExecResult struct {
	Stdout string
	Err    error
}

// SpyExecutor implements git.Executor without starting processes.
// Results are keyed by the space-joined argument list; unknown commands
// succeed with empty output.
type SpyExecutor struct {
	mu      sync.Mutex
	Calls   []ExecCall
	Results map[string]ExecResult
}

// NewSpyExecutor creates a new spy executor.
func NewSpyExecutor() *SpyExecutor {
	return &SpyExecutor{
		Results: make(map[string]ExecResult),
	}
}

// On registers the result returned when args are executed.
func (s *SpyExecutor) On(result ExecResult, args ...string) *SpyExecutor {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Results[strings.Join(args, " ")] = result
	return s
}

// Execute records the call and returns the registered result.
func (s *SpyExecutor) Execute(_ context.Context, dir string, args ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, ExecCall{Dir: dir, Args: append([]string(nil), args...)})
	if result, ok := s.Results[strings.Join(args, " ")]; ok {
		return result.Stdout, result.Err
	}
	return "", nil
}

// CallCount returns the number of recorded invocations.
func (s *SpyExecutor) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// LastCall returns the most recent invocation, or the zero value if none.
func (s *SpyExecutor) LastCall() ExecCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Calls) == 0 {
		return ExecCall{}
	}
	return s.Calls[len(s.Calls)-1]
}

// Compile-time check that SpyExecutor implements git.Executor.
var _ git.Executor = (*SpyExecutor)(nil)
