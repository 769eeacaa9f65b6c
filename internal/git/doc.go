// Package git runs the git binary and classifies its results.
//
// It provides:
//   - CommandRunner, the Executor that spawns git with a discrete argv
//   - Capture and the Trimmed/Lines post-processors for typed results
//   - Repository root discovery for a working directory
//
// This package should be the only place where git processes are started.
package git
