// Package runner plans and executes the external lint and test tools a stack
// delegates to. Planning is pure and filesystem-driven; execution sits behind
// CommandRunner so tests never spawn processes.
package runner

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// CommandRunner abstracts external command execution.
type CommandRunner interface {
	// Run executes a command in dir and returns combined stdout/stderr.
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
	// Exists reports whether the command resolves on PATH.
	Exists(name string) bool
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	return cmd.CombinedOutput()
}

func (ExecRunner) Exists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

var _ CommandRunner = ExecRunner{}

// Result is the outcome of one tool invocation.
type Result struct {
	Tool       Tool   `json:"tool"`
	Output     string `json:"output"`
	DurationMS int64  `json:"duration_ms"`
	Passed     bool   `json:"passed"`
}

// RunPlan executes the tools sequentially in root. A non-zero exit marks the
// result failed but never aborts the remaining tools; output is captured for
// the caller to render.
func RunPlan(ctx context.Context, runner CommandRunner, root string, tools []Tool) []Result {
	results := make([]Result, 0, len(tools))
	for _, tool := range tools {
		started := time.Now()
		output, err := runner.Run(ctx, root, tool.Command, tool.Args...)

		result := Result{
			Tool:       tool,
			Output:     strings.TrimSpace(string(output)),
			DurationMS: time.Since(started).Milliseconds(),
			Passed:     err == nil,
		}
		if err != nil && result.Output == "" {
			result.Output = err.Error()
		}
		results = append(results, result)
	}
	return results
}
