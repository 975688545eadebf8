package java

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Runner executes a program and captures what it printed
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// ExecRunner runs programs with os/exec
type ExecRunner struct{}

// Run starts the program and waits for it. A non-zero exit status is not an
// error: the output is still returned. Failing to start it, or the context
// expiring first, is.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// A killed JVM may leave children holding the pipes open
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Output{}, ctxErr
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return Output{}, err
	}

	return Output{Stdout: stdout.String(), Stderr: stderr.String()}, nil
}
