package java

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deadlineRunner records the time left on each call's context
type deadlineRunner struct {
	left []time.Duration
	out  Output
}

func (d *deadlineRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		d.left = append(d.left, -1)
	} else {
		d.left = append(d.left, time.Until(deadline))
	}
	return d.out, nil
}

func TestHostPathQueryUsesConfiguredTimeout(t *testing.T) {
	t.Parallel()

	runner := &deadlineRunner{out: Output{Stdout: "C:\\jdk\\bin\\java.exe\nC:\\jre\\bin\\java.exe\n"}}
	env := HostEnvironment(ConventionsFor(WindowsLike), runner, 2*time.Second)

	lines := env.PathQuery(context.Background(), "java")
	assert.Contains(t, lines, "C:\\jdk\\bin\\java.exe")

	require.Len(t, runner.left, 1)
	assert.Greater(t, runner.left[0], time.Duration(0))
	assert.LessOrEqual(t, runner.left[0], 2*time.Second)
}

func TestHostPathQueryDefaultTimeout(t *testing.T) {
	t.Parallel()

	runner := &deadlineRunner{}
	env := HostEnvironment(ConventionsFor(WindowsLike), runner, 0)
	env.PathQuery(context.Background(), "java")

	require.Len(t, runner.left, 1)
	assert.Greater(t, runner.left[0], 2*time.Second)
	assert.LessOrEqual(t, runner.left[0], DefaultProbeTimeout)
}
