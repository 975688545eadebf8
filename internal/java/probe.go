package java

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"jvscan/internal/logging"
)

// DefaultProbeTimeout bounds a single probe, including path resolution
const DefaultProbeTimeout = 10 * time.Second

// VersionFlag is the argument every candidate is run with
const VersionFlag = "-version"

// Prober runs one candidate and describes it
type Prober struct {
	conv    Conventions
	runner  Runner
	timeout time.Duration
	// exists reports whether a path is present on disk
	exists func(string) bool
}

// NewProber creates a prober. A zero timeout means DefaultProbeTimeout.
func NewProber(conv Conventions, runner Runner, timeout time.Duration) *Prober {
	if runner == nil {
		runner = ExecRunner{}
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Prober{
		conv:    conv,
		runner:  runner,
		timeout: timeout,
		exists:  pathExists,
	}
}

// Probe runs candidate with -version. It reports false when the candidate
// cannot be run, times out, or prints nothing. Resolving the path afterwards
// gets a timeout of its own.
func (p *Prober) Probe(ctx context.Context, candidate string) (Runtime, bool) {
	out, err := p.run(ctx, candidate, VersionFlag)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logging.L.Debug("probe timed out", "candidate", candidate, "timeout", p.timeout)
		} else {
			logging.L.Debug("probe failed", "candidate", candidate, "err", err)
		}
		return Runtime{}, false
	}

	rt, ok := ParseOutput(p.resolve(ctx, candidate), out)
	if !ok {
		logging.L.Debug("probe printed nothing", "candidate", candidate)
		return Runtime{}, false
	}
	return rt, true
}

// resolve maps a candidate to the absolute path of the executable it runs.
// Existing absolute paths are kept as they are; anything else is asked of the
// platform's locator utility. On failure the candidate itself is returned.
func (p *Prober) resolve(ctx context.Context, candidate string) string {
	if filepath.IsAbs(candidate) && p.exists(candidate) {
		return candidate
	}

	out, err := p.run(ctx, p.conv.Resolver, candidate)
	if err != nil {
		logging.L.Debug("path resolution failed", "candidate", candidate, "err", err)
		return candidate
	}

	first, _, _ := strings.Cut(out.Stdout, "\n")
	first = strings.TrimSpace(first)
	if first == "" {
		return candidate
	}
	if !filepath.IsAbs(first) {
		if abs, err := filepath.Abs(first); err == nil {
			first = abs
		}
	}
	return first
}

// run executes one program within the probe timeout
func (p *Prober) run(ctx context.Context, name string, args ...string) (Output, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.runner.Run(ctx, name, args...)
}

func pathExists(path string) bool {
	return isDir(path) || isExecutableFile(path)
}
