package java

import (
	"context"
	"fmt"
	"slices"
)

// InvalidPathError is returned by Validate when a path is not a usable runtime
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("Invalid Java path: %s", e.Path)
}

// CandidateSource lists what a discovery run probes
type CandidateSource interface {
	Candidates(ctx context.Context) []string
}

// RuntimeProber describes a single candidate
type RuntimeProber interface {
	Probe(ctx context.Context, candidate string) (Runtime, bool)
}

// Phase is a stage of a discovery run
type Phase int

const (
	PhaseLocating Phase = iota
	PhaseProbing
	PhaseDone
)

// Progress is reported while a discovery run advances
type Progress struct {
	Phase     Phase
	Done      int
	Total     int
	Candidate string
	Found     int
}

// Detector finds Java installations on the system
type Detector struct {
	conv       Conventions
	source     CandidateSource
	prober     RuntimeProber
	onProgress func(Progress)
}

// DetectorOption customizes a Detector
type DetectorOption func(*Detector)

// WithProgress registers a callback invoked as discovery advances
func WithProgress(fn func(Progress)) DetectorOption {
	return func(d *Detector) {
		d.onProgress = fn
	}
}

// NewDetector creates a detector from its parts
func NewDetector(conv Conventions, source CandidateSource, prober RuntimeProber, opts ...DetectorOption) *Detector {
	d := &Detector{
		conv:   conv,
		source: source,
		prober: prober,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover probes every candidate in order and returns the runtimes found,
// one per resolved path, highest major version first. It never fails; if ctx
// is cancelled the runtimes found so far are returned.
func (d *Detector) Discover(ctx context.Context) []Runtime {
	d.report(Progress{Phase: PhaseLocating})
	candidates := d.source.Candidates(ctx)

	runtimes := make([]Runtime, 0)
	seen := make(map[string]bool)

	for i, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}
		d.report(Progress{Phase: PhaseProbing, Done: i, Total: len(candidates), Candidate: candidate, Found: len(runtimes)})

		rt, ok := d.prober.Probe(ctx, candidate)
		if !ok {
			continue
		}
		key := d.conv.PathKey(rt.Path)
		if seen[key] {
			continue
		}
		seen[key] = true
		runtimes = append(runtimes, rt)
	}

	Rank(runtimes)
	d.report(Progress{Phase: PhaseDone, Done: len(candidates), Total: len(candidates), Found: len(runtimes)})
	return runtimes
}

// Validate probes exactly path, without scanning anything
func (d *Detector) Validate(ctx context.Context, path string) (Runtime, error) {
	rt, ok := d.prober.Probe(ctx, path)
	if !ok {
		return Runtime{}, &InvalidPathError{Path: path}
	}
	return rt, nil
}

// Rank orders runtimes by major version, highest first, keeping the
// relative order of equal versions.
func Rank(runtimes []Runtime) {
	slices.SortStableFunc(runtimes, func(a, b Runtime) int {
		switch {
		case a.MajorVersion > b.MajorVersion:
			return -1
		case a.MajorVersion < b.MajorVersion:
			return 1
		}
		return 0
	})
}

func (d *Detector) report(p Progress) {
	if d.onProgress != nil {
		d.onProgress(p)
	}
}
