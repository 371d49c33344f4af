package engine

import (
	"context"
	"sync"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/singleflight"

	"contract-mapper/internal/errors"
)

// DefaultVersionConstraint accepts engines of major version 1.
const DefaultVersionConstraint = ">=1.0.0, <2.0.0"

const loadKey = "engine"

// Loader lazily loads and version-checks one Capability.
type Loader struct {
	factory    Factory
	constraint string

	group singleflight.Group

	mu     sync.Mutex
	result *outcome
}

type outcome struct {
	cap Capability
	err error
}

// NewLoader returns a Loader for factory. A nil factory yields a Loader
// that always reports the engine unavailable. An empty constraint selects
// DefaultVersionConstraint.
func NewLoader(factory Factory, constraint string) *Loader {
	if constraint == "" {
		constraint = DefaultVersionConstraint
	}

	return &Loader{factory: factory, constraint: constraint}
}

// Load returns the capability, loading it on first call. Concurrent callers
// share one load, which runs detached from any caller's ctx: a caller whose
// ctx ends stops waiting and gets ctx.Err(), the others still receive the
// outcome. The outcome, success or CapabilityUnavailableError, is cached.
func (l *Loader) Load(ctx context.Context) (Capability, error) {
	if r := l.cached(); r != nil {
		return r.cap, r.err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := l.group.DoChan(loadKey, func() (any, error) {
		if r := l.cached(); r != nil {
			return r.cap, r.err
		}

		c, err := l.load(context.WithoutCancel(ctx))

		l.mu.Lock()
		l.result = &outcome{cap: c, err: err}
		l.mu.Unlock()

		return c, err
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}

		return r.Val.(Capability), nil
	}
}

// Constraint returns the version constraint the loader enforces.
func (l *Loader) Constraint() string {
	return l.constraint
}

func (l *Loader) cached() *outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.result
}

func (l *Loader) load(ctx context.Context) (Capability, error) {
	if l.factory == nil {
		return nil, &errors.CapabilityUnavailableError{Reason: "no engine configured"}
	}

	c, err := l.factory(ctx)
	if err != nil {
		return nil, &errors.CapabilityUnavailableError{Reason: "engine failed to load", Err: err}
	}

	if c == nil {
		return nil, &errors.CapabilityUnavailableError{Reason: "engine factory returned nothing"}
	}

	if err := CheckVersion(c.Version(), l.constraint); err != nil {
		if closer, ok := c.(interface{ Close(context.Context) error }); ok {
			_ = closer.Close(ctx)
		}

		return nil, err
	}

	return c, nil
}

// CheckVersion reports whether version satisfies constraint.
func CheckVersion(version, constraint string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return &errors.CapabilityUnavailableError{
			Reason:  "engine reports an invalid version",
			Version: version,
			Err:     err,
		}
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return &errors.CapabilityUnavailableError{
			Reason:     "invalid version constraint",
			Constraint: constraint,
			Err:        err,
		}
	}

	if !c.Check(v) {
		return &errors.CapabilityUnavailableError{
			Reason:     "incompatible engine version",
			Version:    version,
			Constraint: constraint,
		}
	}

	return nil
}
