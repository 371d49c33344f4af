package engine

import (
	"context"

	"gopkg.in/yaml.v3"
)

// Capability is an external transformation engine.
type Capability interface {
	// Version reports the engine version as a semver string.
	Version() string
	// ParseNative parses contract text into the canonical contract tree.
	ParseNative(ctx context.Context, text []byte) (*yaml.Node, error)
	// SerializeNative renders a canonical contract tree as text.
	SerializeNative(ctx context.Context, tree *yaml.Node) ([]byte, error)
}

// Factory builds a Capability. It is called at most once per Loader.
type Factory func(ctx context.Context) (Capability, error)

// Static returns a Factory that always yields c.
func Static(c Capability) Factory {
	return func(context.Context) (Capability, error) {
		return c, nil
	}
}
