package wire

import (
	"gopkg.in/yaml.v3"

	"contract-mapper/internal/common"
	"contract-mapper/internal/errors"
)

// StringOrArray holds relationship targets. It reads either a single
// reference or a list of references and writes a single one back as a
// plain scalar.
type StringOrArray []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var ref string
		if err := node.Decode(&ref); err != nil {
			return err
		}

		*s = StringOrArray{}
		if ref != "" {
			*s = StringOrArray{ref}
		}

		return nil
	case yaml.SequenceNode:
		var refs []string
		if err := node.Decode(&refs); err != nil {
			return err
		}

		*s = refs

		return nil
	default:
		return errors.Newf("line %d: expected a reference or a list of references", node.Line)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first reference, or "" when there is none.
func (s StringOrArray) First() string {
	ref, _ := common.First(s)
	return ref
}

// IsMultiple reports whether more than one reference is present.
func (s StringOrArray) IsMultiple() bool {
	return common.IsMultiple(s)
}
