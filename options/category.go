package options

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScalarEnum selects which trivial converters take part in the scalar chain.
type ScalarEnum int

const (
	ScalarIdentity     ScalarEnum = 1 << iota // same type, value passes through
	ScalarAssignable                          // value is assignable to the destination type
	ScalarCasters                             // user supplied conversion functions
	ScalarAdditiveEnum                        // named integers of the same kind, converted by value
	ScalarSafeNumber                          // int, uint, float widening without precision loss

	ScalarAll     = (1 << iota) - 1 // all converters combined
	ScalarNone    = 0               // no converters selected
	ScalarDefault = ScalarIdentity | ScalarAssignable | ScalarCasters | ScalarAdditiveEnum
)

var scalarNames = []struct {
	flag ScalarEnum
	name string
}{
	{ScalarIdentity, "identity"},
	{ScalarAssignable, "assignable"},
	{ScalarCasters, "casters"},
	{ScalarAdditiveEnum, "additive-enum"},
	{ScalarSafeNumber, "safe-number"},
}

// Has reports whether every flag of f is enabled.
func (s ScalarEnum) Has(f ScalarEnum) bool {
	return s&f == f
}

// Names returns the enabled converter names in a stable order.
func (s ScalarEnum) Names() []string {
	var names []string
	for _, sn := range scalarNames {
		if s.Has(sn.flag) {
			names = append(names, sn.name)
		}
	}

	return names
}

// String returns a comma separated list of enabled converters.
func (s ScalarEnum) String() string {
	if s == ScalarNone {
		return "none"
	}

	return strings.Join(s.Names(), ",")
}

// ParseScalar parses one converter name.
func ParseScalar(name string) (ScalarEnum, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "all" {
		return ScalarAll, nil
	}

	for _, sn := range scalarNames {
		if sn.name == name {
			return sn.flag, nil
		}
	}

	return ScalarNone, fmt.Errorf("unknown scalar converter %q", name)
}

// UnmarshalYAML decodes a sequence of converter names.
func (s *ScalarEnum) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: scalars must be a sequence of converter names", node.Line)
	}

	out := ScalarNone
	for _, item := range node.Content {
		flag, err := ParseScalar(item.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", item.Line, err)
		}

		out |= flag
	}

	*s = out
	return nil
}

// MarshalYAML encodes the set as a sequence of converter names.
func (s ScalarEnum) MarshalYAML() (any, error) {
	return s.Names(), nil
}
