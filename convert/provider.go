package convert

import (
	"fmt"
	"reflect"

	"duck-bridge/primitive"
)

// Provider priorities, highest wins.
const (
	PriorityIdentity     = 100
	PriorityAssignable   = 90
	PriorityCasters      = 80
	PriorityAdditiveEnum = 70
	PrioritySafeNumber   = 60
)

// Provider is one trivial scalar converter.
type Provider interface {
	// Name identifies the provider in logs and errors.
	Name() string
	// Priority ranks providers; the highest applicable one is used.
	Priority() int
	// Supports reports whether every value of from converts to to.
	Supports(from, to reflect.Type) bool
	// CanProxy reports whether the given value converts to to.
	CanProxy(v reflect.Value, to reflect.Type) bool
	// ObtainProxy converts v to to.
	ObtainProxy(v reflect.Value, to reflect.Type) (reflect.Value, error)
}

// Identity passes values of the destination type through.
type Identity struct{}

func (Identity) Name() string  { return "identity" }
func (Identity) Priority() int { return PriorityIdentity }

func (Identity) Supports(from, to reflect.Type) bool { return from == to }

func (Identity) CanProxy(v reflect.Value, to reflect.Type) bool { return v.Type() == to }

func (Identity) ObtainProxy(v reflect.Value, _ reflect.Type) (reflect.Value, error) { return v, nil }

// Assignable stores values into a destination they are assignable to.
type Assignable struct{}

func (Assignable) Name() string  { return "assignable" }
func (Assignable) Priority() int { return PriorityAssignable }

func (Assignable) Supports(from, to reflect.Type) bool { return from.AssignableTo(to) }

func (Assignable) CanProxy(v reflect.Value, to reflect.Type) bool { return v.Type().AssignableTo(to) }

func (Assignable) ObtainProxy(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	out := reflect.New(to).Elem()
	out.Set(v)

	return out, nil
}

// Casters applies user conversion functions keyed by their exact types.
type Casters struct {
	byPair map[[2]reflect.Type]Caster
}

// NewCasters parses user conversion functions.
func NewCasters(fns ...any) (*Casters, error) {
	c := &Casters{byPair: make(map[[2]reflect.Type]Caster, len(fns))}

	for _, fn := range fns {
		caster, err := ParseCaster(fn)
		if err != nil {
			return nil, fmt.Errorf("failed to register caster %T: %w", fn, err)
		}

		c.byPair[[2]reflect.Type{caster.Src, caster.Dst}] = caster
	}

	return c, nil
}

func (c *Casters) Name() string  { return "casters" }
func (c *Casters) Priority() int { return PriorityCasters }

func (c *Casters) Supports(from, to reflect.Type) bool {
	_, ok := c.byPair[[2]reflect.Type{from, to}]
	return ok
}

func (c *Casters) CanProxy(v reflect.Value, to reflect.Type) bool {
	return c.Supports(v.Type(), to)
}

func (c *Casters) ObtainProxy(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	caster, ok := c.byPair[[2]reflect.Type{v.Type(), to}]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: no caster from %s to %s", ErrNoProvider, v.Type(), to)
	}

	return caster.Call(v)
}

// AdditiveEnum converts between integer types of the same kind, at least
// one of them named, by numeric value.
type AdditiveEnum struct{}

func (AdditiveEnum) Name() string  { return "additive-enum" }
func (AdditiveEnum) Priority() int { return PriorityAdditiveEnum }

func (AdditiveEnum) Supports(from, to reflect.Type) bool {
	if from.Kind() != to.Kind() || !primitive.FromReflectKind(from.Kind()).IsInteger() {
		return false
	}

	return primitive.FromReflectType(from) == primitive.KindNamed ||
		primitive.FromReflectType(to) == primitive.KindNamed
}

func (e AdditiveEnum) CanProxy(v reflect.Value, to reflect.Type) bool {
	return e.Supports(v.Type(), to)
}

func (AdditiveEnum) ObtainProxy(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	return v.Convert(to), nil
}

// SafeNumber widens numbers without precision loss. Narrowing is accepted
// per value when the value converts exactly.
type SafeNumber struct{}

func (SafeNumber) Name() string  { return "safe-number" }
func (SafeNumber) Priority() int { return PrioritySafeNumber }

func (SafeNumber) Supports(from, to reflect.Type) bool {
	return primitive.IsSafe(primitive.FromReflectKind(from.Kind()), primitive.FromReflectKind(to.Kind()))
}

func (SafeNumber) CanProxy(v reflect.Value, to reflect.Type) bool {
	return primitive.Fits(v, primitive.FromReflectKind(to.Kind()))
}

func (SafeNumber) ObtainProxy(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	return v.Convert(to), nil
}
