package convert

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"duck-bridge/internal/common"
	"duck-bridge/options"
)

// ErrNoProvider is returned when no provider in the chain accepts a value.
var ErrNoProvider = errors.New("no scalar converter applies")

// Chain combines providers, preferring the highest priority.
type Chain struct {
	providers []Provider
}

// NewChain creates a Chain ordered by descending provider priority.
func NewChain(providers ...Provider) *Chain {
	sorted := append([]Provider{}, providers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})

	return &Chain{providers: sorted}
}

// Build assembles the providers selected by set. Casters are only used
// when set enables them.
func Build(set options.ScalarEnum, casters *Casters) *Chain {
	var providers []Provider

	if set.Has(options.ScalarIdentity) {
		providers = append(providers, Identity{})
	}

	if set.Has(options.ScalarAssignable) {
		providers = append(providers, Assignable{})
	}

	if set.Has(options.ScalarCasters) && casters != nil {
		providers = append(providers, casters)
	}

	if set.Has(options.ScalarAdditiveEnum) {
		providers = append(providers, AdditiveEnum{})
	}

	if set.Has(options.ScalarSafeNumber) {
		providers = append(providers, SafeNumber{})
	}

	return NewChain(providers...)
}

// Names returns provider names in priority order.
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}

	return names
}

// Supports reports whether some provider converts every value of from to to.
func (c *Chain) Supports(from, to reflect.Type) bool {
	if c == nil || from == nil || to == nil {
		return false
	}

	for _, p := range c.providers {
		if p.Supports(from, to) {
			return true
		}
	}

	return false
}

// CanProxy reports whether some provider converts v to to.
func (c *Chain) CanProxy(v reflect.Value, to reflect.Type) bool {
	return c.pick(v, to) != nil
}

// ObtainProxy converts v to to with the highest-priority applicable provider.
func (c *Chain) ObtainProxy(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	p := c.pick(v, to)
	if p == nil {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNoProvider, valueType(v), common.TypeString(to))
	}

	out, err := p.ObtainProxy(v, to)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%s converter: %w", p.Name(), err)
	}

	return out, nil
}

func (c *Chain) pick(v reflect.Value, to reflect.Type) Provider {
	if c == nil || !v.IsValid() || to == nil {
		return nil
	}

	for _, p := range c.providers {
		if p.CanProxy(v, to) {
			return p
		}
	}

	return nil
}

func valueType(v reflect.Value) string {
	if !v.IsValid() {
		return "<invalid>"
	}

	return common.TypeString(v.Type())
}
