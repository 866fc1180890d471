package bridge

import (
	"fmt"
	"reflect"

	"duck-bridge/internal/shape"
)

// routine converts the inner values of one optional wrapper pair.
type routine struct {
	*link
}

// routine returns the conversion routine of an inner pair, shared by every
// nullable factory of the registry.
func (r *Registry) routine(spec Spec) *routine {
	r.routinesMu.Lock()
	defer r.routinesMu.Unlock()

	rt, ok := r.routines[spec]
	if !ok {
		rt = &routine{newLink(spec)}
		r.routines[spec] = rt
	}

	return rt
}

func (rt *routine) run(r *Registry, v reflect.Value) (reflect.Value, error) {
	return r.through(rt.link, v)
}

// nullableMap maps optional wrappers: valid values through the inner pair,
// invalid ones pass through as invalid.
type nullableMap struct {
	leaf
	targetField, proxyField int
	forward, backward       *routine
}

func newNullableMap(r *Registry, spec Spec) (*nullableMap, error) {
	ti, tf, _ := shape.OptionalInner(spec.Target.Type)
	pi, pf, _ := shape.OptionalInner(spec.Proxy.Type)

	return &nullableMap{
		leaf:        leaf{r: r, spec: spec},
		targetField: tf,
		proxyField:  pf,
		forward:     r.routine(spec.Nested(ti, pi)),
		backward:    r.routine(spec.Nested(pi, ti)),
	}, nil
}

func (n *nullableMap) Kind() FactoryKind { return KindNullableMap }

func (n *nullableMap) Needs() []Spec {
	return []Spec{n.forward.spec}
}

func (n *nullableMap) ObtainAdapter(target reflect.Value) (reflect.Value, error) {
	return n.mapValue(target, n.targetField, n.spec.Proxy.Type, n.proxyField, n.forward)
}

func (n *nullableMap) Back(proxy reflect.Value) (reflect.Value, error) {
	return n.mapValue(proxy, n.proxyField, n.spec.Target.Type, n.targetField, n.backward)
}

func (n *nullableMap) mapValue(v reflect.Value, from int, to reflect.Type, field int, rt *routine) (reflect.Value, error) {
	v = concrete(v)
	out := zero(to)

	if !v.IsValid() || !v.Field(1-from).Bool() {
		return out, nil
	}

	inner, err := rt.run(n.r, v.Field(from))
	if err != nil {
		return reflect.Value{}, fmt.Errorf("optional value: %w", err)
	}

	out.Field(field).Set(inner)
	out.Field(1 - field).SetBool(true)

	return out, nil
}
