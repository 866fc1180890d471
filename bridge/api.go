package bridge

import (
	"fmt"
	"reflect"

	"duck-bridge/internal/common"
)

// To presents target as a P.
func To[P, T any](r *Registry, target T) (P, error) {
	var out P

	v, err := r.bridge(SpecFor[T, P](), reflect.ValueOf(&target).Elem())
	if err != nil {
		return out, err
	}

	reflect.ValueOf(&out).Elem().Set(v)

	return out, nil
}

// Back maps proxy, a value produced for the spec T->P, back to T. Leaf
// factories convert the value; synthesized ones unwrap their adapters.
func Back[T, P any](r *Registry, proxy P) (T, error) {
	var out T

	spec := SpecFor[T, P]()

	f, err := r.ObtainFactory(spec)
	if err != nil {
		return out, err
	}

	pv := reflect.ValueOf(&proxy).Elem()

	var v reflect.Value

	if rv, ok := f.(reverser); ok {
		v, err = rv.Back(pv)
		if err != nil {
			return out, err
		}
	} else {
		target, ok := f.TryUnwrap(pv)
		if !ok {
			return out, valueError(spec, "", describe(pv), fmt.Errorf("not an adapter of %s", common.TypeString(spec.Target.Type)))
		}

		v = target
	}

	if tv, ok := typed(v, spec.Target.Type); ok {
		reflect.ValueOf(&out).Elem().Set(tv)
	}

	return out, nil
}

// Bridge presents target as a value of proxyType. ctx qualifies both
// types so that equal types can be bridged differently per context.
func (r *Registry) Bridge(ctx string, target any, proxyType reflect.Type) (any, error) {
	spec := Spec{
		Target: TypeRef{Context: ctx, Type: reflect.TypeOf(target)},
		Proxy:  TypeRef{Context: ctx, Type: proxyType},
	}

	v, err := r.bridge(spec, reflect.ValueOf(target))
	if err != nil {
		return nil, err
	}

	if !v.IsValid() || !v.CanInterface() {
		return nil, nil
	}

	return v.Interface(), nil
}

func (r *Registry) bridge(spec Spec, v reflect.Value) (reflect.Value, error) {
	f, err := r.ObtainFactory(spec)
	if err != nil {
		return reflect.Value{}, err
	}

	return f.ObtainAdapter(v)
}

// Unwrap returns the target behind an adapter created by r.
func (r *Registry) Unwrap(adapter any) (any, bool) {
	c := r.cellOf(adapter)
	if c == nil || !c.target.CanInterface() {
		return nil, false
	}

	return c.target.Interface(), true
}

func (r *Registry) cellOf(adapter any) *cell {
	key, ok := identityKey(reflect.ValueOf(adapter))
	if !ok {
		return nil
	}

	return r.adapters.byAdapterKey(key)
}
