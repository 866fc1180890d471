package bridge

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"duck-bridge/internal/common"
	"duck-bridge/internal/diagnostic"
)

// link is a nested spec whose factory is resolved once and then reused.
type link struct {
	spec Spec
	ref  atomic.Pointer[factoryRef]
}

type factoryRef struct{ f Factory }

func newLink(spec Spec) *link {
	return &link{spec: spec}
}

// factory resolves the factory of the link through the public, locking
// path. Call sites run outside synthesis.
func (l *link) factory(r *Registry) (Factory, error) {
	if ref := l.ref.Load(); ref != nil {
		return ref.f, nil
	}

	f, err := r.ObtainFactory(l.spec)
	if err != nil {
		return nil, err
	}

	l.set(f)

	return f, nil
}

func (l *link) set(f Factory) {
	l.ref.Store(&factoryRef{f: f})
}

// through bridges v along the link. A value that is an adapter of the
// reverse spec is unwrapped instead of being wrapped a second time.
func (r *Registry) through(l *link, v reflect.Value) (reflect.Value, error) {
	if l.spec.Identical() {
		if out, ok := typed(v, l.spec.Proxy.Type); ok {
			return out, nil
		}
	}

	if orig, ok := r.unwrapAs(l.spec, v); ok {
		return orig, nil
	}

	f, err := l.factory(r)
	if err != nil {
		return reflect.Value{}, err
	}

	return f.ObtainAdapter(v)
}

// unwrapAs returns the target behind v when v is an adapter whose factory
// bridges the reverse of spec.
func (r *Registry) unwrapAs(spec Spec, v reflect.Value) (reflect.Value, bool) {
	key, ok := identityKey(v)
	if !ok {
		return reflect.Value{}, false
	}

	c := r.adapters.byAdapterKey(key)
	if c == nil || c.factory.spec != spec.Reversed() {
		return reflect.Value{}, false
	}

	return typed(c.target, spec.Proxy.Type)
}

// writeBack stores src, a value on the spec's target side, into dst on its
// proxy side. Slices are mapped element-wise into the existing storage so
// that the caller's aliases observe the change.
func (r *Registry) writeBack(l *link, dst, src reflect.Value) error {
	if dst.Kind() == reflect.Slice && src.Kind() == reflect.Slice && !dst.IsNil() && !src.IsNil() {
		f, err := l.factory(r)
		if err != nil {
			return err
		}

		if am, ok := f.(*arrayMap); ok {
			return am.into(dst, src)
		}
	}

	v, err := r.through(l, src)
	if err != nil {
		return err
	}

	if !dst.CanSet() {
		return fmt.Errorf("cannot write back into %s", common.TypeString(dst.Type()))
	}

	dst.Set(v)

	return nil
}

// describe renders v for error messages.
func describe(v reflect.Value) string {
	if !v.IsValid() {
		return "<nil>"
	}

	if !v.CanInterface() {
		return common.TypeString(v.Type())
	}

	return common.TypeString(v.Type()) + "(" + diagnostic.ValueString(v.Interface()) + ")"
}

// concrete strips interface wrappers from v.
func concrete(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}

	return v
}
