package bridge

import (
	"fmt"
	"reflect"

	"duck-bridge/internal/diagnostic"
	"duck-bridge/internal/shape"
	"duck-bridge/options"
)

// arrayMap maps slices and fixed arrays element by element.
// Nil elements pass through unchanged.
type arrayMap struct {
	leaf
	forward, backward *link
}

func newArrayMap(r *Registry, spec Spec) (*arrayMap, error) {
	t, p := spec.Target.Type, spec.Proxy.Type

	switch {
	case t.Kind() != p.Kind():
		return nil, diagnostic.New(ErrSpecRejected, spec.String(), "", "slice and fixed array mixed")
	case shape.Rank(t) != shape.Rank(p):
		return nil, diagnostic.New(ErrSpecRejected, spec.String(), "",
			fmt.Sprintf("array ranks differ: %d vs %d", shape.Rank(t), shape.Rank(p)))
	case t.Kind() == reflect.Array && t.Len() != p.Len():
		return nil, diagnostic.New(ErrSpecRejected, spec.String(), "",
			fmt.Sprintf("array lengths differ: %d vs %d", t.Len(), p.Len()))
	}

	return &arrayMap{
		leaf:     leaf{r: r, spec: spec},
		forward:  newLink(spec.Nested(t.Elem(), p.Elem())),
		backward: newLink(spec.Nested(p.Elem(), t.Elem())),
	}, nil
}

func (a *arrayMap) Kind() FactoryKind { return KindArrayMap }

func (a *arrayMap) Needs() []Spec {
	return []Spec{a.forward.spec}
}

func (a *arrayMap) ObtainAdapter(target reflect.Value) (reflect.Value, error) {
	return a.mapArray(target, a.spec.Proxy.Type, a.forward)
}

func (a *arrayMap) Back(proxy reflect.Value) (reflect.Value, error) {
	return a.mapArray(proxy, a.spec.Target.Type, a.backward)
}

func (a *arrayMap) mapArray(v reflect.Value, to reflect.Type, elem *link) (reflect.Value, error) {
	v = concrete(v)
	if isNil(v) {
		return zero(to), nil
	}

	n := v.Len()

	var out reflect.Value
	if to.Kind() == reflect.Slice {
		out = reflect.MakeSlice(to, n, n)
	} else {
		out = zero(to)
	}

	if err := a.fill(out, v, elem); err != nil {
		return reflect.Value{}, err
	}

	return out, nil
}

func (a *arrayMap) fill(dst, src reflect.Value, elem *link) error {
	for i := range src.Len() {
		e := src.Index(i)
		if isNil(e) {
			dst.Index(i).Set(zero(dst.Type().Elem()))
			continue
		}

		out, err := a.r.through(elem, e)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}

		dst.Index(i).Set(out)
	}

	return nil
}

// into maps src, a target side slice, into the existing proxy side slice
// dst. Nested slices are mapped in place as well.
func (a *arrayMap) into(dst, src reflect.Value) error {
	if dst.Len() != src.Len() {
		if a.r.config.ArrayMismatch == options.ArrayMismatchSkipBackMapping {
			a.r.logger.Debug("array back-mapping skipped", "spec", a.spec.String(),
				"want", dst.Len(), "got", src.Len())

			return nil
		}

		return valueError(a.spec, "", "back-mapping",
			fmt.Errorf("length %d does not match %d", src.Len(), dst.Len()))
	}

	for i := range src.Len() {
		if err := a.r.writeBack(a.forward, dst.Index(i), src.Index(i)); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}

	return nil
}
