package bridge

import (
	"fmt"
	"reflect"

	"duck-bridge/internal/diagnostic"
	"duck-bridge/internal/shape"
)

// reconstruct rebuilds records positionally: the exported fields of the
// source are bridged one by one into the exported fields of the destination.
type reconstruct struct {
	leaf
	targetFields, proxyFields []reflect.StructField
	forward, backward         []*link
}

func newReconstruct(r *Registry, spec Spec) (*reconstruct, error) {
	tf := shape.RecordFields(spec.Target.Type)
	pf := shape.RecordFields(spec.Proxy.Type)

	if len(tf) != len(pf) {
		return nil, diagnostic.New(ErrSpecRejected, spec.String(), "",
			fmt.Sprintf("records have %d and %d exported fields", len(tf), len(pf)))
	}

	rc := &reconstruct{leaf: leaf{r: r, spec: spec}, targetFields: tf, proxyFields: pf}
	for i := range tf {
		rc.forward = append(rc.forward, newLink(spec.Nested(tf[i].Type, pf[i].Type)))
		rc.backward = append(rc.backward, newLink(spec.Nested(pf[i].Type, tf[i].Type)))
	}

	return rc, nil
}

func (rc *reconstruct) Kind() FactoryKind { return KindReconstruct }

func (rc *reconstruct) Needs() []Spec {
	var needs []Spec

	for _, l := range rc.forward {
		if !l.spec.Identical() {
			needs = append(needs, l.spec)
		}
	}

	return needs
}

func (rc *reconstruct) ObtainAdapter(target reflect.Value) (reflect.Value, error) {
	return rc.rebuild(target, rc.targetFields, rc.spec.Proxy.Type, rc.proxyFields, rc.forward)
}

func (rc *reconstruct) Back(proxy reflect.Value) (reflect.Value, error) {
	return rc.rebuild(proxy, rc.proxyFields, rc.spec.Target.Type, rc.targetFields, rc.backward)
}

func (rc *reconstruct) rebuild(
	v reflect.Value,
	from []reflect.StructField,
	to reflect.Type,
	into []reflect.StructField,
	links []*link,
) (reflect.Value, error) {
	v = concrete(v)
	if isNil(v) {
		return zero(to), nil
	}

	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	out := reflect.New(to).Elem()
	record := out

	if to.Kind() == reflect.Pointer {
		out = reflect.New(to.Elem())
		record = out.Elem()
	}

	for i, f := range from {
		fv, err := rc.r.through(links[i], v.FieldByIndex(f.Index))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("field %s: %w", f.Name, err)
		}

		record.FieldByIndex(into[i].Index).Set(fv)
	}

	return out, nil
}
