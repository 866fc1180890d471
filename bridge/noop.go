package bridge

import (
	"reflect"
)

// noOp passes values through unchanged, or through the scalar chain.
type noOp struct {
	leaf
}

func newNoOp(r *Registry, spec Spec) *noOp {
	return &noOp{leaf{r: r, spec: spec}}
}

func (n *noOp) Kind() FactoryKind { return KindNoOp }

func (n *noOp) ObtainAdapter(target reflect.Value) (reflect.Value, error) {
	return n.pass(target, n.spec.Proxy.Type)
}

func (n *noOp) Back(proxy reflect.Value) (reflect.Value, error) {
	return n.pass(proxy, n.spec.Target.Type)
}

func (n *noOp) pass(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	if out, ok := typed(v, to); ok {
		return out, nil
	}

	v = concrete(v)

	out, err := n.r.chain.ObtainProxy(v, to)
	if err != nil {
		return reflect.Value{}, valueError(n.spec, "", describe(v), err)
	}

	if res, ok := typed(out, to); ok {
		return res, nil
	}

	return out.Convert(to), nil
}
