package bridge

import (
	"fmt"

	"duck-bridge/internal/common"
	"duck-bridge/internal/diagnostic"
	"duck-bridge/internal/shape"
)

// classify picks the factory variant of spec from the bridging shapes of
// its two types. It is a pure function of the types, the catalog and the
// scalar chain.
func (r *Registry) classify(spec Spec) (FactoryKind, error) {
	target, proxy := spec.Target.Type, spec.Proxy.Type

	if target == nil || proxy == nil {
		return 0, diagnostic.New(ErrConstructionInvariant, spec.String(), "", "missing type")
	}

	if target == proxy || target.AssignableTo(proxy) {
		return KindNoOp, nil
	}

	tk, pk := r.catalog.KindOf(target), r.catalog.KindOf(proxy)

	switch {
	case tk == shape.KindEnum && pk == shape.KindEnum:
		return KindEnumMap, nil
	case tk == shape.KindArray && pk == shape.KindArray:
		return KindArrayMap, nil
	case tk == shape.KindOptional && pk == shape.KindOptional:
		return KindNullableMap, nil
	case pk == shape.KindContract:
		return KindSynthesized, nil
	case tk == shape.KindContract:
		// Only adapters of the reverse spec reach the target side of such a
		// spec; they are unwrapped before the factory is consulted.
		return KindNoOp, nil
	case r.chain.Supports(target, proxy):
		return KindNoOp, nil
	case tk == shape.KindRecord && pk == shape.KindRecord:
		return KindReconstruct, nil
	}

	return 0, diagnostic.New(ErrConstructionInvariant, spec.String(), "",
		fmt.Sprintf("no factory bridges %s to %s", common.TypeString(target), common.TypeString(proxy)))
}

// build creates the factory of kind for spec. Leaf factories validate
// their shapes here.
func (r *Registry) build(spec Spec, kind FactoryKind) (Factory, error) {
	switch kind {
	case KindNoOp:
		return newNoOp(r, spec), nil
	case KindEnumMap:
		return newEnumMap(r, spec)
	case KindArrayMap:
		return newArrayMap(r, spec)
	case KindNullableMap:
		return newNullableMap(r, spec)
	case KindReconstruct:
		return newReconstruct(r, spec)
	case KindSynthesized:
		return newSynthesized(r, spec), nil
	default:
		return nil, diagnostic.New(ErrConstructionInvariant, spec.String(), "", "unknown factory kind "+kind.String())
	}
}
