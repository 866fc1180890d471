package bridge

import (
	"fmt"
	"reflect"

	"duck-bridge/internal/common"
	"duck-bridge/internal/diagnostic"
	"duck-bridge/internal/shape"
	"duck-bridge/options"
)

// enumMap maps enumeration members by identical numeric value.
type enumMap struct {
	leaf
	target, proxy *shape.EnumInfo
}

func newEnumMap(r *Registry, spec Spec) (*enumMap, error) {
	te, _ := r.catalog.Enum(spec.Target.Type)
	pe, _ := r.catalog.Enum(spec.Proxy.Type)

	if te.Type.Kind() != pe.Type.Kind() {
		return nil, diagnostic.New(ErrSpecRejected, spec.String(), "",
			fmt.Sprintf("enum widths differ: %s vs %s", te.Type.Kind(), pe.Type.Kind()))
	}

	switch r.config.Enums {
	case options.EnumStrict:
		if !te.SameValues(pe) {
			return nil, diagnostic.New(ErrSpecRejected, spec.String(), "", "enum value sets differ under strict policy")
		}
	case options.EnumAllowAdditive:
		// Parameter specs run from the contract side to the target side, so
		// either set may be the extended one.
		if !te.SubsetOf(pe) && !pe.SubsetOf(te) {
			return nil, diagnostic.New(ErrSpecRejected, spec.String(), "", "neither enum extends the other")
		}
	case options.EnumDefer:
	}

	return &enumMap{leaf: leaf{r: r, spec: spec}, target: te, proxy: pe}, nil
}

func (e *enumMap) Kind() FactoryKind { return KindEnumMap }

func (e *enumMap) ObtainAdapter(target reflect.Value) (reflect.Value, error) {
	return e.mapValue(target, e.proxy)
}

func (e *enumMap) Back(proxy reflect.Value) (reflect.Value, error) {
	return e.mapValue(proxy, e.target)
}

func (e *enumMap) mapValue(v reflect.Value, to *shape.EnumInfo) (reflect.Value, error) {
	v = concrete(v)
	if !v.IsValid() {
		return zero(to.Type), nil
	}

	key := shape.Key(v)
	if !to.Has(key) {
		return reflect.Value{}, valueError(e.spec, "", describe(v),
			fmt.Errorf("%s has no member with value %d", common.TypeString(to.Type), key))
	}

	out := zero(to.Type)

	switch out.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		out.SetUint(uint64(key))
	default:
		out.SetInt(key)
	}

	return out, nil
}
