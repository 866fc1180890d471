package bridge

import (
	"reflect"

	"duck-bridge/internal/emit"
	"duck-bridge/internal/plan"
	"duck-bridge/internal/shape"
)

type (
	// Spec identifies one bridging request: a target type and the proxy
	// type its values are presented as.
	Spec = shape.BridgeSpec
	// TypeRef is a type qualified by a resolution context.
	TypeRef = shape.TypeRef
	// Catalog records enumerations, generic instantiations and member aliases.
	Catalog = shape.Catalog
	// Integer constrains enumeration types.
	Integer = shape.Integer
	// AdapterPlan is the resolved member mapping of a synthesized adapter.
	AdapterPlan = plan.AdapterPlan
	// Invoker receives every call made on an interface shim.
	Invoker = emit.Invoker
	// Shim builds a value implementing an interface contract around an Invoker.
	Shim = emit.Shim
	// ShimConfig configures ShimSource.
	ShimConfig = emit.ShimConfig
)

// NewSpec creates a spec without resolution context.
func NewSpec(target, proxy reflect.Type) Spec {
	return shape.NewSpec(target, proxy)
}

// SpecFor creates the spec bridging T values to P.
func SpecFor[T, P any]() Spec {
	return shape.NewSpec(reflect.TypeFor[T](), reflect.TypeFor[P]())
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return shape.NewCatalog()
}

// RegisterEnum records the members of the enumeration E.
func RegisterEnum[E Integer](c *Catalog, members ...E) error {
	return shape.RegisterEnum(c, members...)
}

// Out returns result i of an Invoker call as T. Generated shims use it.
func Out[T any](out []any, i int) T {
	return emit.Out[T](out, i)
}

// ShimSource renders Go source of a Shim for the interface iface.
func ShimSource(iface reflect.Type, cfg ShimConfig) ([]byte, error) {
	return emit.ShimSource(iface, cfg)
}
