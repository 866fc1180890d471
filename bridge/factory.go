package bridge

import "reflect"

//go:generate go tool stringer -type=FactoryKind -linecomment -output=factorykind_string.go

// FactoryKind identifies the variant of a factory.
type FactoryKind int

const (
	// KindNoOp passes values through, converting scalars when needed.
	KindNoOp FactoryKind = iota // noop
	// KindEnumMap maps enumeration members by numeric value.
	KindEnumMap // enum
	// KindArrayMap maps slices and arrays element by element.
	KindArrayMap // array
	// KindNullableMap maps optional wrappers through their inner values.
	KindNullableMap // nullable
	// KindSynthesized emits adapters implementing a contract.
	KindSynthesized // synthesized
	// KindReconstruct rebuilds records field by field.
	KindReconstruct // reconstruct
)

// Factory turns target values of one spec into proxy values.
type Factory interface {
	Spec() Spec
	Kind() FactoryKind
	// ObtainAdapter returns the proxy value for target.
	ObtainAdapter(target reflect.Value) (reflect.Value, error)
	// TryUnwrap returns the target behind candidate when candidate is an
	// adapter produced by this factory.
	TryUnwrap(candidate reflect.Value) (reflect.Value, bool)
}

// reverser is implemented by leaf factories, which also map proxy values
// back to the target side.
type reverser interface {
	Back(proxy reflect.Value) (reflect.Value, error)
}

// needer lists nested specs a factory converts through.
type needer interface {
	Needs() []Spec
}

// leaf carries the parts shared by every non-synthesized factory.
type leaf struct {
	r    *Registry
	spec Spec
}

func (l *leaf) Spec() Spec { return l.spec }

func (l *leaf) TryUnwrap(reflect.Value) (reflect.Value, bool) { return reflect.Value{}, false }

// zero returns the zero value of t.
func zero(t reflect.Type) reflect.Value {
	return reflect.New(t).Elem()
}

// isNil reports whether v is invalid or a nil reference.
func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// typed returns v as a value of type t when it is assignable.
func typed(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() {
		return zero(t), true
	}

	if v.Type() == t {
		return v, true
	}

	if v.Type().AssignableTo(t) {
		out := zero(t)
		out.Set(v)

		return out, true
	}

	if v.Kind() == reflect.Interface && !v.IsNil() {
		return typed(v.Elem(), t)
	}

	return reflect.Value{}, false
}
