package shape

import (
	"reflect"

	"duck-bridge/internal/common"
)

// TypeRef identifies a type in a given context.
// The context disambiguates origin when one type plays different roles.
type TypeRef struct {
	Context string
	Type    reflect.Type
}

// Ref returns a TypeRef with an empty context.
func Ref(t reflect.Type) TypeRef {
	return TypeRef{Type: t}
}

// String returns a human-readable representation of the TypeRef.
func (r TypeRef) String() string {
	s := common.TypeString(r.Type)
	if r.Context != "" {
		s += "@" + r.Context
	}

	return s
}

// BridgeSpec names one required bridging direction: values of Target are
// wrapped so that they can be used as Proxy.
type BridgeSpec struct {
	Target TypeRef
	Proxy  TypeRef
}

// NewSpec creates a BridgeSpec with empty contexts.
func NewSpec(target, proxy reflect.Type) BridgeSpec {
	return BridgeSpec{Target: Ref(target), Proxy: Ref(proxy)}
}

// WithContext returns a copy of the spec with both sides tagged by ctx.
func (s BridgeSpec) WithContext(ctx string) BridgeSpec {
	s.Target.Context = ctx
	s.Proxy.Context = ctx

	return s
}

// Nested derives a spec for a nested position, keeping the context of s.
func (s BridgeSpec) Nested(target, proxy reflect.Type) BridgeSpec {
	return BridgeSpec{
		Target: TypeRef{Context: s.Target.Context, Type: target},
		Proxy:  TypeRef{Context: s.Proxy.Context, Type: proxy},
	}
}

// Reversed swaps target and proxy.
func (s BridgeSpec) Reversed() BridgeSpec {
	return BridgeSpec{Target: s.Proxy, Proxy: s.Target}
}

// Identical reports whether both sides denote the same type.
func (s BridgeSpec) Identical() bool {
	return s.Target.Type == s.Proxy.Type
}

// String renders the spec as "target->proxy".
func (s BridgeSpec) String() string {
	return s.Target.String() + "->" + s.Proxy.String()
}

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the bridging shape of a type.
type Kind int

const (
	KindUnknown Kind = iota // unknown
	// KindScalar covers bool, numbers, strings and named non-enum variants.
	KindScalar // scalar
	// KindEnum is a named integer registered with its member set.
	KindEnum // enum
	// KindArray is a slice or a fixed array.
	KindArray // array
	// KindOptional is a struct {V T; Valid bool}.
	KindOptional // optional
	// KindContract is a non-empty interface, a func type or a *func table.
	KindContract // contract
	// KindByRef is a pointer to a non-struct.
	KindByRef // by-ref
	// KindRecord is a struct or *struct with exported fields.
	KindRecord // record
	// KindOpaque covers maps, channels, empty interfaces and the rest.
	KindOpaque // opaque
)

// IsArray reports whether t is a slice or a fixed array.
func IsArray(t reflect.Type) bool {
	return t != nil && (t.Kind() == reflect.Slice || t.Kind() == reflect.Array)
}

// Rank returns the number of directly nested array levels of t.
func Rank(t reflect.Type) int {
	rank := 0
	for IsArray(t) {
		rank++
		t = t.Elem()
	}

	return rank
}

// IsByRef reports whether t is a by-reference position: a pointer whose
// element is not a struct.
func IsByRef(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Pointer && t.Elem().Kind() != reflect.Struct
}

// OptionalInner returns the wrapped type and its field index when t is an
// optional wrapper: a struct of exactly one exported value field and a
// Valid bool field.
func OptionalInner(t reflect.Type) (reflect.Type, int, bool) {
	if t == nil || t.Kind() != reflect.Struct || t.NumField() != 2 {
		return nil, 0, false
	}

	valid := -1
	for i := range 2 {
		f := t.Field(i)
		if f.Name == "Valid" && f.Type.Kind() == reflect.Bool {
			valid = i
		}
	}

	if valid < 0 {
		return nil, 0, false
	}

	value := t.Field(1 - valid)
	if !value.IsExported() || value.Anonymous {
		return nil, 0, false
	}

	return value.Type, value.Index[0], true
}

// IsFuncTable reports whether t is a struct whose fields are all exported
// funcs or embedded func tables.
func IsFuncTable(t reflect.Type) bool {
	if t == nil || t.Kind() != reflect.Struct || t.NumField() == 0 {
		return false
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() && !f.Anonymous {
			return false
		}

		switch {
		case f.Type.Kind() == reflect.Func:
		case f.Anonymous && IsFuncTable(f.Type):
		default:
			return false
		}
	}

	return true
}

// IsContract reports whether t is a contract shape.
func IsContract(t reflect.Type) bool {
	if t == nil {
		return false
	}

	switch t.Kind() {
	case reflect.Interface:
		return t.NumMethod() > 0
	case reflect.Func:
		return true
	case reflect.Pointer:
		return IsFuncTable(t.Elem())
	default:
		return false
	}
}

// RecordFields returns the exported fields of a record in declaration order.
// Pointers to structs are dereferenced.
func RecordFields(t reflect.Type) []reflect.StructField {
	if t == nil {
		return nil
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []reflect.StructField
	for i := range t.NumField() {
		if f := t.Field(i); f.IsExported() {
			fields = append(fields, f)
		}
	}

	return fields
}

// IsRecord reports whether t is a struct (or pointer to struct) with at
// least one exported field, excluding optional wrappers and func tables.
func IsRecord(t reflect.Type) bool {
	if t == nil {
		return false
	}

	s := t
	if s.Kind() == reflect.Pointer {
		s = s.Elem()
	}

	if s.Kind() != reflect.Struct || IsFuncTable(s) {
		return false
	}

	if _, _, ok := OptionalInner(t); ok {
		return false
	}

	return len(RecordFields(s)) > 0
}

// IsScalar reports whether t is a boolean, numeric, string or complex type.
func IsScalar(t reflect.Type) bool {
	if t == nil {
		return false
	}

	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// IsExported reports whether a named type, and every named type it is
// composed of, is exported.
func IsExported(t reflect.Type) bool {
	if t == nil {
		return true
	}

	if t.Name() != "" && t.PkgPath() != "" {
		return common.IsExportedName(t.Name())
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
		return IsExported(t.Elem())
	case reflect.Map:
		return IsExported(t.Key()) && IsExported(t.Elem())
	default:
		return true
	}
}
