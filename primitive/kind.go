// Package primitive classifies scalar types for the trivial conversion chain.
package primitive

import (
	"reflect"
	"strconv"
)

//go:generate go tool stringer -type=KindEnum -linecomment -output=kind_string.go

// KindEnum is the scalar kind of a type. The zero value is not a scalar.
type KindEnum int

const (
	_ KindEnum = iota

	KindInt     // int
	KindInt8    // int8
	KindInt16   // int16
	KindInt32   // int32
	KindInt64   // int64
	KindUint    // uint
	KindUint8   // uint8
	KindUint16  // uint16
	KindUint32  // uint32
	KindUint64  // uint64
	KindFloat32 // float32
	KindFloat64 // float64
	KindBool    // bool
	KindString  // string
	// KindNamed is a named integer, boolean or string type, the shape
	// enumerations take in Go.
	KindNamed // named
)

const kindCount = int(KindNamed) + 1

type class uint8

const (
	classOther class = iota
	classSigned
	classUnsigned
	classFloat
)

type kindInfo struct {
	kind  reflect.Kind
	class class
	bits  int
}

var kinds = [kindCount]kindInfo{
	KindInt:     {reflect.Int, classSigned, strconv.IntSize},
	KindInt8:    {reflect.Int8, classSigned, 8},
	KindInt16:   {reflect.Int16, classSigned, 16},
	KindInt32:   {reflect.Int32, classSigned, 32},
	KindInt64:   {reflect.Int64, classSigned, 64},
	KindUint:    {reflect.Uint, classUnsigned, strconv.IntSize},
	KindUint8:   {reflect.Uint8, classUnsigned, 8},
	KindUint16:  {reflect.Uint16, classUnsigned, 16},
	KindUint32:  {reflect.Uint32, classUnsigned, 32},
	KindUint64:  {reflect.Uint64, classUnsigned, 64},
	KindFloat32: {reflect.Float32, classFloat, 32},
	KindFloat64: {reflect.Float64, classFloat, 64},
	KindBool:    {reflect.Bool, classOther, 0},
	KindString:  {reflect.String, classOther, 0},
	KindNamed:   {reflect.Invalid, classOther, 0},
}

var byReflectKind = func() map[reflect.Kind]KindEnum {
	m := make(map[reflect.Kind]KindEnum, len(kinds))
	for k, info := range kinds {
		if info.kind != reflect.Invalid {
			m[info.kind] = KindEnum(k)
		}
	}

	return m
}()

func (k KindEnum) info() kindInfo {
	if k <= 0 || int(k) >= kindCount {
		return kindInfo{}
	}

	return kinds[k]
}

func (k KindEnum) IsNumber() bool { return k.IsInteger() || k.IsFloat() }

func (k KindEnum) IsInteger() bool { return k.IsSigned() || k.IsUnsigned() }

func (k KindEnum) IsFloat() bool { return k.info().class == classFloat }

func (k KindEnum) IsSigned() bool { return k.info().class == classSigned }

func (k KindEnum) IsUnsigned() bool { return k.info().class == classUnsigned }

// Bits returns the width of a number kind, and 0 for every other kind.
func (k KindEnum) Bits() int { return k.info().bits }

// FromReflectType classifies predeclared scalar types exactly and reports
// named integer, boolean and string types as KindNamed. Named floats and
// non-scalars yield the zero kind.
func FromReflectType(t reflect.Type) KindEnum {
	if t == nil {
		return 0
	}

	kind := FromReflectKind(t.Kind())
	if kind == 0 || t.PkgPath() == "" {
		return kind
	}

	if kind.IsInteger() || kind == KindBool || kind == KindString {
		return KindNamed
	}

	return 0
}

// FromReflectKind maps an underlying reflect.Kind onto a scalar kind,
// ignoring whether the type is named.
func FromReflectKind(kind reflect.Kind) KindEnum {
	return byReflectKind[kind]
}
