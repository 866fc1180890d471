package primitive

import (
	"math"
	"reflect"
)

// mantissa is the count of integer bits a float kind holds exactly.
var mantissa = map[KindEnum]int{KindFloat32: 24, KindFloat64: 53}

// span is the guaranteed width range of k. int and uint are 32 or 64 bits
// depending on the platform, so only their narrowest width can be relied on
// as a source and their widest as a destination.
func span(k KindEnum) (lo, hi int) {
	if k == KindInt || k == KindUint {
		return 32, 64
	}

	return k.Bits(), k.Bits()
}

// IsSafe reports whether every value of kind from converts to kind to without
// precision loss on any platform.
func IsSafe(from, to KindEnum) bool {
	if !from.IsNumber() || !to.IsNumber() {
		return false
	}

	if from == to {
		return true
	}

	_, fromHi := span(from)
	toLo, _ := span(to)

	switch {
	case from.IsFloat():
		return to.IsFloat() && fromHi <= toLo
	case to.IsFloat():
		return fromHi <= mantissa[to]
	case from.IsSigned():
		return to.IsSigned() && fromHi <= toLo
	case to.IsUnsigned():
		return fromHi <= toLo
	default:
		// unsigned into signed needs a spare sign bit
		return fromHi < toLo
	}
}

// Fits reports whether the numeric value v survives conversion to kind to.
// It is the value-level counterpart of IsSafe for narrowing conversions.
func Fits(v reflect.Value, to KindEnum) bool {
	from := FromReflectKind(v.Kind())
	if !from.IsNumber() || !to.IsNumber() {
		return false
	}

	if IsSafe(from, to) {
		return true
	}

	switch {
	case from.IsFloat():
		f := v.Float()
		if to.IsFloat() {
			return to == KindFloat64 || float64(float32(f)) == f
		}

		if f != math.Trunc(f) {
			return false
		}

		if to.IsSigned() {
			lo, hi := signedRange(to)
			return within(float64(lo), f, float64(hi))
		}

		return within(0, f, float64(unsignedMax(to)))

	case from.IsSigned():
		i := v.Int()
		switch {
		case to.IsSigned():
			lo, hi := signedRange(to)
			return within(lo, i, hi)
		case to.IsUnsigned():
			return i >= 0 && within(0, uint64(i), unsignedMax(to))
		default:
			return within(-(1<<24), i, 1<<24) || (to == KindFloat64 && within(-(1<<53), i, 1<<53))
		}

	default:
		u := v.Uint()
		switch {
		case to.IsSigned():
			_, hi := signedRange(to)
			return u <= uint64(hi)
		case to.IsUnsigned():
			return within(0, u, unsignedMax(to))
		default:
			return u <= 1<<24 || (to == KindFloat64 && u <= 1<<53)
		}
	}
}

func signedRange(k KindEnum) (int64, int64) {
	bits := k.Bits()
	if bits >= 64 {
		return math.MinInt64, math.MaxInt64
	}

	return -(1 << (bits - 1)), 1<<(bits-1) - 1
}

func unsignedMax(k KindEnum) uint64 {
	bits := k.Bits()
	if bits >= 64 {
		return math.MaxUint64
	}

	return 1<<bits - 1
}

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// within reports whether lo <= v <= hi.
func within[T number](lo, v, hi T) bool {
	return lo <= v && v <= hi
}
