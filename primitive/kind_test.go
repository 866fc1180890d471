package primitive_test

import (
	"fmt"
	"reflect"
	"time"

	"duck-bridge/primitive"
)

func Example() {
	type Level int
	type Label string
	type Celsius float64
	type Empty struct{}

	fmt.Println(primitive.FromReflectType(reflect.TypeFor[int]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[string]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[Level]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[Label]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[Celsius]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[time.Duration]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[Empty]()))
	fmt.Println(primitive.FromReflectKind(reflect.TypeFor[Celsius]().Kind()))
	fmt.Println(primitive.KindInt16.Bits(), primitive.KindUint8.IsUnsigned(), primitive.KindString.IsNumber())
	// Output:
	// int
	// string
	// named
	// named
	// KindEnum(0)
	// named
	// KindEnum(0)
	// float64
	// 16 true false
}
