package emit

import (
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duck-bridge/internal/shape"
)

type greeter interface {
	Greet(name string) string
	Count() int
}

type greeterShim struct{ inv Invoker }

func (s *greeterShim) Greet(name string) string { return Out[string](s.inv.Call("Greet", name), 0) }
func (s *greeterShim) Count() int               { return Out[int](s.inv.Call("Count"), 0) }

type table struct {
	Sum  func(xs ...int) int
	Name func() string
}

func constant(vals ...any) Handler {
	return func([]reflect.Value) []reflect.Value {
		out := make([]reflect.Value, len(vals))
		for i, v := range vals {
			out[i] = reflect.ValueOf(v)
		}

		return out
	}
}

func contract(t *testing.T, typ reflect.Type) []shape.Method {
	t.Helper()

	methods, err := shape.ContractMethods(typ, nil)
	require.NoError(t, err)

	return methods
}

func TestEmit_Func(t *testing.T) {
	e := NewEmitter()
	typ := reflect.TypeFor[func(int) string]()

	fn, err := e.Emit(typ, contract(t, typ), []Handler{func(args []reflect.Value) []reflect.Value {
		return []reflect.Value{reflect.ValueOf(strings.Repeat("x", int(args[0].Int())))}
	}})
	require.NoError(t, err)

	f := fn.Interface().(func(int) string)
	assert.Equal(t, "xxx", f(3))
	assert.True(t, e.Supports(typ))
}

func TestEmit_Table(t *testing.T) {
	e := NewEmitter()
	typ := reflect.TypeFor[*table]()

	sum := func(args []reflect.Value) []reflect.Value {
		total := 0
		for _, x := range args[0].Interface().([]int) {
			total += x
		}

		return []reflect.Value{reflect.ValueOf(total)}
	}

	v, err := e.Emit(typ, contract(t, typ), []Handler{sum, constant("tbl")})
	require.NoError(t, err)

	tbl := v.Interface().(*table)
	assert.Equal(t, 6, tbl.Sum(1, 2, 3))
	assert.Equal(t, "tbl", tbl.Name())

	_, err = e.Emit(typ, contract(t, typ), []Handler{sum})
	assert.ErrorContains(t, err, "2 members but 1 handlers")
}

func TestEmit_Interface(t *testing.T) {
	e := NewEmitter()
	typ := reflect.TypeFor[greeter]()
	methods := contract(t, typ)

	assert.False(t, e.Supports(typ))

	_, err := e.Emit(typ, methods, []Handler{constant(1), constant("hi")})
	require.ErrorIs(t, err, ErrNoShim)

	require.NoError(t, e.Register(typ, func(inv Invoker) any { return &greeterShim{inv} }))
	assert.True(t, e.Supports(typ))

	greet := func(args []reflect.Value) []reflect.Value {
		return []reflect.Value{reflect.ValueOf("hi " + args[0].String())}
	}

	// reflect lists interface methods lexicographically: Count, Greet
	v, err := e.Emit(typ, methods, []Handler{constant(2), greet})
	require.NoError(t, err)

	g := v.Interface().(greeter)
	assert.Equal(t, "hi bob", g.Greet("bob"))
	assert.Equal(t, 2, g.Count())
}

func TestEmit_ShimMismatch(t *testing.T) {
	e := NewEmitter()
	typ := reflect.TypeFor[greeter]()
	require.NoError(t, e.Register(typ, func(Invoker) any { return 42 }))

	_, err := e.Emit(typ, contract(t, typ), []Handler{constant(1), constant("x")})
	assert.ErrorIs(t, err, ErrShimMismatch)

	err = e.Register(reflect.TypeFor[int](), func(Invoker) any { return nil })
	assert.ErrorIs(t, err, ErrNotAnInterface)
}

func TestDispatch(t *testing.T) {
	typ := reflect.TypeFor[io.ReadCloser]()
	methods := contract(t, typ)

	var got []byte

	read := func(args []reflect.Value) []reflect.Value {
		got = args[0].Bytes()
		return []reflect.Value{reflect.ValueOf(len(got)), reflect.Zero(reflect.TypeFor[error]())}
	}

	d := newDispatch(typ, methods, []Handler{constant(nil), read})

	out := d.Call("Read", []byte("abc"))
	assert.Equal(t, []byte("abc"), got)
	assert.Equal(t, 3, Out[int](out, 0))
	assert.NoError(t, Out[error](out, 1))

	out = d.Call("Read", nil)
	assert.Equal(t, 0, Out[int](out, 0))

	assert.Panics(t, func() { d.Call("Write", nil) })
	assert.Panics(t, func() { d.Call("Read") })
	assert.Panics(t, func() { d.Call("Read", "abc") })
}
