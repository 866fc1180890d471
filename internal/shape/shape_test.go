package shape

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color int

const (
	red color = iota
	green
	blue
)

func (c color) String() string {
	return [...]string{"red", "green", "blue"}[c]
}

type level uint8

type box[T any] struct{ V T }

type reader interface {
	Read(p []byte) (int, error)
	Close() error
}

type opener struct {
	Open  func(name string) error `bridge:"OpenFile, Load"`
	Flush func()
}

type fullTable struct {
	opener
	Seek func(off int64) int64
}

type counter struct{ n int }

func (c *counter) Add(d int) int { c.n += d; return c.n }
func (c *counter) Value() int    { return c.n }

type point struct {
	X, Y int
	tag  string
}

func TestKindOf(t *testing.T) {
	cat := NewCatalog()
	require.NoError(t, RegisterEnum(cat, red, green, blue))

	tests := []struct {
		typ  reflect.Type
		want Kind
	}{
		{reflect.TypeFor[int](), KindScalar},
		{reflect.TypeFor[string](), KindScalar},
		{reflect.TypeFor[color](), KindEnum},
		{reflect.TypeFor[level](), KindScalar},
		{reflect.TypeFor[[]color](), KindArray},
		{reflect.TypeFor[[2][3]int](), KindArray},
		{reflect.TypeFor[sql.NullString](), KindOptional},
		{reflect.TypeFor[sql.Null[color]](), KindOptional},
		{reflect.TypeFor[reader](), KindContract},
		{reflect.TypeFor[func(int) int](), KindContract},
		{reflect.TypeFor[*opener](), KindContract},
		{reflect.TypeFor[*int](), KindByRef},
		{reflect.TypeFor[*reader](), KindByRef},
		{reflect.TypeFor[point](), KindRecord},
		{reflect.TypeFor[*point](), KindRecord},
		{reflect.TypeFor[map[string]int](), KindOpaque},
		{reflect.TypeFor[any](), KindOpaque},
		{nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, cat.KindOf(tt.typ))
		})
	}
}

func TestBridgeSpec(t *testing.T) {
	spec := NewSpec(reflect.TypeFor[*counter](), reflect.TypeFor[reader]())
	assert.Equal(t, "*shape.counter->shape.reader", spec.String())
	assert.Equal(t, "shape.reader->*shape.counter", spec.Reversed().String())
	assert.Equal(t, spec, spec.Reversed().Reversed())
	assert.False(t, spec.Identical())

	tagged := spec.WithContext("rpc")
	assert.NotEqual(t, spec, tagged)
	assert.Equal(t, "*shape.counter@rpc->shape.reader@rpc", tagged.String())

	nested := tagged.Nested(reflect.TypeFor[int](), reflect.TypeFor[int]())
	assert.Equal(t, "rpc", nested.Proxy.Context)
	assert.True(t, nested.Identical())

	cache := map[BridgeSpec]int{spec: 1}
	assert.Equal(t, 1, cache[NewSpec(reflect.TypeFor[*counter](), reflect.TypeFor[reader]())])
}

func TestRank(t *testing.T) {
	assert.Equal(t, 0, Rank(reflect.TypeFor[int]()))
	assert.Equal(t, 1, Rank(reflect.TypeFor[[]int]()))
	assert.Equal(t, 2, Rank(reflect.TypeFor[[][4]int]()))
}

func TestOptionalInner(t *testing.T) {
	inner, idx, ok := OptionalInner(reflect.TypeFor[sql.NullInt64]())
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[int64](), inner)
	assert.Equal(t, 0, idx)

	_, _, ok = OptionalInner(reflect.TypeFor[point]())
	assert.False(t, ok)
}

func TestIsRecord(t *testing.T) {
	assert.True(t, IsRecord(reflect.TypeFor[point]()))
	assert.False(t, IsRecord(reflect.TypeFor[sql.NullBool]()))
	assert.False(t, IsRecord(reflect.TypeFor[opener]()))
	assert.False(t, IsRecord(reflect.TypeFor[struct{ x int }]()))
	assert.Len(t, RecordFields(reflect.TypeFor[*point]()), 2)
}

func TestIsExported(t *testing.T) {
	assert.True(t, IsExported(reflect.TypeFor[int]()))
	assert.True(t, IsExported(reflect.TypeFor[[]sql.NullString]()))
	assert.False(t, IsExported(reflect.TypeFor[*point]()))
	assert.False(t, IsExported(reflect.TypeFor[map[string]color]()))
}

func TestCatalog_Enum(t *testing.T) {
	cat := NewCatalog()
	require.NoError(t, RegisterEnum(cat, red, green))

	info, ok := cat.Enum(reflect.TypeFor[color]())
	require.True(t, ok)
	assert.Equal(t, []int64{0, 1}, info.Values())
	assert.Equal(t, "green", info.Name(1))
	assert.Equal(t, "unknown", info.Name(2))

	require.NoError(t, RegisterEnum(cat, red, green, blue))
	wide, _ := cat.Enum(reflect.TypeFor[color]())
	assert.True(t, info.SubsetOf(wide))
	assert.False(t, wide.SubsetOf(info))
	assert.False(t, info.SameValues(wide))

	err := cat.RegisterEnumType(reflect.TypeFor[string](), reflect.ValueOf("x"))
	assert.ErrorIs(t, err, ErrNotInteger)

	err = RegisterEnum[level](cat)
	assert.ErrorIs(t, err, ErrNoMembers)
}

func TestKey(t *testing.T) {
	assert.Equal(t, int64(-1), Key(reflect.ValueOf(int8(-1))))
	assert.Equal(t, int64(255), Key(reflect.ValueOf(level(255))))
}

func TestCatalog_Generic(t *testing.T) {
	cat := NewCatalog()
	typ := reflect.TypeFor[box[int]]()
	require.NoError(t, cat.RegisterGeneric(typ, reflect.TypeFor[int]()))

	info, ok := cat.Generic(typ)
	require.True(t, ok)
	assert.Equal(t, "duck-bridge/internal/shape.box", info.Definition)
	assert.Equal(t, []reflect.Type{reflect.TypeFor[int]()}, info.Args)

	err := cat.RegisterGeneric(reflect.TypeFor[point](), reflect.TypeFor[int]())
	assert.ErrorIs(t, err, ErrNotGeneric)
}

func TestCatalog_Alias(t *testing.T) {
	cat := NewCatalog()
	require.NoError(t, cat.RegisterAlias(reflect.TypeFor[reader](), "Close", "Shutdown"))

	methods, err := ContractMethods(reflect.TypeFor[reader](), cat)
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, "Close", methods[0].Name)
	assert.True(t, methods[0].Accepts("Shutdown"))
	assert.False(t, methods[1].Accepts("Shutdown"))

	err = cat.RegisterAlias(reflect.TypeFor[reader](), "Write", "Put")
	assert.ErrorIs(t, err, ErrNoSuchMethod)

	err = cat.RegisterAlias(reflect.TypeFor[point](), "X")
	assert.ErrorIs(t, err, ErrNotContract)
}

func TestContractMethods_Table(t *testing.T) {
	methods, err := ContractMethods(reflect.TypeFor[*fullTable](), nil)
	require.NoError(t, err)

	var names []string
	for _, m := range methods {
		names = append(names, m.Name)
	}

	assert.Equal(t, []string{"Open", "Flush", "Seek"}, names)
	assert.Equal(t, []string{"OpenFile", "Load"}, methods[0].Aliases)
	assert.True(t, methods[0].IsField())
	assert.Equal(t, []int{0, 0}, methods[0].Field())

	_, err = ContractMethods(reflect.TypeFor[point](), nil)
	assert.ErrorIs(t, err, ErrNotContract)
}

func TestTargetMethods_Bind(t *testing.T) {
	methods := TargetMethods(reflect.TypeFor[*counter]())
	require.Len(t, methods, 2)
	assert.Equal(t, "Add", methods[0].Name)
	assert.Equal(t, reflect.TypeFor[func(int) int](), methods[0].Type)

	c := &counter{}
	fn, err := methods[0].Bind(reflect.ValueOf(c))
	require.NoError(t, err)
	out := fn.Call([]reflect.Value{reflect.ValueOf(5)})
	assert.Equal(t, 5, int(out[0].Int()))
	assert.Equal(t, 5, c.n)
}

func TestMethod_BindInterface(t *testing.T) {
	type valuer interface{ Value() int }

	methods := TargetMethods(reflect.TypeFor[valuer]())
	require.Len(t, methods, 1)

	fn, err := methods[0].Bind(reflect.ValueOf(&counter{n: 3}))
	require.NoError(t, err)
	assert.Equal(t, 3, int(fn.Call(nil)[0].Int()))

	_, err = methods[0].Bind(reflect.ValueOf(point{}))
	assert.ErrorIs(t, err, ErrUnbound)
}

func TestMethod_BindTableAndFunc(t *testing.T) {
	methods := TargetMethods(reflect.TypeFor[*opener]())
	require.Len(t, methods, 2)

	_, err := methods[1].Bind(reflect.ValueOf(&opener{}))
	assert.ErrorIs(t, err, ErrUnbound)

	called := false
	fn, err := methods[1].Bind(reflect.ValueOf(&opener{Flush: func() { called = true }}))
	require.NoError(t, err)
	fn.Call(nil)
	assert.True(t, called)

	call := TargetMethods(reflect.TypeFor[func() error]())
	require.Len(t, call, 1)
	assert.Equal(t, "call", call[0].Display())

	fn, err = call[0].Bind(reflect.ValueOf(func() error { return errors.New("x") }))
	require.NoError(t, err)
	assert.EqualError(t, fn.Call(nil)[0].Interface().(error), "x")

	_, err = call[0].Bind(reflect.ValueOf((func() error)(nil)))
	assert.ErrorIs(t, err, ErrUnbound)
}

func TestMemberPath(t *testing.T) {
	p := NewMemberPath("Reader").Member("Read")
	assert.Equal(t, "Reader.Read", p.String())
	assert.Equal(t, "Reader.Read.in[1]", p.Param(1).String())
	assert.Equal(t, "Reader.Read.out[0][]", p.Result(0).Elem().String())
}
