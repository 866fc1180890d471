package convert

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duck-bridge/options"
)

type celsius float64

type level int8

type grade int8

func TestBuild(t *testing.T) {
	casters, err := NewCasters(strconv.Itoa)
	require.NoError(t, err)

	chain := Build(options.ScalarAll, casters)
	assert.Equal(t, []string{"identity", "assignable", "casters", "additive-enum", "safe-number"}, chain.Names())

	chain = Build(options.ScalarDefault, nil)
	assert.Equal(t, []string{"identity", "assignable", "additive-enum"}, chain.Names())

	assert.Empty(t, Build(options.ScalarNone, casters).Names())
}

func TestChain_Supports(t *testing.T) {
	casters, err := NewCasters(strconv.Itoa)
	require.NoError(t, err)

	chain := Build(options.ScalarAll, casters)

	tests := []struct {
		name     string
		from, to reflect.Type
		want     bool
	}{
		{"identity", reflect.TypeFor[int](), reflect.TypeFor[int](), true},
		{"assignable", reflect.TypeFor[*int](), reflect.TypeFor[any](), true},
		{"caster", reflect.TypeFor[int](), reflect.TypeFor[string](), true},
		{"caster one way", reflect.TypeFor[string](), reflect.TypeFor[int](), false},
		{"named integers", reflect.TypeFor[level](), reflect.TypeFor[grade](), true},
		{"named to predeclared", reflect.TypeFor[level](), reflect.TypeFor[int8](), true},
		{"widening", reflect.TypeFor[int8](), reflect.TypeFor[int64](), true},
		{"named float widening", reflect.TypeFor[celsius](), reflect.TypeFor[float64](), true},
		{"narrowing", reflect.TypeFor[int64](), reflect.TypeFor[int8](), false},
		{"unrelated", reflect.TypeFor[bool](), reflect.TypeFor[string](), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chain.Supports(tt.from, tt.to))
		})
	}

	var nilChain *Chain
	assert.False(t, nilChain.Supports(reflect.TypeFor[int](), reflect.TypeFor[int]()))
}

func TestChain_ObtainProxy(t *testing.T) {
	casters, err := NewCasters(strconv.Itoa, func(s string) (int, error) { return strconv.Atoi(s) })
	require.NoError(t, err)

	chain := Build(options.ScalarAll, casters)

	out, err := chain.ObtainProxy(reflect.ValueOf(42), reflect.TypeFor[string]())
	require.NoError(t, err)
	assert.Equal(t, "42", out.Interface())

	out, err = chain.ObtainProxy(reflect.ValueOf(level(3)), reflect.TypeFor[grade]())
	require.NoError(t, err)
	assert.Equal(t, grade(3), out.Interface())

	out, err = chain.ObtainProxy(reflect.ValueOf(int64(100)), reflect.TypeFor[int8]())
	require.NoError(t, err)
	assert.Equal(t, int8(100), out.Interface())

	assert.False(t, chain.CanProxy(reflect.ValueOf(int64(300)), reflect.TypeFor[int8]()))
	_, err = chain.ObtainProxy(reflect.ValueOf(int64(300)), reflect.TypeFor[int8]())
	assert.ErrorIs(t, err, ErrNoProvider)

	_, err = chain.ObtainProxy(reflect.ValueOf("x"), reflect.TypeFor[int]())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "casters converter")
}

func TestCaster_Declined(t *testing.T) {
	parse := func(s string) (bool, bool) { b, err := strconv.ParseBool(s); return b, err == nil }

	casters, err := NewCasters(parse)
	require.NoError(t, err)

	_, err = casters.ObtainProxy(reflect.ValueOf("maybe"), reflect.TypeFor[bool]())
	assert.ErrorIs(t, err, ErrCasterDeclined)

	out, err := casters.ObtainProxy(reflect.ValueOf("true"), reflect.TypeFor[bool]())
	require.NoError(t, err)
	assert.Equal(t, true, out.Interface())

	_, err = NewCasters(func() {})
	assert.ErrorIs(t, err, ErrIsNotACaster)
}

func TestPriority(t *testing.T) {
	hits := 0
	first := stubProvider{name: "low", priority: 1, hits: &hits}
	chain := NewChain(first, Identity{})

	assert.Equal(t, []string{"identity", "low"}, chain.Names())

	out, err := chain.ObtainProxy(reflect.ValueOf(7), reflect.TypeFor[int]())
	require.NoError(t, err)
	assert.Equal(t, 7, out.Interface())
	assert.Zero(t, hits)

	_, err = chain.ObtainProxy(reflect.ValueOf(7), reflect.TypeFor[string]())
	assert.True(t, errors.Is(err, errStub))
	assert.Equal(t, 1, hits)
}

var errStub = errors.New("stub")

type stubProvider struct {
	name     string
	priority int
	hits     *int
}

func (s stubProvider) Name() string                                  { return s.name }
func (s stubProvider) Priority() int                                 { return s.priority }
func (s stubProvider) Supports(_, _ reflect.Type) bool               { return true }
func (s stubProvider) CanProxy(_ reflect.Value, _ reflect.Type) bool { return true }

func (s stubProvider) ObtainProxy(reflect.Value, reflect.Type) (reflect.Value, error) {
	*s.hits++
	return reflect.Value{}, errStub
}
