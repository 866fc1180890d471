package match

import (
	"database/sql"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duck-bridge/internal/shape"
	"duck-bridge/options"
)

type color int

const (
	red color = iota
	green
	blue
)

type shade int

const (
	shadeRed shade = iota
	shadeGreen
	shadeBlue
)

type tint int8

type valuer interface{ Value() int }

type getter interface{ Get() int }

type pair struct{ A, B int }

type couple struct{ X, Y int }

type trio struct{ A, B, C int }

type node struct {
	Next *node
	Val  int
}

type link struct {
	Next *link
	Val  int
}

type box[T any] struct{ V T }

type crate[T any] struct{ V T }

// sameKind supports conversion between scalars of one reflect kind.
type sameKind struct{}

func (sameKind) Supports(from, to reflect.Type) bool {
	return shape.IsScalar(from) && from.Kind() == to.Kind()
}

func newMatcher(t *testing.T, policy options.EnumPolicy) *Matcher {
	t.Helper()

	cat := shape.NewCatalog()
	require.NoError(t, shape.RegisterEnum(cat, red, green))
	require.NoError(t, shape.RegisterEnum(cat, shadeRed, shadeGreen, shadeBlue))
	require.NoError(t, shape.RegisterEnum(cat, tint(0), tint(1)))
	require.NoError(t, cat.RegisterGeneric(reflect.TypeFor[box[color]](), reflect.TypeFor[color]()))
	require.NoError(t, cat.RegisterGeneric(reflect.TypeFor[box[shade]](), reflect.TypeFor[shade]()))
	require.NoError(t, cat.RegisterGeneric(reflect.TypeFor[crate[shade]](), reflect.TypeFor[shade]()))

	return NewMatcher(cat, policy, sameKind{})
}

func TestVerdict_String(t *testing.T) {
	tests := []struct {
		verdict  Verdict
		expected string
	}{
		{VerdictExact, "exact"},
		{VerdictAssignable, "assignable"},
		{VerdictIfProxied, "if_proxied"},
		{VerdictFalse, "false"},
		{Verdict(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.verdict.String())
		})
	}
}

func TestWeakest(t *testing.T) {
	assert.Equal(t, VerdictFalse, Weakest(VerdictExact, VerdictFalse))
	assert.Equal(t, VerdictIfProxied, Weakest(VerdictIfProxied, VerdictAssignable))
	assert.Equal(t, VerdictExact, Weakest(VerdictExact, VerdictExact))
	assert.Less(t, VerdictIfProxied, VerdictAssignable)
}

func TestMatcher_Match(t *testing.T) {
	m := newMatcher(t, options.EnumAllowAdditive)

	tests := []struct {
		name   string
		target reflect.Type
		proxy  reflect.Type
		pos    Position
		want   Verdict
	}{
		{"identical", reflect.TypeFor[int](), reflect.TypeFor[int](), Return, VerdictExact},
		{"by-ref mismatch", reflect.TypeFor[*int](), reflect.TypeFor[int](), Parameter, VerdictFalse},
		{"enum subset", reflect.TypeFor[color](), reflect.TypeFor[shade](), Return, VerdictIfProxied},
		{"enum superset", reflect.TypeFor[shade](), reflect.TypeFor[color](), Return, VerdictFalse},
		{"enum width", reflect.TypeFor[tint](), reflect.TypeFor[color](), Return, VerdictFalse},
		{"slice of contracts", reflect.TypeFor[[]valuer](), reflect.TypeFor[[]getter](), Return, VerdictIfProxied},
		{"slice of enums", reflect.TypeFor[[]color](), reflect.TypeFor[[]shade](), Return, VerdictIfProxied},
		{"slice vs array", reflect.TypeFor[[]int](), reflect.TypeFor[[2]int](), Return, VerdictFalse},
		{"array lengths", reflect.TypeFor[[2]color](), reflect.TypeFor[[3]shade](), Return, VerdictFalse},
		{"slice of strings vs ints", reflect.TypeFor[[]string](), reflect.TypeFor[[]int](), Return, VerdictFalse},
		{"assignable return", reflect.TypeFor[*pair](), reflect.TypeFor[any](), Return, VerdictAssignable},
		{"assignable wrong direction", reflect.TypeFor[*pair](), reflect.TypeFor[any](), Parameter, VerdictFalse},
		{"contract proxy", reflect.TypeFor[*pair](), reflect.TypeFor[valuer](), Return, VerdictIfProxied},
		{"contract target", reflect.TypeFor[getter](), reflect.TypeFor[*pair](), Parameter, VerdictIfProxied},
		{"optional", reflect.TypeFor[sql.Null[color]](), reflect.TypeFor[sql.Null[shade]](), Return, VerdictIfProxied},
		{"optional incompatible", reflect.TypeFor[sql.NullString](), reflect.TypeFor[sql.NullBool](), Return, VerdictFalse},
		{"generic", reflect.TypeFor[box[color]](), reflect.TypeFor[box[shade]](), Return, VerdictIfProxied},
		{"generic definitions", reflect.TypeFor[box[shade]](), reflect.TypeFor[crate[shade]](), Return, VerdictFalse},
		{"records", reflect.TypeFor[pair](), reflect.TypeFor[couple](), Return, VerdictIfProxied},
		{"record pointers", reflect.TypeFor[*pair](), reflect.TypeFor[*couple](), Parameter, VerdictIfProxied},
		{"record arity", reflect.TypeFor[pair](), reflect.TypeFor[trio](), Return, VerdictFalse},
		{"recursive records", reflect.TypeFor[*node](), reflect.TypeFor[*link](), Return, VerdictIfProxied},
		{"same scalar", reflect.TypeFor[int32](), reflect.TypeFor[int32](), Return, VerdictExact},
		{"unrelated scalars", reflect.TypeFor[string](), reflect.TypeFor[int](), Return, VerdictFalse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.target, tt.proxy, tt.pos)
			assert.Equal(t, tt.want, got.Verdict, got.Reason)
		})
	}
}

func TestMatcher_EnumPolicies(t *testing.T) {
	ct, st := reflect.TypeFor[color](), reflect.TypeFor[shade]()

	strict := newMatcher(t, options.EnumStrict)
	assert.Equal(t, VerdictFalse, strict.Match(ct, st, Return).Verdict)
	assert.Equal(t, VerdictFalse, strict.Match(st, ct, Parameter).Verdict)

	additive := newMatcher(t, options.EnumAllowAdditive)
	assert.Equal(t, VerdictIfProxied, additive.Match(ct, st, Return).Verdict)
	assert.Equal(t, VerdictIfProxied, additive.Match(ct, st, Parameter).Verdict)
	assert.Equal(t, VerdictFalse, additive.Match(st, ct, Return).Verdict)

	deferred := newMatcher(t, options.EnumDefer)
	assert.Equal(t, VerdictIfProxied, deferred.Match(st, ct, Return).Verdict)
	assert.Equal(t, VerdictFalse, deferred.Match(reflect.TypeFor[tint](), ct, Return).Verdict)
}

func TestMatcher_ByRef(t *testing.T) {
	m := newMatcher(t, options.EnumDefer)

	res := m.Match(reflect.TypeFor[*color](), reflect.TypeFor[*shade](), Parameter)
	assert.Equal(t, VerdictIfProxied, res.Verdict)
	assert.True(t, res.ByRef)
	assert.Equal(t, reflect.TypeFor[color](), res.Target)
	assert.Equal(t, reflect.TypeFor[shade](), res.Proxy)

	res = m.Match(reflect.TypeFor[*int](), reflect.TypeFor[*string](), Parameter)
	assert.Equal(t, VerdictFalse, res.Verdict)
}

func TestMatcher_Scalars(t *testing.T) {
	type celsius float64
	m := newMatcher(t, options.EnumStrict)
	assert.Equal(t, VerdictIfProxied, m.Match(reflect.TypeFor[celsius](), reflect.TypeFor[float64](), Return).Verdict)

	m.Scalars = nil
	assert.Equal(t, VerdictFalse, m.Match(reflect.TypeFor[celsius](), reflect.TypeFor[float64](), Return).Verdict)
}
