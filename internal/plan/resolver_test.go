package plan

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duck-bridge/convert"
	"duck-bridge/internal/diagnostic"
	"duck-bridge/internal/match"
	"duck-bridge/internal/shape"
	"duck-bridge/options"
)

type Level int

type Grade int

type Meter interface {
	Measure(l Level) int
	Reset()
}

type Gauge struct{}

func (Gauge) Measure(g Grade) int      { return int(g) }
func (Gauge) MeasureLevel(l Level) int { return int(l) }
func (Gauge) Reset()                   {}
func (Gauge) Calibrate(offset int)     {}

type Resetter interface {
	Reset()
	Recalibrate()
}

type Marked interface {
	Reset()
	IsBridgeAdapter() bool
	BridgeTarget() any
}

type hidden struct{}

func (hidden) Reset() {}

type Clock struct{}

func (Clock) Tick() {}

type MeterTable struct {
	Measure func(l Level) int `bridge:"MeasureLevel"`
}

func newResolver(t *testing.T, mutate func(*options.Config)) *Resolver {
	t.Helper()

	cat := shape.NewCatalog()
	require.NoError(t, shape.RegisterEnum(cat, Level(0), Level(1), Level(2)))
	require.NoError(t, shape.RegisterEnum(cat, Grade(0), Grade(1)))

	cfg := options.Default()
	if mutate != nil {
		mutate(&cfg)
	}

	m := match.NewMatcher(cat, cfg.Enums, convert.Build(cfg.Scalars, nil))

	return NewResolver(m, cat, ConfigFrom(cfg))
}

func spec[T, P any]() shape.BridgeSpec {
	return shape.NewSpec(reflect.TypeFor[T](), reflect.TypeFor[P]())
}

func member(t *testing.T, p *AdapterPlan, name string) MemberPlan {
	t.Helper()

	for _, m := range p.Members {
		if m.Contract.Name == name {
			return m
		}
	}

	t.Fatalf("no member %s in plan", name)

	return MemberPlan{}
}

func TestResolve_Forward(t *testing.T) {
	r := newResolver(t, func(c *options.Config) { c.Enums = options.EnumAllowAdditive })

	p, err := r.Resolve(spec[Gauge, Meter]())
	require.NoError(t, err)
	require.Len(t, p.Members, 2)
	assert.Equal(t, 2, p.Forwarded())

	reset := member(t, p, "Reset")
	assert.Equal(t, MemberForward, reset.Kind)
	assert.True(t, reset.Direct)

	measure := member(t, p, "Measure")
	assert.False(t, measure.Direct)
	require.Len(t, measure.Candidates, 1)
	assert.Equal(t, "Measure", measure.Candidates[0].Target.Name)
	assert.Equal(t, "Meter.Measure", measure.Path)
}

func TestResolve_AliasPrefersDirect(t *testing.T) {
	r := newResolver(t, func(c *options.Config) { c.Enums = options.EnumAllowAdditive })

	p, err := r.Resolve(spec[Gauge, *MeterTable]())
	require.NoError(t, err)

	measure := member(t, p, "Measure")
	assert.True(t, measure.Direct)
	require.Len(t, measure.Candidates, 1)
	assert.Equal(t, "MeasureLevel", measure.Candidates[0].Target.Name)
}

func TestResolve_UnmatchedFailFast(t *testing.T) {
	r := newResolver(t, nil)

	p, err := r.Resolve(spec[Gauge, Resetter]())
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrMethodUnmatched)
	require.Len(t, p.Diagnostics.Errors, 1)
	assert.Equal(t, "Resetter.Recalibrate", p.Diagnostics.Errors[0].Member)
	assert.Equal(t, []string{"Calibrate"}, p.Diagnostics.Errors[0].Suggestions)
	assert.Contains(t, err.Error(), "closest: Calibrate")
}

func TestResolve_UnmatchedStub(t *testing.T) {
	r := newResolver(t, func(c *options.Config) { c.UnmatchedContract = options.UnmatchedContractStub })

	p, err := r.Resolve(spec[Gauge, Resetter]())
	require.NoError(t, err)
	assert.Equal(t, MemberStub, member(t, p, "Recalibrate").Kind)
	require.Len(t, p.Diagnostics.Warnings, 1)
	assert.Equal(t, "stubbed", p.Diagnostics.Warnings[0].Code)
}

func TestResolve_StrictEnumRejectsMember(t *testing.T) {
	r := newResolver(t, nil)

	p, err := r.Resolve(spec[Gauge, Meter]())
	require.ErrorIs(t, err, diagnostic.ErrMethodUnmatched)
	assert.NotEmpty(t, member(t, p, "Measure").Rejections)
	assert.Empty(t, p.Diagnostics.Errors[0].Suggestions)
}

func TestResolve_NothingMatches(t *testing.T) {
	r := newResolver(t, func(c *options.Config) { c.UnmatchedContract = options.UnmatchedContractStub })

	_, err := r.Resolve(spec[Clock, Resetter]())
	assert.ErrorIs(t, err, diagnostic.ErrSpecRejected)
}

func TestResolve_NotContract(t *testing.T) {
	r := newResolver(t, nil)

	_, err := r.Resolve(spec[Gauge, Clock]())
	assert.ErrorIs(t, err, diagnostic.ErrConstructionInvariant)
}

func TestResolve_Accessibility(t *testing.T) {
	type reset interface{ Reset() }

	r := newResolver(t, nil)
	_, err := r.Resolve(spec[hidden, reset]())
	require.ErrorIs(t, err, diagnostic.ErrSpecRejected)
	assert.Contains(t, err.Error(), "not exported")

	r = newResolver(t, func(c *options.Config) { c.Accessibility = options.AccessibilityIgnore })
	p, err := r.Resolve(spec[hidden, reset]())
	require.NoError(t, err)
	assert.Equal(t, 1, p.Forwarded())
}

func TestResolve_Synthesized(t *testing.T) {
	r := newResolver(t, func(c *options.Config) {
		c.MarkerMethods = true
		c.IdentityAccessor = true
	})

	p, err := r.Resolve(spec[Gauge, Marked]())
	require.NoError(t, err)
	assert.Equal(t, MemberIdentity, member(t, p, "BridgeTarget").Kind)
	assert.Equal(t, MemberMarker, member(t, p, "IsBridgeAdapter").Kind)
	assert.Equal(t, MemberForward, member(t, p, "Reset").Kind)

	_, err = newResolver(t, nil).Resolve(spec[Gauge, Marked]())
	assert.ErrorIs(t, err, diagnostic.ErrMethodUnmatched)
}

func TestResolve_ExposeExtras(t *testing.T) {
	type reset interface{ Reset() }

	r := newResolver(t, func(c *options.Config) {
		c.UnmatchedTarget = options.UnmatchedTargetExpose
		c.Accessibility = options.AccessibilityIgnore
	})

	p, err := r.Resolve(spec[Gauge, reset]())
	require.NoError(t, err)

	var names []string
	for _, e := range p.Extras {
		names = append(names, e.Name)
	}

	assert.Equal(t, []string{"Calibrate", "Measure", "MeasureLevel"}, names)
	assert.Contains(t, p.String(), "+Calibrate")
}

func TestMemberPlan_Choose(t *testing.T) {
	mp := MemberPlan{
		Path: "Meter.Measure",
		Pair: "Gauge->Meter",
		Candidates: match.CandidateList{
			{Target: shape.Method{Name: "A"}},
			{Target: shape.Method{Name: "B"}},
		},
	}

	boom := errors.New("boom")

	var tried []string

	c, err := mp.Choose(func(c match.Candidate) error {
		tried = append(tried, c.Target.Name)
		if c.Target.Name == "A" {
			return boom
		}

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "B", c.Target.Name)
	assert.Equal(t, []string{"A", "B"}, tried)

	_, err = mp.Choose(func(match.Candidate) error { return boom })
	require.ErrorIs(t, err, diagnostic.ErrAmbiguousOverloadExhausted)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "B: boom")

	single := MemberPlan{Candidates: mp.Candidates[:1]}
	_, err = single.Choose(func(match.Candidate) error { return boom })
	assert.Equal(t, boom, err)
}

func TestAdapterPlan_Dump(t *testing.T) {
	r := newResolver(t, func(c *options.Config) { c.Enums = options.EnumAllowAdditive })

	p, err := r.Resolve(spec[Gauge, Meter]())
	require.NoError(t, err)

	dump := p.Dump()
	assert.Contains(t, dump, "Meter.Measure")
	assert.Contains(t, dump, "if_proxied")
	assert.Contains(t, p.String(), "Measure[exact=")
}
