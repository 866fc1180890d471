package bridge

import (
	"fmt"
	"reflect"
	"sync"

	"duck-bridge/internal/common"
	"duck-bridge/internal/diagnostic"
	"duck-bridge/internal/emit"
	"duck-bridge/internal/match"
	"duck-bridge/internal/plan"
	"duck-bridge/internal/shape"
	"duck-bridge/options"
)

// synthesized emits adapters implementing a contract on top of a target.
type synthesized struct {
	r    *Registry
	spec Spec
	name string

	plan    *plan.AdapterPlan
	methods []shape.Method
	members []member
	extras  []shape.Method

	// mu serializes adapter creation so a target gets one adapter.
	mu    sync.Mutex
	table *identityTable
	err   error
}

// member is one compiled contract member.
type member struct {
	contract shape.Method
	kind     plan.MemberKind
	path     string
	fw       *forwarder
}

func newSynthesized(r *Registry, spec Spec) *synthesized {
	return &synthesized{r: r, spec: spec, table: newIdentityTable()}
}

func (s *synthesized) Spec() Spec { return s.spec }

func (s *synthesized) Kind() FactoryKind { return KindSynthesized }

// prepare resolves the plan, chooses one candidate per member and, under
// eager timing, resolves every nested spec the chosen candidates need.
func (s *synthesized) prepare() error {
	s.err = s.compile()
	return s.err
}

func (s *synthesized) compile() error {
	pair := s.spec.String()

	if !s.r.emitter.Supports(s.spec.Proxy.Type) {
		return diagnostic.Wrap(ErrSpecRejected, pair, "", "contract cannot be emitted", emit.ErrNoShim)
	}

	p, err := s.r.resolver.Resolve(s.spec)
	if err != nil {
		return err
	}

	s.plan = p

	for i := range p.Members {
		mp := &p.Members[i]
		m := member{contract: mp.Contract, kind: mp.Kind, path: mp.Path}

		if mp.Kind == plan.MemberForward {
			_, err := mp.Choose(func(c match.Candidate) error {
				fw := newForwarder(s, c, mp.Path)
				if err := s.resolveNested(fw); err != nil {
					return err
				}

				m.fw = fw

				return nil
			})
			if err != nil {
				return err
			}
		}

		s.methods = append(s.methods, mp.Contract)
		s.members = append(s.members, m)
	}

	s.extras = p.Extras
	s.name = s.r.namer.Name(s.spec)

	return nil
}

// resolveNested obtains the factories of every spec fw converts through,
// following leaf factories down to their own nested specs.
func (s *synthesized) resolveNested(fw *forwarder) error {
	if s.r.config.NestedTiming == options.TimingLazy {
		return nil
	}

	// A spec referring to itself resolves to the factory being prepared.
	var d dealer
	d.Done(s.spec)

	links := fw.links()
	for _, l := range links {
		d.Needs(l.spec)
	}

	resolved := map[Spec]Factory{s.spec: s}

	for spec, ok := d.Next(); ok; spec, ok = d.Next() {
		f, err := s.r.obtain(spec)
		if err != nil {
			return err
		}

		s.r.logger.Debug("nested spec resolved", "spec", spec.String(), "kind", f.Kind().String())
		resolved[spec] = f

		if n, ok := f.(needer); ok {
			for _, ns := range n.Needs() {
				d.Needs(ns)
			}
		}
	}

	for _, l := range links {
		l.set(resolved[l.spec])
	}

	return nil
}

func (s *synthesized) ObtainAdapter(target reflect.Value) (reflect.Value, error) {
	if s.err != nil {
		return reflect.Value{}, s.err
	}

	proxy := s.spec.Proxy.Type

	tv, ok := typed(target, s.spec.Target.Type)
	if !ok {
		return reflect.Value{}, valueError(s.spec, "", describe(target),
			fmt.Errorf("not a %s", common.TypeString(s.spec.Target.Type)))
	}

	if isNil(tv) {
		return zero(proxy), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key, hasKey := identityKey(tv)
	if hasKey {
		if c := s.table.byTargetKey(key); c != nil {
			return c.adapter, nil
		}
	}

	c := &cell{factory: s, target: tv}

	handlers := make([]emit.Handler, len(s.members))
	for i, m := range s.members {
		handlers[i] = s.handler(m, c)
	}

	out, err := s.r.emitter.Emit(proxy, s.methods, handlers)
	if err != nil {
		return reflect.Value{}, diagnostic.Wrap(ErrSpecRejected, s.spec.String(), "", "emit adapter", err)
	}

	c.adapter, _ = typed(out, proxy)
	s.table.add(c, true)
	s.r.adapters.add(c, false)

	return c.adapter, nil
}

func (s *synthesized) TryUnwrap(candidate reflect.Value) (reflect.Value, bool) {
	key, ok := identityKey(candidate)
	if !ok {
		return reflect.Value{}, false
	}

	c := s.table.byAdapterKey(key)
	if c == nil {
		return reflect.Value{}, false
	}

	return c.target, true
}

var (
	trueValue = reflect.ValueOf(true)
	anyType   = reflect.TypeFor[any]()
	errorType = reflect.TypeFor[error]()
)

func (s *synthesized) handler(m member, c *cell) emit.Handler {
	switch m.kind {
	case plan.MemberMarker:
		return func([]reflect.Value) []reflect.Value {
			return []reflect.Value{trueValue}
		}
	case plan.MemberIdentity:
		return func([]reflect.Value) []reflect.Value {
			out := zero(anyType)
			if c.target.CanInterface() {
				out.Set(reflect.ValueOf(c.target.Interface()))
			}

			return []reflect.Value{out}
		}
	case plan.MemberForward:
		return m.fw.handler(c)
	default:
		err := diagnostic.New(ErrNotImplemented, s.spec.String(), m.path, "no target member serves it")
		return func([]reflect.Value) []reflect.Value {
			return raise(m.contract.Type, err)
		}
	}
}

// raise reports err from a contract member of type ft: in its trailing
// error result when it has one, otherwise as a panic.
func raise(ft reflect.Type, err error) []reflect.Value {
	idx := errorResult(ft)
	if idx < 0 {
		panic(err)
	}

	out := make([]reflect.Value, ft.NumOut())
	for i := range out {
		out[i] = zero(ft.Out(i))
	}

	out[idx].Set(reflect.ValueOf(err))

	return out
}

func errorResult(ft reflect.Type) int {
	n := ft.NumOut()
	if n > 0 && ft.Out(n-1) == errorType {
		return n - 1
	}

	return -1
}
