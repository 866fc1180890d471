package bridge

import (
	"errors"
	"fmt"
	"reflect"

	"duck-bridge/internal/diagnostic"
	"duck-bridge/internal/emit"
	"duck-bridge/internal/match"
	"duck-bridge/internal/shape"
)

// slot converts one position of a forwarded call.
type slot struct {
	// link is nil when values pass through.
	link *link
	// back maps the target side value back after the call.
	back  *link
	byRef bool
}

// forwarder calls one target member on behalf of one contract member.
type forwarder struct {
	s        *synthesized
	path     string
	contract shape.Method
	target   shape.Method
	params   []slot
	results  []slot
}

func newForwarder(s *synthesized, c match.Candidate, path string) *forwarder {
	fw := &forwarder{s: s, path: path, contract: c.Contract, target: c.Target}

	for _, ms := range c.Params {
		fw.params = append(fw.params, s.paramSlot(ms))
	}

	for _, ms := range c.Results {
		sl := slot{}
		if ms.Spec != nil {
			sl.link = newLink(*ms.Spec)
		}

		fw.results = append(fw.results, sl)
	}

	return fw
}

func (s *synthesized) paramSlot(ms match.Slot) slot {
	if ms.Spec == nil {
		return slot{}
	}

	spec := *ms.Spec
	sl := slot{link: newLink(spec), byRef: ms.ByRef}

	switch {
	case ms.ByRef:
		sl.back = newLink(spec.Reversed())
	case spec.Target.Type.Kind() == reflect.Slice && spec.Proxy.Type.Kind() == reflect.Slice:
		rev := spec.Reversed()
		if s.r.matcher.Match(rev.Target.Type, rev.Proxy.Type, match.Return).Verdict != match.VerdictFalse {
			sl.back = newLink(rev)
		}
	}

	return sl
}

// links returns every nested link of the forwarder.
func (fw *forwarder) links() []*link {
	var links []*link

	for _, sl := range append(append([]slot{}, fw.params...), fw.results...) {
		if sl.link != nil {
			links = append(links, sl.link)
		}

		if sl.back != nil {
			links = append(links, sl.back)
		}
	}

	return links
}

func (fw *forwarder) handler(c *cell) emit.Handler {
	return func(args []reflect.Value) []reflect.Value {
		out, err := fw.call(c.target, args)
		if err != nil {
			return raise(fw.contract.Type, err)
		}

		return out
	}
}

func (fw *forwarder) call(recv reflect.Value, args []reflect.Value) ([]reflect.Value, error) {
	r := fw.s.r

	fn, err := fw.target.Bind(recv)
	if err != nil {
		return nil, fw.fail(shape.NewMemberPath(fw.path), err)
	}

	ft := fw.target.Type
	in := make([]reflect.Value, len(args))

	var after []func() error

	for i, a := range args {
		sl := fw.params[i]

		switch {
		case sl.link == nil:
			in[i] = a
		case sl.byRef:
			v, post, err := fw.byRef(sl, a, ft.In(i))
			if err != nil {
				return nil, fw.fail(shape.NewMemberPath(fw.path).Param(i), err)
			}

			in[i] = v
			if post != nil {
				after = append(after, post)
			}
		default:
			v, err := r.through(sl.link, a)
			if err != nil {
				return nil, fw.fail(shape.NewMemberPath(fw.path).Param(i), err)
			}

			in[i] = v

			if sl.back != nil && a.Kind() == reflect.Slice && !a.IsNil() {
				back, dst := sl.back, a
				after = append(after, func() error { return r.writeBack(back, dst, v) })
			}
		}
	}

	var res []reflect.Value
	if ft.IsVariadic() {
		res = fn.CallSlice(in)
	} else {
		res = fn.Call(in)
	}

	for _, post := range after {
		if err := post(); err != nil {
			return nil, fw.fail(shape.NewMemberPath(fw.path), fmt.Errorf("write back: %w", err))
		}
	}

	ct := fw.contract.Type
	out := make([]reflect.Value, len(res))

	for i, rv := range res {
		sl := fw.results[i]
		if sl.link == nil {
			out[i], _ = typed(rv, ct.Out(i))
			continue
		}

		v, err := r.through(sl.link, rv)
		if err != nil {
			return nil, fw.fail(shape.NewMemberPath(fw.path).Result(i), err)
		}

		out[i] = v
	}

	return out, nil
}

// byRef converts the value behind a by-reference argument into a
// temporary and returns the step writing it back after the call.
func (fw *forwarder) byRef(sl slot, a reflect.Value, pt reflect.Type) (reflect.Value, func() error, error) {
	if a.IsNil() {
		return zero(pt), nil, nil
	}

	v, err := fw.s.r.through(sl.link, a.Elem())
	if err != nil {
		return reflect.Value{}, nil, err
	}

	tmp := reflect.New(pt.Elem())
	tmp.Elem().Set(v)

	post := func() error {
		return fw.s.r.writeBack(sl.back, a.Elem(), tmp.Elem())
	}

	return tmp, post, nil
}

// fail attributes err to a position of the forwarded member.
func (fw *forwarder) fail(at *shape.MemberPath, err error) error {
	kind := ErrValueUnbridgeable

	var be *BridgeError
	if errors.As(err, &be) {
		kind = be.Kind
	} else if errors.Is(err, shape.ErrUnbound) {
		kind = ErrNotImplemented
	}

	return diagnostic.Wrap(kind, fw.s.spec.String(), at.String(), "", err)
}
