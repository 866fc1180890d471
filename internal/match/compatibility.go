package match

import (
	"reflect"

	"duck-bridge/internal/common"
	"duck-bridge/internal/shape"
	"duck-bridge/options"
)

// Verdict is the compatibility level of a type pair. Higher is better.
type Verdict int

const (
	// VerdictFalse means the types cannot be used in place of each other.
	VerdictFalse Verdict = iota
	// VerdictIfProxied means values must be bridged.
	VerdictIfProxied
	// VerdictAssignable means values are directly assignable in the position's direction.
	VerdictAssignable
	// VerdictExact means the types are identical.
	VerdictExact
)

// String returns a human-readable name for the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictFalse:
		return "false"
	case VerdictIfProxied:
		return "if_proxied"
	case VerdictAssignable:
		return "assignable"
	case VerdictExact:
		return "exact"
	default:
		return common.UnknownStr
	}
}

// Weakest returns the weaker verdict.
func Weakest(a, b Verdict) Verdict {
	return min(a, b)
}

// Position is the role of a type inside a method signature.
type Position int

const (
	// Parameter values flow from proxy to target.
	Parameter Position = iota
	// Return values flow from target to proxy.
	Return
)

// String returns a human-readable name for the position.
func (p Position) String() string {
	if p == Return {
		return "return"
	}

	return "parameter"
}

// ScalarSupport reports whether trivial scalar conversion from one type to another exists.
type ScalarSupport interface {
	Supports(from, to reflect.Type) bool
}

// Result is the outcome of matching one position.
type Result struct {
	Verdict Verdict
	// ByRef is set when both sides are by-reference; Target and Proxy are then element types.
	ByRef  bool
	Target reflect.Type
	Proxy  reflect.Type
	Reason string
}

// Matcher compares target-side and proxy-side types.
type Matcher struct {
	Catalog *shape.Catalog
	Enums   options.EnumPolicy
	Scalars ScalarSupport
}

// NewMatcher creates a Matcher.
func NewMatcher(cat *shape.Catalog, enums options.EnumPolicy, scalars ScalarSupport) *Matcher {
	return &Matcher{Catalog: cat, Enums: enums, Scalars: scalars}
}

type pair struct {
	target, proxy reflect.Type
	pos           Position
}

// Match determines the compatibility of target and proxy at pos.
func (m *Matcher) Match(target, proxy reflect.Type, pos Position) Result {
	res := Result{Target: target, Proxy: proxy}

	if target == nil || proxy == nil {
		res.Reason = "missing type"
		return res
	}

	if target == proxy {
		res.Verdict = VerdictExact
		res.Reason = "types are identical"

		return res
	}

	tRef, pRef := shape.IsByRef(target), shape.IsByRef(proxy)
	if tRef != pRef {
		res.Reason = "by-reference mismatch"
		return res
	}

	visiting := make(map[pair]bool)

	if tRef {
		te, pe := target.Elem(), proxy.Elem()
		in, inReason := m.match(te, pe, Parameter, visiting)
		out, outReason := m.match(te, pe, Return, visiting)

		res.ByRef = true
		res.Target, res.Proxy = te, pe
		res.Verdict = Weakest(in, out)
		res.Reason = "by-reference: " + inReason

		if out < in {
			res.Reason = "by-reference: " + outReason
		}

		return res
	}

	res.Verdict, res.Reason = m.match(target, proxy, pos, visiting)

	return res
}

func (m *Matcher) match(target, proxy reflect.Type, pos Position, visiting map[pair]bool) (Verdict, string) {
	if target == proxy {
		return VerdictExact, "types are identical"
	}

	key := pair{target, proxy, pos}
	if visiting[key] {
		return VerdictIfProxied, "recursive pair assumed bridgeable"
	}

	visiting[key] = true
	defer delete(visiting, key)

	if shape.IsByRef(target) != shape.IsByRef(proxy) {
		return VerdictFalse, "by-reference mismatch"
	}

	te, tEnum := m.Catalog.Enum(target)
	pe, pEnum := m.Catalog.Enum(proxy)

	if tEnum && pEnum {
		return m.matchEnums(te, pe)
	}

	if shape.IsArray(target) && shape.IsArray(proxy) {
		return m.matchArrays(target, proxy, pos, visiting)
	}

	from, to := target, proxy
	if pos == Parameter {
		from, to = proxy, target
	}

	if from.AssignableTo(to) {
		return VerdictAssignable, "assignable in " + pos.String() + " direction"
	}

	if shape.IsContract(target) || shape.IsContract(proxy) {
		return VerdictIfProxied, "contract on one side"
	}

	if ti, _, ok := shape.OptionalInner(target); ok {
		if pi, _, ok := shape.OptionalInner(proxy); ok {
			v, reason := m.match(ti, pi, pos, visiting)
			if v == VerdictFalse {
				return VerdictFalse, "optional inner: " + reason
			}

			return VerdictIfProxied, "optional wrappers"
		}
	}

	if tg, ok := m.Catalog.Generic(target); ok {
		if pg, ok := m.Catalog.Generic(proxy); ok && len(tg.Args) == len(pg.Args) {
			return m.matchGenerics(tg, pg, pos, visiting)
		}
	}

	if shape.IsRecord(target) && shape.IsRecord(proxy) {
		return m.matchRecords(target, proxy, pos, visiting)
	}

	if m.Scalars != nil && m.Scalars.Supports(from, to) {
		return VerdictIfProxied, "scalar conversion"
	}

	return VerdictFalse, "types are not compatible"
}

func (m *Matcher) matchEnums(te, pe *shape.EnumInfo) (Verdict, string) {
	if te.Type.Kind() != pe.Type.Kind() {
		return VerdictFalse, "enum widths differ"
	}

	switch m.Enums {
	case options.EnumStrict:
		if !te.SameValues(pe) {
			return VerdictFalse, "enum value sets differ"
		}
	case options.EnumAllowAdditive:
		if !te.SubsetOf(pe) {
			return VerdictFalse, "target enum values are not a subset of proxy values"
		}
	case options.EnumDefer:
	}

	return VerdictIfProxied, "enum values mapped under " + m.Enums.String() + " policy"
}

func (m *Matcher) matchArrays(target, proxy reflect.Type, pos Position, visiting map[pair]bool) (Verdict, string) {
	if target.Kind() != proxy.Kind() {
		return VerdictFalse, "slice and fixed array mixed"
	}

	if target.Kind() == reflect.Array && target.Len() != proxy.Len() {
		return VerdictFalse, "fixed array lengths differ"
	}

	if shape.IsContract(target.Elem()) || shape.IsContract(proxy.Elem()) {
		return VerdictIfProxied, "contract elements"
	}

	if v, reason := m.match(target.Elem(), proxy.Elem(), pos, visiting); v == VerdictFalse {
		return VerdictFalse, "elements: " + reason
	}

	return VerdictIfProxied, "elements bridged"
}

func (m *Matcher) matchGenerics(tg, pg shape.GenericInfo, pos Position, visiting map[pair]bool) (Verdict, string) {
	if tg.Definition != pg.Definition {
		return VerdictFalse, "generic definitions differ"
	}

	v := VerdictExact
	for i := range tg.Args {
		av, reason := m.match(tg.Args[i], pg.Args[i], pos, visiting)
		if av == VerdictFalse {
			return VerdictFalse, "generic argument: " + reason
		}

		v = Weakest(v, av)
	}

	return Weakest(v, VerdictIfProxied), "generic arguments bridged"
}

func (m *Matcher) matchRecords(target, proxy reflect.Type, pos Position, visiting map[pair]bool) (Verdict, string) {
	tf, pf := shape.RecordFields(target), shape.RecordFields(proxy)
	if len(tf) != len(pf) {
		return VerdictFalse, "record arity differs"
	}

	for i := range tf {
		if v, reason := m.match(tf[i].Type, pf[i].Type, pos, visiting); v == VerdictFalse {
			return VerdictFalse, "record field " + tf[i].Name + ": " + reason
		}
	}

	return VerdictIfProxied, "records reconstructed"
}
