package match

import (
	"errors"
	"fmt"
	"reflect"

	"duck-bridge/internal/shape"
)

// ErrCandidateRejected is returned when a target method cannot satisfy a contract method.
var ErrCandidateRejected = errors.New("candidate rejected")

// Slot describes the conversion of one position of a contract method.
type Slot struct {
	Verdict Verdict
	// Spec is the nested bridge in the direction values flow, nil for pass-through.
	// For by-reference slots it names the element pair.
	Spec  *shape.BridgeSpec
	ByRef bool
	// Reason explains the verdict.
	Reason string
}

// Bridged reports whether values in this slot go through the registry.
func (s Slot) Bridged() bool {
	return s.Spec != nil
}

// Candidate is a target method accepted for a contract method.
type Candidate struct {
	Contract shape.Method
	Target   shape.Method
	// Results and Params together form the position mapping.
	Results []Slot
	Params  []Slot
	// Exact counts positions with VerdictExact.
	Exact int
	// Bridged counts positions that need conversion.
	Bridged int
}

// Slots returns results followed by parameters.
func (c *Candidate) Slots() []Slot {
	return append(append([]Slot{}, c.Results...), c.Params...)
}

// Direct reports whether no position needs bridging.
func (c *Candidate) Direct() bool {
	return c.Bridged == 0
}

// MatchMethod matches one contract method against one target method.
// base supplies the context of nested specs; passthrough lets assignable
// positions skip bridging.
func (m *Matcher) MatchMethod(base shape.BridgeSpec, contract, target shape.Method, passthrough bool) (Candidate, error) {
	if !contract.Accepts(target.Name) {
		return Candidate{}, fmt.Errorf("%w: name %q does not match %q", ErrCandidateRejected, target.Name, contract.Name)
	}

	ct, tt := contract.Type, target.Type

	if ct.NumIn() != tt.NumIn() {
		return Candidate{}, fmt.Errorf("%w: %s takes %d parameters, want %d",
			ErrCandidateRejected, target.Display(), tt.NumIn(), ct.NumIn())
	}

	if ct.NumOut() != tt.NumOut() {
		return Candidate{}, fmt.Errorf("%w: %s returns %d results, want %d",
			ErrCandidateRejected, target.Display(), tt.NumOut(), ct.NumOut())
	}

	if ct.IsVariadic() != tt.IsVariadic() {
		return Candidate{}, fmt.Errorf("%w: %s variadic mismatch", ErrCandidateRejected, target.Display())
	}

	cand := Candidate{Contract: contract, Target: target}

	for i := range ct.NumOut() {
		res := m.Match(tt.Out(i), ct.Out(i), Return)
		if res.Verdict == VerdictFalse {
			return Candidate{}, fmt.Errorf("%w: %s result %d: %s", ErrCandidateRejected, target.Display(), i, res.Reason)
		}

		cand.Results = append(cand.Results, cand.slot(base, res, res.Target, res.Proxy, passthrough))
	}

	for i := range ct.NumIn() {
		res := m.Match(tt.In(i), ct.In(i), Parameter)
		if res.Verdict == VerdictFalse {
			return Candidate{}, fmt.Errorf("%w: %s parameter %d: %s", ErrCandidateRejected, target.Display(), i, res.Reason)
		}

		cand.Params = append(cand.Params, cand.slot(base, res, res.Proxy, res.Target, passthrough))
	}

	return cand, nil
}

func (c *Candidate) slot(base shape.BridgeSpec, res Result, from, to reflect.Type, passthrough bool) Slot {
	s := Slot{Verdict: res.Verdict, ByRef: res.ByRef, Reason: res.Reason}

	if res.Verdict == VerdictExact {
		c.Exact++
	}

	needsBridge := res.Verdict == VerdictIfProxied || (res.Verdict == VerdictAssignable && !passthrough)
	if res.ByRef && from != to {
		needsBridge = true
	}

	if needsBridge {
		spec := base.Nested(from, to)
		s.Spec = &spec
		c.Bridged++
	}

	return s
}
