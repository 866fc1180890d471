package plan

import (
	"fmt"
	"strings"

	"duck-bridge/internal/diagnostic"
	"duck-bridge/internal/match"
	"duck-bridge/internal/shape"
)

// Synthesized member names.
const (
	MarkerMember   = "IsBridgeAdapter"
	IdentityMember = "BridgeTarget"
)

//go:generate go tool stringer -type=MemberKind -linecomment -output=memberkind_string.go

// MemberKind describes how a contract member is implemented.
type MemberKind int

const (
	// MemberForward forwards to a target member.
	MemberForward MemberKind = iota // forward
	// MemberStub raises not-implemented when called.
	MemberStub // stub
	// MemberMarker reports true.
	MemberMarker // marker
	// MemberIdentity returns the wrapped target.
	MemberIdentity // identity
)

// MemberPlan is the resolution of one contract member.
type MemberPlan struct {
	// Contract is the contract member.
	Contract shape.Method
	// Kind describes how the member is implemented.
	Kind MemberKind
	// Path names the member in diagnostics.
	Path string
	// Pair is the spec string of the owning plan.
	Pair string
	// Candidates are the viable target members, best first.
	Candidates match.CandidateList
	// Direct is set when the only candidate needs no bridging.
	Direct bool
	// Rejections explain why same-named target members were rejected.
	Rejections []error
}

// AdapterPlan is the resolved plan for one bridge spec.
type AdapterPlan struct {
	Spec    shape.BridgeSpec
	Members []MemberPlan
	// Extras are target members the contract does not declare, when exposed.
	Extras []shape.Method
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// Forwarded returns the number of members forwarding to the target.
func (p *AdapterPlan) Forwarded() int {
	n := 0

	for _, m := range p.Members {
		if m.Kind == MemberForward {
			n++
		}
	}

	return n
}

// String renders one line per member.
func (p *AdapterPlan) String() string {
	var sb strings.Builder

	sb.WriteString(p.Spec.String())

	for _, m := range p.Members {
		sb.WriteString("\n  ")
		sb.WriteString(m.Contract.Display())
		sb.WriteString(": ")
		sb.WriteString(m.Kind.String())

		for _, c := range m.Candidates {
			fmt.Fprintf(&sb, " %s[exact=%d bridged=%d]", c.Target.Display(), c.Exact, c.Bridged)
		}
	}

	for _, e := range p.Extras {
		sb.WriteString("\n  +")
		sb.WriteString(e.Display())
	}

	return sb.String()
}

type slotSummary struct {
	Verdict string
	Bridge  string
	ByRef   bool
}

type candidateSummary struct {
	Target  string
	Exact   int
	Bridged int
	Slots   []slotSummary
}

type memberSummary struct {
	Member     string
	Kind       string
	Candidates []candidateSummary
}

type planSummary struct {
	Spec     string
	Members  []memberSummary
	Extras   []string
	Warnings []string
}

// Dump renders the plan in full detail for debugging.
func (p *AdapterPlan) Dump() string {
	sum := planSummary{Spec: p.Spec.String()}

	for _, m := range p.Members {
		ms := memberSummary{Member: m.Path, Kind: m.Kind.String()}

		for _, c := range m.Candidates {
			cs := candidateSummary{Target: c.Target.Display(), Exact: c.Exact, Bridged: c.Bridged}

			for _, s := range c.Slots() {
				ss := slotSummary{Verdict: s.Verdict.String(), ByRef: s.ByRef}
				if s.Spec != nil {
					ss.Bridge = s.Spec.String()
				}

				cs.Slots = append(cs.Slots, ss)
			}

			ms.Candidates = append(ms.Candidates, cs)
		}

		sum.Members = append(sum.Members, ms)
	}

	for _, e := range p.Extras {
		sum.Extras = append(sum.Extras, e.Display())
	}

	for _, w := range p.Diagnostics.Warnings {
		sum.Warnings = append(sum.Warnings, w.String())
	}

	return diagnostic.Dump(sum)
}
