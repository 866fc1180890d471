package plan

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"duck-bridge/internal/common"
	"duck-bridge/internal/diagnostic"
	"duck-bridge/internal/match"
	"duck-bridge/internal/shape"
	"duck-bridge/options"
)

// ResolutionConfig contains the options the resolver consults.
type ResolutionConfig struct {
	UnmatchedContract     options.UnmatchedContractEnum
	UnmatchedTarget       options.UnmatchedTargetEnum
	Accessibility         options.AccessibilityEnum
	MarkerMethods         bool
	IdentityAccessor      bool
	PassthroughAssignable bool
	// MaxSuggestions caps closest-name hints on unmatched members.
	MaxSuggestions int
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ConfigFrom(options.Default())
}

// ConfigFrom extracts the resolution options of a registry configuration.
func ConfigFrom(cfg options.Config) ResolutionConfig {
	return ResolutionConfig{
		UnmatchedContract:     cfg.UnmatchedContract,
		UnmatchedTarget:       cfg.UnmatchedTarget,
		Accessibility:         cfg.Accessibility,
		MarkerMethods:         cfg.MarkerMethods,
		IdentityAccessor:      cfg.IdentityAccessor,
		PassthroughAssignable: cfg.PassthroughAssignable,
		MaxSuggestions:        match.DefaultMaxSuggestions,
	}
}

// Resolver builds adapter plans.
type Resolver struct {
	matcher *match.Matcher
	catalog *shape.Catalog
	config  ResolutionConfig
}

// NewResolver creates a new resolver.
func NewResolver(matcher *match.Matcher, catalog *shape.Catalog, config ResolutionConfig) *Resolver {
	return &Resolver{
		matcher: matcher,
		catalog: catalog,
		config:  config,
	}
}

var (
	markerType   = reflect.TypeFor[func() bool]()
	identityType = reflect.TypeFor[func() any]()
)

// Resolve plans the adapter for spec. The returned plan carries all
// diagnostics; the error is non-nil when the plan has errors.
func (r *Resolver) Resolve(spec shape.BridgeSpec) (*AdapterPlan, error) {
	p := &AdapterPlan{Spec: spec}
	pair := spec.String()
	target, proxy := spec.Target.Type, spec.Proxy.Type

	contract, err := shape.ContractMethods(proxy, r.catalog)
	if err != nil {
		p.Diagnostics.AddError(diagnostic.ErrConstructionInvariant, "not_contract", err.Error(), pair, "")
		return p, p.Diagnostics.Error()
	}

	if r.config.Accessibility == options.AccessibilityEnforce {
		r.checkVisibility(p, target, proxy, contract)
		if p.Diagnostics.HasErrors() {
			return p, p.Diagnostics.Error()
		}
	}

	targets := shape.TargetMethods(target)
	root := common.TypeString(proxy)

	for _, cm := range contract {
		path := shape.NewMemberPath(root).Member(cm.Display()).String()
		mp := MemberPlan{Contract: cm, Path: path, Pair: pair}

		switch {
		case r.config.MarkerMethods && cm.Name == MarkerMember && cm.Type == markerType:
			mp.Kind = MemberMarker
		case r.config.IdentityAccessor && cm.Name == IdentityMember && cm.Type == identityType:
			mp.Kind = MemberIdentity
		case r.config.Accessibility == options.AccessibilityPublicOnly && !cm.Exported:
			p.Diagnostics.AddInfo("skipped", "unexported contract member is not forwarded", pair, path)
			mp.Kind = MemberStub
		default:
			r.resolveMember(p, spec, &mp, targets)
		}

		p.Members = append(p.Members, mp)
	}

	if len(contract) > 0 && p.Forwarded() == 0 && !p.Diagnostics.HasErrors() && !synthesizedOnly(p) {
		p.Diagnostics.AddError(diagnostic.ErrSpecRejected, "no_members",
			"no contract member matches the target", pair, "")
	}

	if r.config.UnmatchedTarget == options.UnmatchedTargetExpose {
		p.Extras = extras(contract, targets)
		for _, e := range p.Extras {
			p.Diagnostics.AddInfo("exposed", "target member not declared by the contract", pair, e.Display())
		}
	}

	if p.Diagnostics.HasErrors() {
		return p, p.Diagnostics.Error()
	}

	return p, nil
}

func (r *Resolver) resolveMember(p *AdapterPlan, spec shape.BridgeSpec, mp *MemberPlan, targets []shape.Method) {
	list, reasons := r.matcher.Collect(spec, mp.Contract, targets, r.config.PassthroughAssignable)
	mp.Rejections = reasons

	if len(list) == 0 {
		r.unmatched(p, mp, targets)
		return
	}

	mp.Kind = MemberForward

	if direct := list.Direct(); direct != nil {
		mp.Candidates = match.CandidateList{*direct}
		mp.Direct = true

		return
	}

	mp.Candidates = list.Rank()
}

func (r *Resolver) unmatched(p *AdapterPlan, mp *MemberPlan, targets []shape.Method) {
	msg := "no viable target member"
	if len(mp.Rejections) > 0 {
		msg = errors.Join(mp.Rejections...).Error()
		msg = strings.ReplaceAll(msg, "\n", "; ")
	}

	if r.config.UnmatchedContract == options.UnmatchedContractStub {
		mp.Kind = MemberStub
		p.Diagnostics.AddWarning("stubbed", msg, mp.Pair, mp.Path)

		return
	}

	var suggestions []string
	if len(mp.Rejections) == 0 && mp.Contract.Name != "" {
		suggestions = match.Suggest(mp.Contract.Name, targets, r.config.MaxSuggestions)
	}

	p.Diagnostics.AddError(diagnostic.ErrMethodUnmatched, "unmatched", msg, mp.Pair, mp.Path, suggestions...)
}

func (r *Resolver) checkVisibility(p *AdapterPlan, target, proxy reflect.Type, contract []shape.Method) {
	pair := p.Spec.String()

	for _, t := range []reflect.Type{target, proxy} {
		if !shape.IsExported(t) {
			p.Diagnostics.AddError(diagnostic.ErrSpecRejected, "unexported",
				fmt.Sprintf("type %s is not exported", common.TypeString(t)), pair, "")
		}
	}

	for _, cm := range contract {
		if !cm.Exported {
			p.Diagnostics.AddError(diagnostic.ErrSpecRejected, "unexported",
				"contract member is not exported", pair, cm.Display())
		}
	}
}

func synthesizedOnly(p *AdapterPlan) bool {
	for _, m := range p.Members {
		if m.Kind != MemberMarker && m.Kind != MemberIdentity {
			return false
		}
	}

	return true
}

func extras(contract, targets []shape.Method) []shape.Method {
	var out []shape.Method

	for _, t := range targets {
		if t.Name == "" || !t.Exported {
			continue
		}

		declared := false

		for _, cm := range contract {
			if cm.Accepts(t.Name) {
				declared = true
				break
			}
		}

		if !declared {
			out = append(out, t)
		}
	}

	return out
}

// Choose tries the candidates in rank order and returns the first one
// try accepts. A lone candidate's failure is returned as is; when several
// fail, the error aggregates every attempt.
func (mp *MemberPlan) Choose(try func(match.Candidate) error) (*match.Candidate, error) {
	if len(mp.Candidates) == 0 {
		return nil, diagnostic.New(diagnostic.ErrMethodUnmatched, mp.Pair, mp.Path, "no candidates")
	}

	var attempts []error

	for i := range mp.Candidates {
		c := &mp.Candidates[i]

		err := try(*c)
		if err == nil {
			return c, nil
		}

		if len(mp.Candidates) == 1 {
			return nil, err
		}

		attempts = append(attempts, fmt.Errorf("%s: %w", c.Target.Display(), err))
	}

	return nil, diagnostic.Wrap(diagnostic.ErrAmbiguousOverloadExhausted, mp.Pair, mp.Path,
		fmt.Sprintf("all %d candidates failed", len(attempts)), errors.Join(attempts...))
}
