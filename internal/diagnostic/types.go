package diagnostic

import (
	"errors"
	"strings"

	"duck-bridge/internal/common"
)

// Severity orders diagnostics from informational to fatal.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{"info", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return common.UnknownStr
	}

	return severityNames[s]
}

// Diagnostic is one finding recorded while planning an adapter.
type Diagnostic struct {
	Severity Severity
	// Kind is the sentinel class reported for error findings.
	Kind error
	// Code is a short stable tag, e.g. "unmatched" or "stubbed".
	Code    string
	Message string
	// TypePair is the rendered bridge spec, empty when not tied to one.
	TypePair string
	// Member is the contract or target member path.
	Member      string
	Suggestions []string
}

// Diagnostics collects the findings of one plan, bucketed by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

func (d *Diagnostics) add(x Diagnostic) {
	switch x.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, x)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, x)
	default:
		d.Infos = append(d.Infos, x)
	}
}

// AddError records a finding that rejects the plan. A nil kind reports as
// ErrSpecRejected.
func (d *Diagnostics) AddError(kind error, code, message, typePair, member string, suggestions ...string) {
	d.add(Diagnostic{SeverityError, kind, code, message, typePair, member, suggestions})
}

func (d *Diagnostics) AddWarning(code, message, typePair, member string) {
	d.add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, TypePair: typePair, Member: member})
}

func (d *Diagnostics) AddInfo(code, message, typePair, member string) {
	d.add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, TypePair: typePair, Member: member})
}

func (d *Diagnostics) HasErrors() bool { return len(d.Errors) > 0 }

func (d *Diagnostics) IsValid() bool { return !d.HasErrors() }

// Error converts the error findings into BridgeErrors: nil when there are
// none, the single error, or all of them joined.
func (d *Diagnostics) Error() error {
	switch len(d.Errors) {
	case 0:
		return nil
	case 1:
		return d.Errors[0].Err()
	}

	errs := make([]error, len(d.Errors))
	for i, e := range d.Errors {
		errs[i] = e.Err()
	}

	return errors.Join(errs...)
}

// Err converts the finding into a BridgeError, naming suggestions in the message.
func (d Diagnostic) Err() error {
	be := &BridgeError{Kind: d.Kind, TypePair: d.TypePair, Member: d.Member, Message: d.Message}
	if be.Kind == nil {
		be.Kind = ErrSpecRejected
	}

	if len(d.Suggestions) > 0 {
		be.Message += " (closest: " + strings.Join(d.Suggestions, ", ") + ")"
	}

	return be
}

// String renders "[pair] member: [code] message", omitting empty parts.
func (d Diagnostic) String() string {
	var sb strings.Builder
	if d.TypePair != "" {
		sb.WriteString("[" + d.TypePair + "]")
	}

	if d.Member != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(d.Member)
	}

	if sb.Len() > 0 {
		sb.WriteString(": ")
	}

	if d.Code != "" {
		sb.WriteString("[" + d.Code + "] ")
	}

	sb.WriteString(d.Message)
	return sb.String()
}
