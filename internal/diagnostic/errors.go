package diagnostic

import (
	"errors"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var (
	// ErrSpecRejected means no contract method could be matched at all, or the
	// spec violates visibility or emission constraints.
	ErrSpecRejected = errors.New("bridge spec rejected")
	// ErrMethodUnmatched means one contract method has no viable target method.
	ErrMethodUnmatched = errors.New("contract method unmatched")
	// ErrAmbiguousOverloadExhausted means several candidates existed and all of them failed.
	ErrAmbiguousOverloadExhausted = errors.New("every overload candidate failed")
	// ErrValueUnbridgeable means a runtime value cannot be converted under the current policy.
	ErrValueUnbridgeable = errors.New("value cannot be bridged")
	// ErrConstructionInvariant means the proxy side is not a contract where one is required.
	ErrConstructionInvariant = errors.New("construction invariant violated")
	// ErrNotImplemented is raised by stubs installed for unmatched contract methods.
	ErrNotImplemented = errors.New("contract method not implemented")
)

// BridgeError describes a bridging failure. It matches its Kind and its Cause with errors.Is.
type BridgeError struct {
	Kind     error
	TypePair string
	Member   string
	Message  string
	Cause    error
}

func (e *BridgeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())

	if e.TypePair != "" {
		b.WriteString(" [" + e.TypePair + "]")
	}

	if e.Member != "" {
		b.WriteString(" " + e.Member)
	}

	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}

	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}

	return b.String()
}

func (e *BridgeError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Cause}
}

// New creates a BridgeError of the given kind.
func New(kind error, typePair, member, message string) *BridgeError {
	return &BridgeError{Kind: kind, TypePair: typePair, Member: member, Message: message}
}

// Wrap creates a BridgeError of the given kind around cause.
func Wrap(kind error, typePair, member, message string, cause error) *BridgeError {
	return &BridgeError{Kind: kind, TypePair: typePair, Member: member, Message: message, Cause: cause}
}

var valueConfig = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// ValueString renders a runtime value for error messages.
func ValueString(v any) string {
	return valueConfig.Sprintf("%v", v)
}

// Dump renders a value in full detail, for debugging output.
func Dump(v any) string {
	return valueConfig.Sdump(v)
}
