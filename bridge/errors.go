package bridge

import "duck-bridge/internal/diagnostic"

// Error kinds reported by the registry. Every error it returns matches one
// of them with errors.Is.
var (
	ErrSpecRejected               = diagnostic.ErrSpecRejected
	ErrMethodUnmatched            = diagnostic.ErrMethodUnmatched
	ErrAmbiguousOverloadExhausted = diagnostic.ErrAmbiguousOverloadExhausted
	ErrValueUnbridgeable          = diagnostic.ErrValueUnbridgeable
	ErrConstructionInvariant      = diagnostic.ErrConstructionInvariant
	ErrNotImplemented             = diagnostic.ErrNotImplemented
)

// BridgeError carries the kind, the bridge spec and the member of a failure.
type BridgeError = diagnostic.BridgeError

func valueError(spec Spec, member, message string, cause error) error {
	return diagnostic.Wrap(ErrValueUnbridgeable, spec.String(), member, message, cause)
}
