// Package diagnostic provides the bridge error taxonomy and structured
// warnings collected while an adapter plan is resolved.
//
// Key capabilities:
//   - Sentinel errors for every failure class (usable with errors.Is)
//   - BridgeError naming the type pair and member involved
//   - Diagnostics: errors, warnings and infos with codes
//   - Value rendering for call-time failures
package diagnostic
