// Package emit produces callable adapter values from per-member handlers.
//
// Emission approach uses reflect.MakeFunc; no native code is generated at
// runtime.
//
// Contract shapes:
//   - func types: the adapter is the MakeFunc closure itself
//   - *func tables: a fresh table whose fields are MakeFunc closures
//   - interfaces: a registered Shim wraps an Invoker dispatching by name
//
// ShimSource renders the Go source of a Shim for an interface with
// text/template + go/format, for callers that vendor their shims.
package emit
