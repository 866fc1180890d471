// Package bridge adapts values of one Go type graph to contracts declared
// by another, independently written one.
//
// A Registry inspects a target type and a contract (an interface, a func
// type or a pointer to a func table), resolves which target member serves
// every contract member and synthesizes adapters that forward calls,
// converting arguments and results on the way. Nested values such as
// callbacks, enumerations, slices, optional wrappers and records are
// bridged recursively through the same registry.
//
// Factories are created once per bridge spec and kept for the registry's
// lifetime. Failed specs are remembered and report the same error again.
// Adapters are cached per target identity and released together with the
// adapter value.
package bridge
