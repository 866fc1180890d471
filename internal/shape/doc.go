// Package shape is the structural reflection facade of the bridge.
//
// It classifies runtime types into the shapes the bridge understands
// (contracts, enumerations, arrays, optional wrappers, records, by-reference
// positions, scalars) and enumerates contract and target members.
//
// Facts reflection cannot see are kept in a Catalog:
//   - enumeration member sets of named integer types
//   - type arguments of generic instantiations
//   - method aliases forming overload families
//
// Key types:
//   - TypeRef: context tag + reflect.Type
//   - BridgeSpec: ordered (target, proxy) pair, the registry cache key
//   - Method: one contract or target member, bindable to a receiver
package shape
