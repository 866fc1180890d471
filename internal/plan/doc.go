// Package plan resolves an AdapterPlan for one bridge spec: the target
// member chosen for every contract member, or the reason none could be.
//
// Resolution pipeline:
//  1. Check the proxy side is a contract and visibility rules hold
//  2. For each contract member:
//     - synthesize marker and identity accessors when enabled
//     - collect target candidates via the matcher
//     - use a candidate needing no bridging immediately, else rank the rest
//  3. Apply the unmatched contract and target member policies
//  4. Emit diagnostics (unmatched members with closest names, stubs, exposed extras)
//
// Candidate choice among ranked overloads happens later, when the adapter
// synthesizer tries each one (see MemberPlan.Choose).
package plan
