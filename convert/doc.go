// Package convert is the priority-ranked chain of trivial scalar converters.
//
// The chain is consulted for leaf values that need no contract synthesis:
// identical types, assignable types, user caster functions, same-kind named
// integers and lossless numeric widening. Each Provider reports a priority;
// the chain uses the highest-priority provider applicable to a value.
package convert
