// Package policy defines the per-field merge policies and the value-level
// reducers applying them.
//
// A policy reduces N per-node values of one field into a single aggregate
// value. Policies are declared per field in the `merge` struct tag, or fall
// back to a type-based default: integer kinds sum, float kinds average,
// enums take the most common member.
//
// Key guarantees:
//   - PolicyMustMatch never resolves a disagreement by picking a candidate;
//     it fails with a MismatchError instead.
//   - PolicyFirstOf treats its declared order as a priority ranking: the
//     earliest-ranked value present anywhere among the inputs wins, even
//     when another value is more frequent.
//   - PolicyMostCommon may return any value tied for the maximum count.
package policy
