// Package merge reduces N per-node instances of one logical entity into a
// single aggregate, field by field, under each field's declared merge
// policy.
//
// Fields with no declared or default policy pass through the first
// contributing instance's value, so a merge never leaves a field unset.
// Nested struct fields without a declared policy are merged recursively
// under their own descriptors.
package merge
