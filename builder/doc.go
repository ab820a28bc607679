// Package builder applies parsed key/value pairs onto live target objects
// by walking canonical paths reflectively.
//
// A canonical path is a dotted sequence of tokens, each optionally
// index-addressed: "storage-engine.files[0].file-path". Intermediate
// segments lazily instantiate nested structs, pointers and slice elements
// (slices grow with zero placeholders up to the requested index); the
// final segment coerces the raw string into the resolved field's type.
//
// Failure policy: a key that resolves to no field is logged and skipped so
// deprecated or unknown metrics never abort a build, while a malformed
// literal for a field that did resolve aborts the whole object's build —
// that one signals a real data problem.
package builder
