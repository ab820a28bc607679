// Package descriptor builds and caches per-type metadata driving the
// reflective mapping and merging of info responses.
//
// A Descriptor is computed once per target struct type and holds:
//
//   - the alias table mapping every accepted raw key spelling to a field
//   - the ordered regex rewrite rules turning raw keys into canonical paths
//   - the key fields used for cross-node record correlation
//   - each field's merge policy, declared or defaulted by type
//
// # Declaring a target type
//
// Fields are declared with the `info` and `merge` struct tags:
//
//	type NamespaceStats struct {
//		Name        string  `info:"ns,key"`
//		Objects     int64   `merge:"aggregate"`
//		ReplFactor  int     `info:"repl-factor" merge:"mustmatch"`
//		AvailPct    float64 `info:"available_pct" merge:"minimum"`
//		StopWrites  bool    `merge:"or"`
//	}
//
// The `info` tag value overrides alias generation with one explicit raw
// key; the ",key" option marks a correlation key field; "-" excludes the
// field. A field without an explicit alias answers to both its
// dash-separated and underscore-separated spellings.
//
// A type needing raw keys rewritten into nested/indexed canonical paths
// implements Rewriter, or registers rules through an Override (see the
// ruleset package for the YAML form).
//
// Descriptors are immutable once built and safe to share across
// goroutines; racing first builds of one type are collapsed by
// singleflight and are idempotent anyway.
package descriptor
