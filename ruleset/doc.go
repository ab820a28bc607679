// Package ruleset loads per-type rewrite rules and field overrides from
// YAML, for target types whose source cannot carry `info`/`merge` struct
// tags (generated types, vendored types).
//
// # Schema Overview
//
//	version: "1"
//	types:
//	  - type: SetStats
//	    rules:
//	      - from: 'storage-engine\.file\[(\d+)\]'
//	        to: 'storage-engine.files[$1].file-path'
//	    fields:
//	      - field: Name
//	        alias: set
//	        key: true
//	      - field: ReplFactor
//	        policy: mustmatch
//
// Field entries reference Go field names; rules run in declaration order
// before any tag-declared rules are consulted. A parsed file is validated
// up front (regexes compile, policies parse, no duplicate type entries)
// and applied with Register before the target type's first use.
package ruleset
