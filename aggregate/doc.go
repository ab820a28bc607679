// Package aggregate orchestrates the full pipeline from raw per-node info
// responses to typed cluster-wide aggregates: parse, rewrite, build,
// correlate, merge.
//
// An Aggregator is built once per target type:
//
//	agg, err := aggregate.New[SetStats](aggregate.WithLogger(logger))
//	merged, err := agg.ReduceEntities(map[string]string{
//		"node-a": "ns=test:set=users:objects=10;ns=test:set=events:objects=2",
//		"node-b": "ns=test:set=users:objects=15",
//	})
//
// Flat (single-entity) responses go through Reduce/PerNode, multi-entity
// responses through ReduceEntities/EntitiesPerNode. Fetching the raw
// strings is the caller's concern; any fetch concurrency is fine since an
// Aggregator holds no per-call state.
package aggregate
