package aggregate

import (
	"errors"
	"reflect"

	"go.uber.org/zap"

	"infomerge/builder"
	"infomerge/descriptor"
	"infomerge/infoparse"
	"infomerge/merge"
	"infomerge/policy"
)

// Option configures an Aggregator.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for skipped keys, dropped node
// responses and dropped merge groups. Defaults to a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Aggregator turns raw per-node responses into typed instances of T and
// cluster-wide aggregates. It is immutable and safe for concurrent use.
type Aggregator[T any] struct {
	log *zap.Logger
	d   *descriptor.Descriptor
}

// New builds an Aggregator for struct type T, computing T's descriptor on
// first use.
func New[T any](opts ...Option) (*Aggregator[T], error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	d, err := descriptor.For(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}

	return &Aggregator[T]{
		log: o.logger.With(zap.String("target", d.Type.String())),
		d:   d,
	}, nil
}

// PerNode builds one typed instance per node from flat responses, with no
// merging. Nodes whose response failed to map are reported in the second
// map instead of the first.
func (a *Aggregator[T]) PerNode(responses map[string]string) (map[string]*T, map[string]error) {
	built := make(map[string]*T, len(responses))
	failed := map[string]error{}

	for node, raw := range responses {
		obj := new(T)

		err := builder.Apply(obj, infoparse.Flat(raw), a.log.With(zap.String("node", node)))
		if err != nil {
			failed[node] = err

			continue
		}

		built[node] = obj
	}

	return built, failed
}

// Reduce merges all nodes' flat responses into one aggregate. Nodes whose
// response failed to map are dropped with a warning; the result is nil
// when no node could be mapped. A must-match disagreement across the
// surviving nodes propagates as a *policy.MismatchError.
func (a *Aggregator[T]) Reduce(responses map[string]string) (*T, error) {
	built, failed := a.PerNode(responses)

	for node, err := range failed {
		a.log.Warn("dropping node response",
			zap.String("node", node),
			zap.Error(err))
	}

	if len(built) == 0 {
		return nil, nil
	}

	vals := make([]reflect.Value, 0, len(built))
	for _, obj := range built {
		vals = append(vals, reflect.ValueOf(obj).Elem())
	}

	out, err := merge.Instances(a.d, vals)
	if err != nil {
		return nil, err
	}

	merged := out.Interface().(T)

	return &merged, nil
}

// EntitiesPerNode builds each node's entity list from multi-entity
// responses, with no correlation or merging. Entities that fail to map are
// dropped with a warning; the second map carries the first failure per
// node.
func (a *Aggregator[T]) EntitiesPerNode(responses map[string]string) (map[string][]*T, map[string]error) {
	built := make(map[string][]*T, len(responses))
	failed := map[string]error{}

	for node, raw := range responses {
		log := a.log.With(zap.String("node", node))

		var list []*T

		for _, pairs := range infoparse.Multi(raw) {
			obj := new(T)

			err := builder.Apply(obj, pairs, log)
			if err != nil {
				log.Warn("dropping entity", zap.Error(err))

				if _, seen := failed[node]; !seen {
					failed[node] = err
				}

				continue
			}

			list = append(list, obj)
		}

		built[node] = list
	}

	return built, failed
}

// ReduceEntities correlates all nodes' entities into groups by key-field
// equality and merges each group. A group violating a must-match policy is
// dropped with a warning so one disagreeing entity cannot hide the rest;
// any other merge failure aborts the aggregation.
func (a *Aggregator[T]) ReduceEntities(responses map[string]string) ([]*T, error) {
	perNode, _ := a.EntitiesPerNode(responses)

	var pool []reflect.Value

	for _, list := range perNode {
		for _, obj := range list {
			pool = append(pool, reflect.ValueOf(obj).Elem())
		}
	}

	var out []*T

	// Pairwise partition: pick one instance, pull every key-equal peer out
	// of the pool, merge, repeat. Entity and node counts per query are
	// small enough that hashing would buy nothing.
	for len(pool) > 0 {
		seed := pool[0]
		group := []reflect.Value{seed}

		var rest []reflect.Value

		for _, cand := range pool[1:] {
			if a.sameEntity(seed, cand) {
				group = append(group, cand)
			} else {
				rest = append(rest, cand)
			}
		}

		pool = rest

		mergedVal, err := merge.Instances(a.d, group)
		if err != nil {
			var mismatch *policy.MismatchError
			if errors.As(err, &mismatch) {
				a.log.Warn("dropping inconsistent merge group",
					zap.String("field", mismatch.Field),
					zap.Error(err))

				continue
			}

			return nil, err
		}

		merged := mergedVal.Interface().(T)
		out = append(out, &merged)
	}

	return out, nil
}

// sameEntity reports whether two instances represent the same logical
// entity: every key field compares exactly equal, no coercion, no
// tolerance.
func (a *Aggregator[T]) sameEntity(x, y reflect.Value) bool {
	for _, f := range a.d.Keys {
		xv, yv := x.Field(f.Index), y.Field(f.Index)

		if f.Type.Comparable() {
			if xv.Interface() != yv.Interface() {
				return false
			}
		} else if !reflect.DeepEqual(xv.Interface(), yv.Interface()) {
			return false
		}
	}

	return true
}
