package merge

import (
	"errors"
	"fmt"
	"reflect"

	"infomerge/descriptor"
	"infomerge/policy"
)

var ErrNoInstances = errors.New("no instances to merge")

// Instances reduces a homogeneous group of struct values, one per
// contributing node, into one aggregate value of the same type. The group
// must already be correlated: every instance represents the same logical
// entity.
func Instances(d *descriptor.Descriptor, instances []reflect.Value) (reflect.Value, error) {
	if len(instances) == 0 {
		return reflect.Value{}, ErrNoInstances
	}

	out := reflect.New(d.Type).Elem()

	for _, f := range d.Fields {
		merged, err := mergeField(f, instances)
		if err != nil {
			var mismatch *policy.MismatchError
			if errors.As(err, &mismatch) && mismatch.Field == "" {
				mismatch.Field = f.Name
			}

			return reflect.Value{}, fmt.Errorf("field %s: %w", f.Name, err)
		}

		if merged.IsValid() {
			out.Field(f.Index).Set(merged)
		}
	}

	return out, nil
}

func mergeField(f *descriptor.Field, instances []reflect.Value) (reflect.Value, error) {
	vals := make([]reflect.Value, 0, len(instances))
	for _, inst := range instances {
		vals = append(vals, inst.Field(f.Index))
	}

	if f.Policy != 0 {
		return policy.Reduce(f.Policy, f.Priorities, vals)
	}

	// No policy: nested structs merge recursively, everything else passes
	// the first contribution through.
	switch f.Type.Kind() {
	default:
		return vals[0], nil

	case reflect.Struct:
		return mergeNested(f.Type, vals)

	case reflect.Pointer:
		if f.Type.Elem().Kind() != reflect.Struct {
			return vals[0], nil
		}

		present := make([]reflect.Value, 0, len(vals))

		for _, v := range vals {
			if !v.IsNil() {
				present = append(present, v.Elem())
			}
		}

		if len(present) == 0 {
			return vals[0], nil
		}

		merged, err := mergeNested(f.Type.Elem(), present)
		if err != nil || !merged.IsValid() {
			return reflect.Value{}, err
		}

		ptr := reflect.New(f.Type.Elem())
		ptr.Elem().Set(merged)

		return ptr, nil
	}
}

// mergeNested merges a nested struct field under its own descriptor.
// Opaque structs without any mappable field (time.Time and friends) pass
// the first value through instead of collapsing to zero.
func mergeNested(t reflect.Type, vals []reflect.Value) (reflect.Value, error) {
	sub, err := descriptor.For(t)
	if err != nil || len(sub.Fields) == 0 {
		return vals[0], nil
	}

	return Instances(sub, vals)
}
