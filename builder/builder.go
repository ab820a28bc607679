package builder

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"infomerge/descriptor"
)

var (
	ErrBadTarget  = errors.New("target must be a non-nil pointer to a struct")
	ErrUnknownKey = errors.New("no field for key")
)

// Apply maps raw key/value pairs onto target, a non-nil pointer to a
// struct. Each key is rewritten through the type's rules first, then
// walked as a canonical path. Unknown keys are logged at debug level and
// skipped; any other per-key failure aborts the build.
func Apply(target any, pairs map[string]string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %T", ErrBadTarget, target)
	}

	root := v.Elem()

	d, err := descriptor.For(root.Type())
	if err != nil {
		return err
	}

	for key, value := range pairs {
		err := applyOne(root, d, d.Rewrite(key), value)

		switch {
		case err == nil:
		case errors.Is(err, ErrUnknownKey):
			logger.Debug("skipping unknown key",
				zap.String("type", d.Type.String()),
				zap.String("key", key))
		default:
			return fmt.Errorf("key %q: %w", key, err)
		}
	}

	return nil
}

func applyOne(v reflect.Value, d *descriptor.Descriptor, canonical, value string) error {
	path, err := ParsePath(canonical)
	if err != nil {
		// Raw keys that are not addressable paths count as unknown.
		return fmt.Errorf("%w: %v", ErrUnknownKey, err)
	}

	return applySegments(v, d, path, value)
}

func applySegments(v reflect.Value, d *descriptor.Descriptor, path Path, value string) error {
	seg := path[0]

	f, ok := d.Lookup(seg.Name)
	if !ok {
		return fmt.Errorf("%w: %s has no field for token %q", ErrUnknownKey, d.Type, seg.Name)
	}

	slot := v.Field(f.Index)

	if seg.Index >= 0 {
		if slot.Kind() != reflect.Slice {
			return fmt.Errorf("%w: field %s.%s is not index-addressable", ErrUnknownKey, d.Type, f.Name)
		}

		growSlice(slot, seg.Index)
		slot = slot.Index(seg.Index)
	}

	if len(path) == 1 {
		return coerce(slot, value)
	}

	elem, err := materialize(slot)
	if err != nil {
		return err
	}

	sub, err := descriptor.For(elem.Type())
	if err != nil {
		return err
	}

	return applySegments(elem, sub, path[1:], value)
}

// growSlice pads the slice with zero placeholders until idx exists.
func growSlice(slot reflect.Value, idx int) {
	if slot.IsNil() {
		slot.Set(reflect.MakeSlice(slot.Type(), 0, idx+1))
	}

	for slot.Len() <= idx {
		slot.Set(reflect.Append(slot, reflect.Zero(slot.Type().Elem())))
	}
}

// materialize prepares an intermediate slot for descent: nil pointers are
// lazily instantiated, anything that does not end at a struct is not a
// descendable field.
func materialize(slot reflect.Value) (reflect.Value, error) {
	if slot.Kind() == reflect.Pointer {
		if slot.IsNil() {
			slot.Set(reflect.New(slot.Type().Elem()))
		}

		slot = slot.Elem()
	}

	if slot.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: cannot descend into %s", ErrUnknownKey, slot.Type())
	}

	return slot, nil
}
