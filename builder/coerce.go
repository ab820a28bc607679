package builder

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"infomerge/descriptor"
	"infomerge/internal/ident"
)

// coerce parses the raw string into dst's type. Strings pass through,
// numeric and boolean kinds use standard textual parsing, and enum types
// get their raw value normalized before unmarshaling. A parse failure here
// is fatal for the object being built.
func coerce(dst reflect.Value, raw string) error {
	if dst.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}

		return coerce(dst.Elem(), raw)
	}

	if dst.CanAddr() {
		if u, ok := dst.Addr().Interface().(encoding.TextUnmarshaler); ok {
			text := raw
			if descriptor.IsEnum(dst.Type()) {
				text = ident.EnumLiteral(raw)
			}

			if err := u.UnmarshalText([]byte(text)); err != nil {
				return fmt.Errorf("parse %q as %s: %w", raw, dst.Type(), err)
			}

			return nil
		}
	}

	switch k := dst.Kind(); {
	default:
		return fmt.Errorf("%w: terminal kind %s is not coercible", ErrUnknownKey, dst.Type())

	case k == reflect.String:
		dst.SetString(raw)

	case k == reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parse %q as %s: %w", raw, dst.Type(), err)
		}

		dst.SetBool(b)

	case k >= reflect.Int && k <= reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse %q as %s: %w", raw, dst.Type(), err)
		}

		dst.SetInt(n)

	case k >= reflect.Uint && k <= reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse %q as %s: %w", raw, dst.Type(), err)
		}

		dst.SetUint(n)

	case k == reflect.Float32 || k == reflect.Float64:
		n, err := strconv.ParseFloat(raw, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse %q as %s: %w", raw, dst.Type(), err)
		}

		dst.SetFloat(n)
	}

	return nil
}
