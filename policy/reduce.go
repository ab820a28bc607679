package policy

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrNoValues      = errors.New("no values to reduce")
	ErrNotApplicable = errors.New("merge policy not applicable to field kind")
)

// MismatchError reports a PolicyMustMatch disagreement. It deliberately
// carries every candidate value and resolves to none of them.
type MismatchError struct {
	Field  string
	Values []any
}

func (e *MismatchError) Error() string {
	vals := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		vals = append(vals, fmt.Sprint(v))
	}

	return fmt.Sprintf("values for field %q do not match: [%s]", e.Field, strings.Join(vals, " "))
}

// Reduce collapses per-node values of one field into a single value
// according to policy p. All values must share one type. The order argument
// is the priority ranking for PolicyFirstOf and is ignored otherwise.
//
// A zero policy passes the first value through unchanged, so reducing never
// leaves a field unset.
func Reduce(p PolicyEnum, order []string, vals []reflect.Value) (reflect.Value, error) {
	if len(vals) == 0 {
		return reflect.Value{}, ErrNoValues
	}

	switch p {
	default:
		return vals[0], nil

	case PolicyAggregate:
		return reduceAggregate(vals)
	case PolicyAverage:
		return reduceAverage(vals)
	case PolicyMinimum:
		return reduceMinimum(vals)
	case PolicyAnd:
		return reduceBool(vals, true)
	case PolicyOr:
		return reduceBool(vals, false)
	case PolicyMostCommon:
		return reduceMostCommon(vals)
	case PolicyFirstOf:
		return reduceFirstOf(order, vals)
	case PolicyMustMatch:
		return reduceMustMatch(vals)
	}
}

func reduceAggregate(vals []reflect.Value) (reflect.Value, error) {
	out := reflect.New(vals[0].Type()).Elem()

	switch k := vals[0].Kind(); {
	default:
		return reflect.Value{}, notApplicable(PolicyAggregate, vals[0].Type())

	case isIntKind(k):
		var total int64
		for _, v := range vals {
			total += v.Int()
		}
		out.SetInt(total)

	case isUintKind(k):
		var total uint64
		for _, v := range vals {
			total += v.Uint()
		}
		out.SetUint(total)

	case isFloatKind(k):
		var total float64
		for _, v := range vals {
			total += v.Float()
		}
		out.SetFloat(total)
	}

	return out, nil
}

func reduceAverage(vals []reflect.Value) (reflect.Value, error) {
	out := reflect.New(vals[0].Type()).Elem()
	n := len(vals)

	switch k := vals[0].Kind(); {
	default:
		return reflect.Value{}, notApplicable(PolicyAverage, vals[0].Type())

	case isIntKind(k):
		var total int64
		for _, v := range vals {
			total += v.Int()
		}
		out.SetInt(total / int64(n))

	case isUintKind(k):
		var total uint64
		for _, v := range vals {
			total += v.Uint()
		}
		out.SetUint(total / uint64(n))

	case isFloatKind(k):
		var total float64
		for _, v := range vals {
			total += v.Float()
		}
		out.SetFloat(total / float64(n))
	}

	return out, nil
}

func reduceMinimum(vals []reflect.Value) (reflect.Value, error) {
	min := vals[0]

	switch k := vals[0].Kind(); {
	default:
		return reflect.Value{}, notApplicable(PolicyMinimum, vals[0].Type())

	case isIntKind(k):
		for _, v := range vals[1:] {
			if v.Int() < min.Int() {
				min = v
			}
		}

	case isUintKind(k):
		for _, v := range vals[1:] {
			if v.Uint() < min.Uint() {
				min = v
			}
		}

	case isFloatKind(k):
		for _, v := range vals[1:] {
			if v.Float() < min.Float() {
				min = v
			}
		}

	case k == reflect.String:
		for _, v := range vals[1:] {
			if v.String() < min.String() {
				min = v
			}
		}
	}

	return min, nil
}

func reduceBool(vals []reflect.Value, and bool) (reflect.Value, error) {
	if vals[0].Kind() != reflect.Bool {
		p := PolicyOr
		if and {
			p = PolicyAnd
		}

		return reflect.Value{}, notApplicable(p, vals[0].Type())
	}

	out := and
	for _, v := range vals {
		if and {
			out = out && v.Bool()
		} else {
			out = out || v.Bool()
		}
	}

	res := reflect.New(vals[0].Type()).Elem()
	res.SetBool(out)

	return res, nil
}

func reduceMostCommon(vals []reflect.Value) (reflect.Value, error) {
	if !vals[0].Type().Comparable() {
		return reflect.Value{}, notApplicable(PolicyMostCommon, vals[0].Type())
	}

	counts := make(map[any]int, len(vals))
	for _, v := range vals {
		counts[v.Interface()]++
	}

	// Map iteration order decides between tied maxima; any tied value is a
	// valid answer.
	best := 0

	var winner any

	for val, n := range counts {
		if n > best {
			best, winner = n, val
		}
	}

	for _, v := range vals {
		if v.Interface() == winner {
			return v, nil
		}
	}

	return vals[0], nil
}

func reduceFirstOf(order []string, vals []reflect.Value) (reflect.Value, error) {
	for _, want := range order {
		for _, v := range vals {
			if valueRepr(v) == want {
				return v, nil
			}
		}
	}

	// No declared priority present: fall back to the first contribution.
	return vals[0], nil
}

func reduceMustMatch(vals []reflect.Value) (reflect.Value, error) {
	exact := vals[0].Type().Comparable()

	for _, v := range vals[1:] {
		equal := false
		if exact {
			equal = v.Interface() == vals[0].Interface()
		} else {
			equal = reflect.DeepEqual(v.Interface(), vals[0].Interface())
		}

		if !equal {
			err := &MismatchError{Values: make([]any, 0, len(vals))}
			for _, w := range vals {
				err.Values = append(err.Values, w.Interface())
			}

			return reflect.Value{}, err
		}
	}

	return vals[0], nil
}

// valueRepr renders a value the way its raw key literal would spell it,
// for PolicyFirstOf priority matching.
func valueRepr(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprint(v.Interface())
}

func notApplicable(p PolicyEnum, t reflect.Type) error {
	return fmt.Errorf("%w: %s over %s", ErrNotApplicable, p, t)
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
}

func isFloatKind(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Float32, reflect.Float64:
		return true
	}
}

// IsNumeric reports whether kind k participates in the numeric default
// policies (integer kinds sum, float kinds average).
func IsNumeric(k reflect.Kind) bool {
	return isIntKind(k) || isUintKind(k) || isFloatKind(k)
}

// IsInteger reports whether kind k is a signed or unsigned integer kind.
func IsInteger(k reflect.Kind) bool {
	return isIntKind(k) || isUintKind(k)
}

// IsFloat reports whether kind k is a floating point kind.
func IsFloat(k reflect.Kind) bool {
	return isFloatKind(k)
}
