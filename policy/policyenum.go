package policy

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=PolicyEnum -output=policyenum_string.go

type PolicyEnum int

const (
	_ PolicyEnum = iota // zero means no declared policy (pass-through)

	PolicyAggregate
	PolicyAverage
	PolicyMinimum
	PolicyAnd
	PolicyOr
	PolicyMostCommon
	PolicyFirstOf
	PolicyMustMatch

	// PolicyTotal is a constant that represents the total number of policies defined
	PolicyTotal = int(iota)
)

var ErrUnknownPolicy = errors.New("unknown merge policy")

// Parse parses a `merge` tag value into a policy and, for firstof, its
// priority order. Recognized forms:
//
//	aggregate | average | minimum | and | or | mostcommon | mustmatch
//	firstof=HIGH,LOW,...
func Parse(tag string) (PolicyEnum, []string, error) {
	name, arg, hasArg := strings.Cut(tag, "=")
	name = strings.ToLower(strings.TrimSpace(name))

	switch name {
	default:
		return 0, nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, tag)

	case "aggregate":
		return PolicyAggregate, nil, nil
	case "average":
		return PolicyAverage, nil, nil
	case "minimum":
		return PolicyMinimum, nil, nil
	case "and":
		return PolicyAnd, nil, nil
	case "or":
		return PolicyOr, nil, nil
	case "mostcommon":
		return PolicyMostCommon, nil, nil
	case "mustmatch":
		return PolicyMustMatch, nil, nil

	case "firstof":
		if !hasArg {
			return 0, nil, fmt.Errorf("%w: firstof requires a priority order", ErrUnknownPolicy)
		}

		var order []string

		for _, p := range strings.Split(arg, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				order = append(order, p)
			}
		}

		if len(order) == 0 {
			return 0, nil, fmt.Errorf("%w: firstof requires a priority order", ErrUnknownPolicy)
		}

		return PolicyFirstOf, order, nil
	}
}
