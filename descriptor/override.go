package descriptor

import (
	"fmt"
	"reflect"
	"sync"

	"infomerge/policy"
)

// FieldOverride adjusts one field's declaration without touching its
// struct tag. Zero-valued members leave the tag declaration in place.
type FieldOverride struct {
	Alias      string
	Key        bool
	Policy     policy.PolicyEnum
	Priorities []string
}

// Override supplies rewrite rules and field adjustments for a type whose
// source cannot carry them in tags, e.g. generated types. It must be
// registered before the type's first descriptor use.
type Override struct {
	Rules  []RewriteRule
	Fields map[string]FieldOverride // keyed by Go field name
}

var (
	overrideMu sync.Mutex
	overrides  = map[reflect.Type]*Override{}
)

// RegisterOverride records an override for target's type. Registering
// after the descriptor has been built fails: descriptors are immutable.
func RegisterOverride(target any, o Override) error {
	t := baseType(reflect.TypeOf(target))

	if _, ok := cache.Load(t); ok {
		return fmt.Errorf("%w: %s", ErrDescribed, t)
	}

	overrideMu.Lock()
	defer overrideMu.Unlock()

	overrides[t] = &o

	return nil
}

func takeOverride(t reflect.Type) *Override {
	overrideMu.Lock()
	defer overrideMu.Unlock()

	return overrides[t]
}
