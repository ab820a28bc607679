package descriptor

import (
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Descriptors live for the process; the cache is read-mostly after warmup.
// singleflight collapses racing first builds of one type; a duplicate
// build slipping through would be idempotent anyway.
var (
	cache  sync.Map // reflect.Type -> *Descriptor
	builds singleflight.Group
)

// For returns the cached descriptor of struct type t, building it on
// first use. Pointer types are dereferenced to their element type.
func For(t reflect.Type) (*Descriptor, error) {
	t = baseType(t)

	if d, ok := cache.Load(t); ok {
		return d.(*Descriptor), nil
	}

	v, err, _ := builds.Do(t.PkgPath()+"."+t.String(), func() (any, error) {
		if d, ok := cache.Load(t); ok {
			return d, nil
		}

		d, err := build(t, takeOverride(t))
		if err != nil {
			return nil, err
		}

		cache.Store(t, d)

		return d, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Descriptor), nil
}

// Of is For applied to a value's type.
func Of(target any) (*Descriptor, error) {
	return For(reflect.TypeOf(target))
}

func baseType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}
