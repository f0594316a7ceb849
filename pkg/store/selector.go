package store

import (
	"reflect"
	"sync"

	"github.com/go-drift/hooks/pkg/core"
)

// CreateSelector returns a memoized selector. combine runs only when the
// value returned by input differs from the previous call's; structs are
// compared field by field with core.SameDep, so a state slice that was
// not replaced by its reducer keeps the cached result. The returned
// function is safe for concurrent use.
func CreateSelector[S, I, R any](input func(S) I, combine func(I) R) func(S) R {
	var (
		mu      sync.Mutex
		have    bool
		lastIn  I
		lastOut R
	)
	return func(state S) R {
		mu.Lock()
		defer mu.Unlock()
		in := input(state)
		if have && Same(lastIn, in) {
			return lastOut
		}
		lastIn, lastOut, have = in, combine(in), true
		return lastOut
	}
}

// Same reports whether a and b are the same value under shallow identity:
// structs and arrays compare element-wise, everything else with
// core.SameDep.
func Same(a, b any) bool {
	return same(reflect.ValueOf(a), reflect.ValueOf(b))
}

func same(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}
	switch a.Kind() {
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !a.Type().Field(i).IsExported() {
				if !a.Field(i).Comparable() || !a.Field(i).Equal(b.Field(i)) {
					return false
				}
				continue
			}
			if !same(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !same(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	default:
		return core.SameDep(a.Interface(), b.Interface())
	}
}
