package core

import (
	"reflect"
	"unsafe"
)

// DepsChanged reports whether next differs from prev. Lists of different
// lengths always differ, including when next is a prefix of prev.
func DepsChanged(prev, next []any) bool {
	if len(prev) != len(next) {
		return true
	}
	for i := range next {
		if !SameDep(prev[i], next[i]) {
			return true
		}
	}
	return false
}

// SameDep compares two dependency values by identity.
//
// Comparable values use ==, so pointers compare by address and strings,
// numbers and plain structs by value. Slices are the same when they share
// their backing array start and length; maps when they are the same map.
// Functions are the same when they are the same closure, so a cached
// setter is a stable dependency while two closures built from one literal
// are not. Values with non-comparable fields never compare equal.
func SameDep(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	switch va.Kind() {
	case reflect.Slice:
		return va.Len() == vb.Len() && va.Pointer() == vb.Pointer()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		return closureOf(a) == closureOf(b)
	default:
		return false
	}
}

// closureOf returns the closure pointer a func value boxed in v refers to.
// Func values are pointer-shaped, so the interface data word holds it
// directly. reflect.Value.Pointer only yields the code pointer, which all
// closures of one literal share.
func closureOf(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}
