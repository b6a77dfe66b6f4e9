package shared

import (
	"fmt"
	"hash/fnv"
	"reflect"
)

// ValueObject exposes the ordered list of components that define it.
// Components must be comparable values (strings, numbers, times).
type ValueObject interface {
	Components() []any
}

// StructurallyEqual compares two value objects component by component.
func StructurallyEqual(a, b ValueObject) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	left, right := a.Components(), b.Components()
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}

// StructuralHash derives a hash from the components, consistent with StructurallyEqual.
func StructuralHash(v ValueObject) uint64 {
	h := fnv.New64a()
	for _, c := range v.Components() {
		fmt.Fprintf(h, "%T:%v|", c, c)
	}
	return h.Sum64()
}
