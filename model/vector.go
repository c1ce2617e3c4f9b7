package model

import (
	"strconv"
	"strings"
)

// Vector holds one non-negative count per resource type.
type Vector []int

// Zero returns a zero vector of n resource types
func Zero(n int) Vector {
	return make(Vector, n)
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	ret := make(Vector, len(v))
	copy(ret, v)
	return ret
}

// Pad returns v extended with zeros up to n elements. Longer vectors are
// returned unchanged.
func (v Vector) Pad(n int) Vector {
	if len(v) >= n {
		return v
	}
	ret := make(Vector, n)
	copy(ret, v)
	return ret
}

// Sub returns v - other component-wise.
func (v Vector) Sub(other Vector) Vector {
	ret := v.Clone()
	for i := range ret {
		if i < len(other) {
			ret[i] -= other[i]
		}
	}
	return ret
}

// Add returns v + other component-wise.
func (v Vector) Add(other Vector) Vector {
	ret := v.Clone()
	for i := range ret {
		if i < len(other) {
			ret[i] += other[i]
		}
	}
	return ret
}

// Fits reports whether every component of v is less than or equal to the
// matching component of limit.
func (v Vector) Fits(limit Vector) bool {
	for i, value := range v {
		if i >= len(limit) {
			if value > 0 {
				return false
			}
			continue
		}
		if value > limit[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether every component is zero.
func (v Vector) IsZero() bool {
	for _, value := range v {
		if value != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether v and other hold the same counts.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the vector as "[a, b, c]".
func (v Vector) String() string {
	return v.Format(", ")
}

// Format renders the vector with the supplied separator.
func (v Vector) Format(sep string) string {
	parts := make([]string, len(v))
	for i, value := range v {
		parts[i] = strconv.Itoa(value)
	}
	return "[" + strings.Join(parts, sep) + "]"
}
