// Package go2 contains general utility helpers that should've been in Go. Maybe they'll be in Go 2.0.
package go2

import (
	"golang.org/x/exp/constraints"
)

func Pointer[T any](v T) *T {
	return &v
}

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func Contains[T comparable](els []T, el T) bool {
	for _, el2 := range els {
		if el2 == el {
			return true
		}
	}
	return false
}

// Map applies fn to every element of els.
func Map[T, U any](els []T, fn func(T) U) []U {
	out := make([]U, 0, len(els))
	for _, el := range els {
		out = append(out, fn(el))
	}
	return out
}

// Sum adds up els.
func Sum[T constraints.Integer | constraints.Float](els []T) T {
	var total T
	for _, el := range els {
		total += el
	}
	return total
}
