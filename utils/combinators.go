// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

func Map[T any, R any](f func(T) R, a []T) []R {
	b := make([]R, len(a))
	for i, v := range a {
		b[i] = f(v)
	}
	return b
}

// TryMap is Map for a fallible [f]. It stops at the first error, which is
// returned with the index of the failing element.
func TryMap[T any, R any](f func(T) (R, error), a []T) ([]R, int, error) {
	b := make([]R, len(a))
	for i, v := range a {
		r, err := f(v)
		if err != nil {
			return nil, i, err
		}
		b[i] = r
	}
	return b, -1, nil
}
