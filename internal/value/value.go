/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package value provides ScalarOrArray, a container holding either a single
// value broadcast across N logical positions or an array of N values. Scales
// and scene marks use it to avoid materializing per-instance arrays when an
// encoding is constant.
package value

import "sync"

// ScalarOrArray is either one scalar replicated implicitly or a backing
// array. The zero value is a scalar holding T's zero value. Copies share the
// backing array and the hash memo.
type ScalarOrArray[T any] struct {
	scalar  T
	values  []T
	isArray bool
	memo    *hashMemo
}

// hashMemo caches the content hash. Concurrent callers may compute the hash
// redundantly before one wins; the lock only guards the stored result.
type hashMemo struct {
	mu   sync.Mutex
	hash uint64
	ok   bool
}

// Scalar returns a broadcastable single value.
func Scalar[T any](v T) ScalarOrArray[T] {
	return ScalarOrArray[T]{scalar: v}
}

// Array wraps vs without copying. The caller must not mutate vs afterwards.
func Array[T any](vs []T) ScalarOrArray[T] {
	return ScalarOrArray[T]{values: vs, isArray: true, memo: &hashMemo{}}
}

// IsScalar reports whether the value is the broadcast variant.
func (s ScalarOrArray[T]) IsScalar() bool { return !s.isArray }

// Len returns the array length, or 1 for a scalar.
func (s ScalarOrArray[T]) Len() int {
	if s.isArray {
		return len(s.values)
	}
	return 1
}

// ScalarValue returns the scalar and true, or the zero value and false for
// the array variant.
func (s ScalarOrArray[T]) ScalarValue() (T, bool) {
	if s.isArray {
		var zero T
		return zero, false
	}
	return s.scalar, true
}

// Values returns the backing array, or nil for a scalar.
func (s ScalarOrArray[T]) Values() []T {
	if s.isArray {
		return s.values
	}
	return nil
}

// Value returns the element at logical position i. A scalar answers every
// position with the same value.
func (s ScalarOrArray[T]) Value(i int) T {
	if s.isArray {
		return s.values[i]
	}
	return s.scalar
}

// Each visits scalarLen logical positions. For an array variant scalarLen is
// ignored and the array length governs. A non-nil indices permutation
// reorders or subsets array iteration without copying; it does not apply to
// scalars.
func (s ScalarOrArray[T]) Each(scalarLen int, indices []int, f func(i int, v T)) {
	if !s.isArray {
		for i := 0; i < scalarLen; i++ {
			f(i, s.scalar)
		}
		return
	}
	if indices == nil {
		for i, v := range s.values {
			f(i, v)
		}
		return
	}
	for i, idx := range indices {
		f(i, s.values[idx])
	}
}

// Vec materializes the logical sequence as a fresh slice.
func (s ScalarOrArray[T]) Vec(scalarLen int, indices []int) []T {
	n := scalarLen
	if s.isArray {
		n = len(s.values)
		if indices != nil {
			n = len(indices)
		}
	}
	out := make([]T, 0, n)
	s.Each(scalarLen, indices, func(_ int, v T) {
		out = append(out, v)
	})
	return out
}

// Hash returns a content hash computed with elem, memoized after the first
// call. Redundant concurrent computation is harmless; the memo only ensures
// a consistent stored result.
func (s ScalarOrArray[T]) Hash(elem func(T) uint64) uint64 {
	if s.memo != nil {
		s.memo.mu.Lock()
		if s.memo.ok {
			h := s.memo.hash
			s.memo.mu.Unlock()
			return h
		}
		s.memo.mu.Unlock()
	}

	// FNV-1a over element hashes.
	const offset, prime = uint64(14695981039346656037), uint64(1099511628211)
	h := offset
	mix := func(v uint64) {
		for i := 0; i < 8; i++ {
			h ^= v & 0xff
			h *= prime
			v >>= 8
		}
	}
	if s.isArray {
		for _, v := range s.values {
			mix(elem(v))
		}
	} else {
		mix(elem(s.scalar))
	}

	if s.memo != nil {
		s.memo.mu.Lock()
		if !s.memo.ok {
			s.memo.hash = h
			s.memo.ok = true
		}
		h = s.memo.hash
		s.memo.mu.Unlock()
	}
	return h
}

// Map applies f elementwise, preserving the variant.
func Map[T, U any](s ScalarOrArray[T], f func(T) U) ScalarOrArray[U] {
	if s.IsScalar() {
		v, _ := s.ScalarValue()
		return Scalar(f(v))
	}
	vs := s.Values()
	out := make([]U, len(vs))
	for i, v := range vs {
		out[i] = f(v)
	}
	return Array(out)
}

// EqualsScalar reports whether s is the scalar variant holding exactly v.
func EqualsScalar[T comparable](s ScalarOrArray[T], v T) bool {
	sv, ok := s.ScalarValue()
	return ok && sv == v
}
