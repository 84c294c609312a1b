/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ticks

import (
	"math"
	"testing"
)

func eqSlice(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTicksUnitInterval(t *testing.T) {
	cases := []struct {
		count float32
		want  []float32
	}{
		{10, []float32{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}},
		{9, []float32{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}},
		{8, []float32{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}},
		{7, []float32{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{6, []float32{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{5, []float32{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{4, []float32{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{3, []float32{0, 0.5, 1}},
		{2, []float32{0, 0.5, 1}},
		{1, []float32{0, 1}},
	}
	for _, c := range cases {
		got := Ticks(0, 1, c.count)
		if !eqSlice(got, c.want) {
			t.Fatalf("Ticks(0,1,%v) = %v, want %v", c.count, got, c.want)
		}
	}
}

func TestTicksDescending(t *testing.T) {
	got := Ticks(1, 0, 5)
	want := []float32{1, 0.8, 0.6, 0.4, 0.2, 0}
	if !eqSlice(got, want) {
		t.Fatalf("Ticks(1,0,5) = %v, want %v", got, want)
	}
}

func TestTicksEdgeCases(t *testing.T) {
	nan := float32(math.NaN())
	if got := Ticks(nan, 1, 1); len(got) != 0 {
		t.Fatalf("Ticks(NaN,1,1) = %v, want empty", got)
	}
	if got := Ticks(0, nan, 1); len(got) != 0 {
		t.Fatalf("Ticks(0,NaN,1) = %v, want empty", got)
	}
	if got := Ticks(0, 1, nan); len(got) != 0 {
		t.Fatalf("Ticks(0,1,NaN) = %v, want empty", got)
	}
	if got := Ticks(0, 1, 0); len(got) != 0 {
		t.Fatalf("Ticks(0,1,0) = %v, want empty", got)
	}
	if got := Ticks(0, 1, -1); len(got) != 0 {
		t.Fatalf("Ticks(0,1,-1) = %v, want empty", got)
	}
	if got := Ticks(1, 1, 1); !eqSlice(got, []float32{1}) {
		t.Fatalf("Ticks(1,1,1) = %v, want [1]", got)
	}
	if got := Ticks(1, 1, 10); !eqSlice(got, []float32{1}) {
		t.Fatalf("Ticks(1,1,10) = %v, want [1]", got)
	}
	if got := Ticks(0, 1, float32(math.Inf(1))); len(got) != 0 {
		t.Fatalf("Ticks(0,1,+Inf) = %v, want empty", got)
	}
}

func TestTicksFractionalCount(t *testing.T) {
	if got := Ticks(1, 364, 0.1); len(got) != 0 {
		t.Fatalf("Ticks(1,364,0.1) = %v, want empty", got)
	}
	if got := Ticks(1, 364, 0.499); len(got) != 0 {
		t.Fatalf("Ticks(1,364,0.499) = %v, want empty", got)
	}
	for _, count := range []float32{0.5, 1, 1.5} {
		got := Ticks(1, 364, count)
		if !eqSlice(got, []float32{200}) {
			t.Fatalf("Ticks(1,364,%v) = %v, want [200]", count, got)
		}
	}
}

func TestTickIncrement(t *testing.T) {
	cases := []struct {
		count float32
		want  float32
	}{
		{10, 0.1}, {9, 0.1}, {8, 0.1},
		{7, 0.2}, {6, 0.2}, {5, 0.2}, {4, 0.2},
		{3, 0.5}, {2, 0.5},
		{1, 1},
	}
	for _, c := range cases {
		if got := TickIncrement(0, 1, c.count); got != c.want {
			t.Fatalf("TickIncrement(0,1,%v) = %v, want %v", c.count, got, c.want)
		}
	}
}

func TestTickIncrementEdgeCases(t *testing.T) {
	nan := float32(math.NaN())
	for _, c := range [][3]float32{
		{nan, 1, 1}, {0, nan, 1}, {0, 1, nan},
		{0, 1, 0}, {0, 1, -1}, {0, 1, float32(math.Inf(1))},
	} {
		if got := TickIncrement(c[0], c[1], c[2]); !math.IsNaN(float64(got)) {
			t.Fatalf("TickIncrement(%v,%v,%v) = %v, want NaN", c[0], c[1], c[2], got)
		}
	}
	for _, count := range []float32{1, 10} {
		got := TickIncrement(1, 1, count)
		if !math.IsInf(float64(got), -1) {
			t.Fatalf("TickIncrement(1,1,%v) = %v, want -Inf", count, got)
		}
	}
}

func TestNiceInterval(t *testing.T) {
	lo, hi := NiceInterval(1.1, 10.9, 10)
	if lo != 1 || hi != 11 {
		t.Fatalf("NiceInterval(1.1,10.9,10) = (%v,%v), want (1,11)", lo, hi)
	}
	// descending input keeps its order
	lo, hi = NiceInterval(10.9, 1.1, 10)
	if lo != 11 || hi != 1 {
		t.Fatalf("NiceInterval(10.9,1.1,10) = (%v,%v), want (11,1)", lo, hi)
	}
	// degenerate interval is unchanged
	lo, hi = NiceInterval(3, 3, 10)
	if lo != 3 || hi != 3 {
		t.Fatalf("NiceInterval(3,3,10) = (%v,%v), want (3,3)", lo, hi)
	}
}
