/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scale

import "sort"

// thresholdBounds validates and returns the bucket boundaries of a
// threshold scale: an ascending domain splitting the range into
// len(domain)+1 buckets.
func thresholdBounds(cfg Config) ([]float32, int, error) {
	bounds, ok := cfg.Domain.AsFloats()
	if !ok {
		return nil, 0, configErrf("threshold scale domain must be numeric, got %s", cfg.Domain.Kind())
	}
	for i := 1; i < len(bounds); i++ {
		if !(bounds[i] > bounds[i-1]) {
			return nil, 0, configErrf("threshold scale domain must be strictly ascending, got %v", bounds)
		}
	}
	if cfg.Range.Len() != len(bounds)+1 {
		return nil, 0, shapeErrf("threshold scale with %d boundaries needs a range of length %d, got %d",
			len(bounds), len(bounds)+1, cfg.Range.Len())
	}
	return bounds, len(bounds) + 1, nil
}

func thresholdIndices(cfg Config, values Array) ([]int, error) {
	bounds, _, err := thresholdBounds(cfg)
	if err != nil {
		return nil, err
	}
	vs, err := numericPartitionInput(values)
	if err != nil {
		return nil, err
	}
	return bucketIndices(bounds, vs), nil
}

// quantileThresholds computes the bucket boundaries of a quantile scale
// as equally spaced order statistics of the sorted domain. They double as
// the scale's ticks.
func quantileThresholds(cfg Config) ([]float32, error) {
	data, ok := cfg.Domain.AsFloats()
	if !ok {
		return nil, configErrf("quantile scale domain must be numeric, got %s", cfg.Domain.Kind())
	}
	sorted := make([]float32, 0, len(data))
	for _, v := range data {
		if !isNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return nil, configErrf("quantile scale requires a non-empty domain")
	}
	k := cfg.Range.Len()
	if k < 2 {
		return nil, shapeErrf("quantile scale requires a range of at least 2 values, got %d", k)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	n := len(sorted)
	thresholds := make([]float32, k-1)
	for i := 1; i < k; i++ {
		thresholds[i-1] = sorted[(n*i)/k]
	}
	return thresholds, nil
}

func quantileIndices(cfg Config, values Array) ([]int, error) {
	thresholds, err := quantileThresholds(cfg)
	if err != nil {
		return nil, err
	}
	vs, err := numericPartitionInput(values)
	if err != nil {
		return nil, err
	}
	return bucketIndices(thresholds, vs), nil
}

// bucketIndices places each value into its bucket: the count of
// boundaries <= v, so a value equal to a boundary falls into the upper
// bucket. Non-finite values miss with -1.
func bucketIndices(bounds []float32, vs []float32) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		if !isFinite(v) {
			out[i] = -1
			continue
		}
		out[i] = sort.Search(len(bounds), func(j int) bool { return bounds[j] > v })
	}
	return out
}

func numericPartitionInput(values Array) ([]float32, error) {
	vs, ok := values.AsFloats()
	if !ok {
		return nil, configErrf("partition scales expect numeric input, got %s", values.Kind())
	}
	return vs, nil
}
