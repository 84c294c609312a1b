/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scale

// ordinalIndices maps values to range indices by exact domain lookup.
// Domain and range must be the same length; misses yield -1.
func ordinalIndices(cfg Config, values Array) ([]int, error) {
	if cfg.Domain.Len() != cfg.Range.Len() {
		return nil, shapeErrf("ordinal scale domain and range must have equal length, got %d and %d",
			cfg.Domain.Len(), cfg.Range.Len())
	}
	return lookupIndices(cfg.Domain, values)
}

// lookupIndices resolves each value to its first position in the domain,
// -1 when absent. The value type has to match the domain type.
func lookupIndices(domain, values Array) ([]int, error) {
	switch domain.Kind() {
	case ArrayFloats:
		ds, _ := domain.AsFloats()
		vs, ok := values.AsFloats()
		if !ok {
			return nil, configErrf("scale input type %s does not match domain type %s",
				values.Kind(), domain.Kind())
		}
		index := make(map[float32]int, len(ds))
		for i, d := range ds {
			if _, exists := index[d]; !exists {
				index[d] = i
			}
		}
		out := make([]int, len(vs))
		for i, v := range vs {
			if isNaN(v) {
				out[i] = -1
				continue
			}
			if idx, ok := index[v]; ok {
				out[i] = idx
			} else {
				out[i] = -1
			}
		}
		return out, nil
	case ArrayStrings:
		ds, _ := domain.AsStrings()
		vs, ok := values.AsStrings()
		if !ok {
			return nil, configErrf("scale input type %s does not match domain type %s",
				values.Kind(), domain.Kind())
		}
		index := make(map[string]int, len(ds))
		for i, d := range ds {
			if _, exists := index[d]; !exists {
				index[d] = i
			}
		}
		out := make([]int, len(vs))
		for i, v := range vs {
			if idx, ok := index[v]; ok {
				out[i] = idx
			} else {
				out[i] = -1
			}
		}
		return out, nil
	default:
		return nil, configErrf("scale domains of type %s do not support lookup", domain.Kind())
	}
}
