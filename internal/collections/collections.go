// Copyright 2026 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package collections provides small generic helpers for slices of command
// line tokens.
//
// Every helper preserves the input order, which matters for compiler
// invocations where argument position is significant.
package collections

// FlatMapSlice applies `fn` to each element of `s` and concatenates the
// returned slices, keeping the order of both the input and each expansion.
//
// Example:
//
//	FlatMapSlice(
//		[]string{"-a", "-b"},
//		func(x string) []string { return []string{x, x} }
//	)
//	=> []string{"-a", "-a", "-b", "-b"}
func FlatMapSlice[TSlice ~[]T, VSlice ~[]V, T, V any](s TSlice, fn func(T) VSlice) VSlice {
	result := make(VSlice, 0, len(s))
	for _, elem := range s {
		result = append(result, fn(elem)...)
	}
	return result
}

// FilterSlice returns the elements of `s` for which `predicate` is true.
func FilterSlice[TSlice ~[]T, T any](s TSlice, predicate func(T) bool) TSlice {
	result := make(TSlice, 0, len(s))
	for _, elem := range s {
		if predicate(elem) {
			result = append(result, elem)
		}
	}
	return result
}

// Partition splits `s` into the elements matching `predicate` and the rest.
// Both halves keep their relative order.
//
// Example:
//
//	Partition([]int{1, 2, 3, 4}, func(x int) bool { return x%2 == 0 })
//	=> []int{2, 4}, []int{1, 3}
func Partition[TSlice ~[]T, T any](s TSlice, predicate func(T) bool) (matching, rest TSlice) {
	for _, elem := range s {
		if predicate(elem) {
			matching = append(matching, elem)
		} else {
			rest = append(rest, elem)
		}
	}
	return matching, rest
}
