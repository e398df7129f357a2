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

// Package triple normalizes compiler target triples into the grammar accepted
// by the zig toolchain frontend.
//
// It provides:
//   - Normalize, an ordered list of string rewrite passes folding triples
//     from the GNU, Apple, LLVM versioned-core and WebAssembly dialects
//   - The list of triples known to be supported by zig
//   - Small accessors (Arch, IsMSVC) used by the command builder and executor
//
// Triples are never parsed into a structured value. Every pass is a pure
// string transform, and Normalize reruns them until the triple is stable.
package triple

import (
	"fmt"
	"strings"
)

// Native is the sentinel triple meaning "build for the host".
const Native = "native-native"

// A pass rewrites a triple and may report advisory warnings.
type pass func(triple string) (string, []string)

// Order matters: vendor folding inspects prefixes that assume an already
// collapsed architecture name.
var passes = []pass{
	renameArchitecture,
	foldWebAssembly,
	foldAppleVendor,
	foldUnknownVendor,
}

// Upper bound on rewrite rounds. Every input in practice settles in three.
const maxRounds = 8

// Normalize rewrites raw into the triple grammar understood by zig. Warnings
// are advisory: the returned triple is always usable as a -target value.
//
// The rewrite passes are repeated until a round leaves the triple unchanged,
// so Normalize(Normalize(t)) == Normalize(t). Only the warnings of the last
// round are reported.
func Normalize(raw string) (string, []string) {
	triple := raw
	var warnings []string
	for range maxRounds {
		next, w := rewrite(triple)
		warnings = w
		if next == triple {
			break
		}
		triple = next
	}
	triple, w := checkSupported(triple)
	return triple, append(warnings, w...)
}

func rewrite(triple string) (string, []string) {
	var warnings []string
	for _, p := range passes {
		var w []string
		triple, w = p(triple)
		warnings = append(warnings, w...)
	}
	return triple, warnings
}

// Arch returns the architecture component of the triple, i.e. everything
// before the first '-'.
func Arch(triple string) string {
	arch, _, _ := strings.Cut(triple, "-")
	return arch
}

// IsMSVC reports whether the triple selects the MSVC ABI.
func IsMSVC(triple string) bool {
	return strings.HasSuffix(triple, "msvc")
}

// Architecture families whose versioned or extension-qualified spellings are
// collapsed to the bare name zig expects, e.g. riscv64gc -> riscv64.
var archFamilies = []struct {
	prefixes []string
	name     string
}{
	{prefixes: []string{"riscv64"}, name: "riscv64"},
	{prefixes: []string{"riscv32"}, name: "riscv32"},
	{prefixes: []string{"armv5", "armv6", "armv7", "armv8"}, name: "arm"},
}

func renameArchitecture(triple string) (string, []string) {
	for _, family := range archFamilies {
		for _, prefix := range family.prefixes {
			if !strings.HasPrefix(triple, prefix) {
				continue
			}
			idx := strings.IndexByte(triple, '-')
			if idx < 0 {
				return triple, []string{fmt.Sprintf("malformed triple %q: expected '-' after the %s architecture", triple, family.name)}
			}
			return family.name + triple[idx:], nil
		}
	}
	return triple, nil
}

func foldWebAssembly(triple string) (string, []string) {
	if !strings.HasPrefix(triple, "wasm32-") {
		return triple, nil
	}
	parts := strings.Split(triple, "-")
	for _, part := range parts {
		if part == "" {
			return triple, []string{fmt.Sprintf("malformed WebAssembly triple %q: empty component", triple)}
		}
	}

	rest := parts[1:]
	for len(rest) > 0 && rest[len(rest)-1] == "wasm" {
		rest = rest[:len(rest)-1]
	}
	abi := make([]string, 0, len(rest))
	for _, part := range rest {
		switch part {
		case "unknown":
			continue
		case "emscripten":
			return "wasm32-emscripten", nil
		}
		abi = append(abi, part)
	}
	if len(abi) == 0 {
		return "wasm32-freestanding", nil
	}
	return "wasm32-" + strings.Join(abi, "-"), nil
}

// Apple triples name the vendor explicitly while zig omits it.
var appleAlias = map[string]string{
	"arm64-apple":  "aarch64",
	"x86_64-apple": "x86_64",
}

func foldAppleVendor(triple string) (string, []string) {
	for prefix, arch := range appleAlias {
		if rest, ok := strings.CutPrefix(triple, prefix); ok {
			return arch + rest, nil
		}
	}
	return triple, nil
}

func foldUnknownVendor(triple string) (string, []string) {
	if base, ok := strings.CutSuffix(triple, "-unknown-unknown"); ok {
		return base + "-freestanding", nil
	}
	if parts := strings.Split(triple, "-unknown-"); len(parts) == 2 {
		return parts[0] + "-" + parts[1], nil
	}
	return triple, nil
}

func checkSupported(triple string) (string, []string) {
	if triple == "" || triple == Native || IsKnown(triple) {
		return triple, nil
	}
	return triple, []string{fmt.Sprintf("target %q is not in the list of targets known to zig, passing it through anyway", triple)}
}
