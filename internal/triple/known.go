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

package triple

import (
	"strings"

	"github.com/EngFlow/zig_cc/internal/collections"
)

// Targets zig ships libc support for, spelled the way Normalize produces
// them. Should match `zig targets | jq .libc` plus the freestanding and
// vendor-less Apple forms.
var knownTriples = collections.SetOf(
	// Linux
	"aarch64-linux-gnu",
	"aarch64-linux-musl",
	"aarch64_be-linux-gnu",
	"aarch64_be-linux-musl",
	"arm-linux-gnueabi",
	"arm-linux-gnueabihf",
	"arm-linux-musleabi",
	"arm-linux-musleabihf",
	"armeb-linux-gnueabi",
	"armeb-linux-gnueabihf",
	"loongarch64-linux-gnu",
	"loongarch64-linux-musl",
	"mips-linux-gnueabi",
	"mips-linux-musl",
	"mips64-linux-gnuabi64",
	"mips64-linux-musl",
	"mips64el-linux-gnuabi64",
	"mips64el-linux-musl",
	"mipsel-linux-gnueabi",
	"mipsel-linux-musl",
	"powerpc-linux-gnueabi",
	"powerpc-linux-musl",
	"powerpc64-linux-gnu",
	"powerpc64-linux-musl",
	"powerpc64le-linux-gnu",
	"powerpc64le-linux-musl",
	"riscv32-linux-musl",
	"riscv64-linux-gnu",
	"riscv64-linux-musl",
	"s390x-linux-gnu",
	"s390x-linux-musl",
	"thumb-linux-musleabi",
	"thumb-linux-musleabihf",
	"x86-linux-gnu",
	"x86-linux-musl",
	"x86_64-linux-gnu",
	"x86_64-linux-gnux32",
	"x86_64-linux-musl",

	// Apple
	"aarch64-macos",
	"aarch64-macos-none",
	"x86_64-macos",
	"x86_64-macos-none",

	// Windows
	"aarch64-windows-gnu",
	"aarch64-windows-msvc",
	"thumb-windows-gnu",
	"x86-windows-gnu",
	"x86-windows-msvc",
	"x86_64-windows-gnu",
	"x86_64-windows-msvc",

	// WebAssembly
	"wasm32-emscripten",
	"wasm32-freestanding",
	"wasm32-freestanding-musl",
	"wasm32-wasi",
	"wasm32-wasi-musl",

	// Bare metal
	"aarch64-freestanding",
	"arm-freestanding",
	"riscv32-freestanding",
	"riscv64-freestanding",
	"x86-freestanding",
	"x86_64-freestanding",
)

// IsKnown reports whether zig is known to accept the triple. The comparison
// ignores a trailing OS version, e.g. "aarch64-macos.13-none".
func IsKnown(triple string) bool {
	if knownTriples.Contains(triple) {
		return true
	}
	return knownTriples.Contains(stripOSVersion(triple))
}

// KnownTriples returns the sorted list of supported triples.
func KnownTriples() []string {
	return knownTriples.SortedValues(strings.Compare)
}

func stripOSVersion(triple string) string {
	parts := strings.Split(triple, "-")
	if len(parts) < 2 {
		return triple
	}
	os, _, _ := strings.Cut(parts[1], ".")
	parts[1] = os
	return strings.Join(parts, "-")
}
