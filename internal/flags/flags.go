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

// Package flags classifies and rewrites generic C/C++ compiler arguments for
// the zig toolchain frontend. All functions are pure and shared by the
// command builder and the command line entry point.
package flags

import (
	"strings"

	"github.com/EngFlow/zig_cc/internal/collections"
)

const (
	StartGroup    = "-Wl,--start-group"
	EndGroup      = "-Wl,--end-group"
	ExportDynamic = "-Wl,--export-dynamic"
)

// Flags zig rejects or that only make sense for other toolchains.
var skipped = collections.SetOf(
	// Forced symbol export controls; zig's linker decides visibility itself.
	"-Wl,--exclude-libs,ALL",
	"-Wl,--export-all-symbols",
	"-Wl,--no-export-all-symbols",
	// MSVC banner suppression.
	"/nologo",
	"-nologo",
)

// Process rewrites a single flag into zero, one or two replacement tokens.
func Process(flag string) []string {
	switch {
	case skipped.Contains(flag):
		return nil
	case strings.HasSuffix(flag, "-group"):
		// zig cannot resolve circular static library dependencies on its own.
		return []string{StartGroup, EndGroup}
	case strings.HasSuffix(flag, "-dynamic"):
		return []string{ExportDynamic}
	default:
		return []string{flag}
	}
}

// IsLinkerFlag reports whether a processed flag is directed at the linker.
func IsLinkerFlag(flag string) bool {
	switch flag {
	case StartGroup, EndGroup, ExportDynamic:
		return true
	}
	return strings.HasPrefix(flag, "-Wl,")
}
