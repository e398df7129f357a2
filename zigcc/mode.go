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

package zigcc

import "github.com/EngFlow/zig_cc/internal/triple"

// Mode is the C or C++ personality of the zig frontend.
type Mode int

const (
	C Mode = iota
	CXX
)

// Verb returns the zig subcommand selecting the mode.
func (m Mode) Verb() string {
	if m == CXX {
		return "c++"
	}
	return "cc"
}

func (m Mode) String() string {
	if m == CXX {
		return "C++"
	}
	return "C"
}

// Mode is computed from everything added so far, not tracked per call, so
// the order of File and SetTargetTriple calls does not matter. MSVC targets
// have no separate C++ driver and always compile in C mode.
func (s *state) Mode() Mode {
	switch {
	case triple.IsMSVC(s.target):
		return C
	case s.initial == CXX || s.sawCXX:
		return CXX
	default:
		return C
	}
}
