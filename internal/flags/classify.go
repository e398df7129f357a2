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

package flags

import (
	"path/filepath"
	"slices"
	"strings"
)

var cxxExtensions = []string{".cpp", ".cxx", ".cc", ".c++"}
var sourceExtensions = append([]string{".c", ".o", ".obj", ".s"}, cxxExtensions...)

func hasMatchingExtension(filename string, extensions []string) bool {
	ext := filepath.Ext(filename)
	for _, validExt := range extensions {
		if strings.EqualFold(ext, validExt) { // Case-insensitive comparison
			return true
		}
	}
	return false
}

// IsSourceFile reports whether the argument names an input file rather than a
// flag. Object files and assembly count as sources.
func IsSourceFile(arg string) bool {
	if strings.HasPrefix(arg, "-") {
		return false
	}
	return hasMatchingExtension(arg, sourceExtensions)
}

// IsCXXSource reports whether compiling the file requires C++ mode. An upper
// case ".C" is C++ by convention.
func IsCXXSource(path string) bool {
	return filepath.Ext(path) == ".C" || hasMatchingExtension(path, cxxExtensions)
}

// TargetValue recognizes target triple arguments. For "--target=T" it returns
// T with consumed set to 1; for "--target T" and "-target T" it returns the
// following argument with consumed set to 2. ok is false for every other
// argument, and for a trailing "--target" with no value.
func TargetValue(args []string, i int) (value string, consumed int, ok bool) {
	arg := args[i]
	if value, found := strings.CutPrefix(arg, "--target="); found {
		return value, 1, true
	}
	if arg == "--target" || arg == "-target" {
		if i+1 < len(args) {
			return args[i+1], 2, true
		}
	}
	return "", 0, false
}

// CPUValue recognizes "-mcpu=<cpu>".
func CPUValue(arg string) (string, bool) {
	return strings.CutPrefix(arg, "-mcpu=")
}

// Options whose value is passed as the following argument. The value must
// stay attached to the option even if it looks like a source file, as in
// "-o main.o".
var separateValueOptions = []string{
	"-o", "-I", "-L", "-include", "-isystem", "-iquote", "-idirafter",
	"-MF", "-MT", "-MQ", "-x", "-Xlinker", "-framework",
}

// TakesValue reports whether the flag consumes the next argument.
func TakesValue(flag string) bool {
	return slices.Contains(separateValueOptions, flag)
}
