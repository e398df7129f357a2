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

import (
	"fmt"

	"github.com/EngFlow/zig_cc/internal/collections"
	"github.com/EngFlow/zig_cc/internal/flags"
	"github.com/EngFlow/zig_cc/internal/runner"
	"github.com/EngFlow/zig_cc/internal/triple"
)

const (
	libraryVerb = "build-lib"
	// build-lib has its own switch for C sanitization.
	libraryNoSanitize = "-fno-sanitize-c"
)

// LibraryCommand returns the command line:
//
//	zig build-lib [-cflags <compiler flags...> --] <files...> -femit-bin=OUT
//	    -O<mode> [-dynamic] [-target T] [-mcpu=CPU] -fno-sanitize-c
//	    <linker flags...> <-lc|-lc++>
//
// -cflags only applies to the C sources that follow it, so the compiler flags
// precede the files.
func (s *state) LibraryCommand(output string, shared bool) []string {
	linkerFlags, compilerFlags := collections.Partition(s.flags, flags.IsLinkerFlag)

	cmd := []string{s.cfg.Zig, libraryVerb}
	if len(compilerFlags) > 0 {
		cmd = append(cmd, "-cflags")
		cmd = append(cmd, compilerFlags...)
		cmd = append(cmd, "--")
	}
	cmd = append(cmd, s.files...)
	cmd = append(cmd, "-femit-bin="+output, "-O"+string(s.cfg.Optimize))
	if shared {
		cmd = append(cmd, "-dynamic")
	}
	cmd = append(cmd, s.targetArgs()...)
	cmd = append(cmd, libraryNoSanitize)
	cmd = append(cmd, linkerFlags...)
	cmd = append(cmd, s.runtimeLibrary())
	return cmd
}

func (s *state) runtimeLibrary() string {
	if s.Mode() == CXX && !triple.IsMSVC(s.target) {
		return "-lc++"
	}
	return "-lc"
}

func (s *state) BuildLibrary(output string, shared bool) Result {
	if len(s.files) == 0 {
		result := runner.Failure(fmt.Errorf("%w: cannot build library %s", ErrNoSources, output))
		s.logger.Println(result.Diagnostic())
		return result
	}

	result := s.execute(s.LibraryCommand(output, shared), libraryVerb)
	if result.OK() && !shared {
		s.inspectArchive(output)
	}
	return result
}

// inspectArchive reports static libraries that came out without any object.
func (s *state) inspectArchive(path string) {
	members, err := runner.ArchiveMembers(path)
	if err != nil {
		if s.cfg.Verbose {
			s.logger.Printf("cannot inspect %s: %v", path, err)
		}
		return
	}
	if len(members) == 0 {
		s.logger.Printf("warning: %s contains no object files", path)
		return
	}
	if s.cfg.Verbose {
		s.logger.Printf("%s: %d objects %v", path, len(members), members)
	}
}
