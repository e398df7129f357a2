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
	"github.com/EngFlow/zig_cc/internal/runner"
	"github.com/kballard/go-shellquote"
)

const (
	// Cross-compiled sanitizer runtimes are frequently unavailable.
	hardeningFlag = "-fno-sanitize=undefined"
	// Commands of at most this length (executable, verb and one argument)
	// are left untouched so that e.g. `zig cc --help` still works.
	minHardeningLength = 3
)

// Build returns the command line:
//
//	zig <cc|c++> <flags...> <files...> [-target T] [-mcpu=CPU] [hardening]
func (s *state) Build() []string {
	cmd := []string{s.cfg.Zig, s.Mode().Verb()}
	cmd = append(cmd, s.flags...)
	cmd = append(cmd, s.files...)
	cmd = append(cmd, s.targetArgs()...)
	if len(cmd) > minHardeningLength {
		cmd = append(cmd, hardeningFlag)
	}
	return cmd
}

func (s *state) targetArgs() []string {
	var args []string
	if s.target != "" {
		args = append(args, "-target", s.target)
	}
	if s.cpu != "" {
		args = append(args, "-mcpu="+s.cpu)
	}
	return args
}

func (s *state) Run() Result {
	return s.execute(s.Build(), s.Mode().Verb())
}

func (s *state) execute(cmd []string, mode string) Result {
	s.flushWarnings()
	if s.cfg.Verbose {
		s.logger.Println(shellquote.Join(cmd...))
	}
	result := s.executor.Execute(runner.Request{
		Args:   cmd,
		Mode:   mode,
		Triple: s.target,
	})
	if !result.OK() {
		s.logger.Println(result.Diagnostic())
	}
	return result
}
