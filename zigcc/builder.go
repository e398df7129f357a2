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

// Package zigcc translates generic C/C++ compiler invocations into
// invocations of the zig toolchain frontend (`zig cc`, `zig c++` and
// `zig build-lib`).
//
// A Builder accumulates source files, flags, a target triple and a CPU in any
// order, then either runs an ordinary compilation (Run) or emits a library
// (BuildLibrary). Flags are rewritten for zig as they are added, triples are
// normalized when set, and the C/C++ mode is decided when the command is
// assembled.
//
// A Builder maps to exactly one invocation and is not safe for concurrent
// use.
package zigcc

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"github.com/EngFlow/zig_cc/internal/collections"
	"github.com/EngFlow/zig_cc/internal/config"
	"github.com/EngFlow/zig_cc/internal/flags"
	"github.com/EngFlow/zig_cc/internal/runner"
	"github.com/EngFlow/zig_cc/internal/triple"
	"github.com/bmatcuk/doublestar/v4"
)

type Result = runner.Result

var ErrNoSources = errors.New("no source files")

// Builder is the fluent interface over a single zig invocation. Every
// mutating method returns the same Builder.
type Builder interface {
	// File adds a source file. C++ sources switch the builder to C++ mode
	// unless the target uses the MSVC ABI.
	File(path string) Builder
	Files(paths ...string) Builder
	// Glob adds every source file matching a doublestar pattern such as
	// "src/**/*.c".
	Glob(pattern string) Builder
	// Flag adds a compiler flag, rewritten for zig.
	Flag(flag string) Builder
	Flags(flags ...string) Builder
	// SetTargetTriple normalizes and sets the target. An empty triple
	// selects the host.
	SetTargetTriple(triple string) Builder
	SetCPU(cpu string) Builder

	Mode() Mode
	Target() string
	CPU() string
	// Warnings returns every advisory warning produced so far.
	Warnings() []string

	// Build assembles the compiler command line without running it.
	Build() []string
	// LibraryCommand assembles the library command line without running it.
	LibraryCommand(output string, shared bool) []string

	// Run compiles with `zig cc` or `zig c++`.
	Run() Result
	// BuildLibrary emits a static or, when shared is set, dynamic library.
	BuildLibrary(output string, shared bool) Result
}

// Executor runs an assembled command line.
type Executor interface {
	Execute(req runner.Request) runner.Result
}

type state struct {
	cfg     config.Config
	initial Mode

	flags  []string // already rewritten by flags.Process
	files  []string
	sawCXX bool
	target string
	cpu    string

	warnings []string
	flushed  int

	executor Executor
	stdout   io.Writer
	stderr   io.Writer
	logger   *log.Logger
}

type Option func(*state)

// WithMode sets the mode the builder starts in, e.g. CXX for a `c++` driver.
func WithMode(mode Mode) Option {
	return func(s *state) { s.initial = mode }
}

// WithExecutor replaces the process executor.
func WithExecutor(executor Executor) Option {
	return func(s *state) { s.executor = executor }
}

// WithOutput redirects the child's output and the builder's diagnostics.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *state) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// New creates a builder seeded with the defaults of cfg: its target, CPU and
// extra flags are applied as if set through the builder.
func New(cfg config.Config, opts ...Option) Builder {
	s := &state{
		cfg:     cfg.Clone(),
		initial: C,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = log.New(s.stderr, "zigcc: ", 0)
	if s.executor == nil {
		s.executor = &runner.Executor{
			StrictHost: s.cfg.StrictHost,
			Stdout:     s.stdout,
			Stderr:     s.stderr,
		}
	}

	s.SetTargetTriple(s.cfg.Target)
	s.SetCPU(s.cfg.CPU)
	s.Flags(s.cfg.ExtraFlags...)
	return s
}

func (s *state) File(path string) Builder {
	s.files = append(s.files, path)
	if flags.IsCXXSource(path) {
		s.sawCXX = true
	}
	return s
}

func (s *state) Files(paths ...string) Builder {
	for _, path := range paths {
		s.File(path)
	}
	return s
}

func (s *state) Glob(pattern string) Builder {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		s.warn(fmt.Sprintf("invalid file pattern %q: %v", pattern, err))
		return s
	}
	sources := collections.FilterSlice(matches, flags.IsSourceFile)
	if len(sources) == 0 {
		s.warn(fmt.Sprintf("file pattern %q matched no source files", pattern))
		return s
	}
	slices.Sort(sources)
	return s.Files(sources...)
}

func (s *state) Flag(flag string) Builder {
	s.flags = append(s.flags, flags.Process(flag)...)
	return s
}

func (s *state) Flags(fs ...string) Builder {
	s.flags = append(s.flags, collections.FlatMapSlice(fs, flags.Process)...)
	return s
}

func (s *state) SetTargetTriple(raw string) Builder {
	if raw == "" {
		s.target = ""
		return s
	}
	normalized, warnings := triple.Normalize(raw)
	s.target = normalized
	for _, w := range warnings {
		s.warn(w)
	}
	return s
}

func (s *state) SetCPU(cpu string) Builder {
	s.cpu = cpu
	return s
}

func (s *state) Target() string { return s.target }

func (s *state) CPU() string { return s.cpu }

func (s *state) Warnings() []string {
	return slices.Clone(s.warnings)
}

func (s *state) warn(warning string) {
	s.warnings = append(s.warnings, warning)
}

// flushWarnings reports the warnings not reported by a previous invocation.
func (s *state) flushWarnings() {
	for _, w := range s.warnings[s.flushed:] {
		s.logger.Printf("warning: %s", w)
	}
	s.flushed = len(s.warnings)
}
