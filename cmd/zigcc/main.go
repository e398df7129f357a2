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

// Command zigcc is a drop-in C/C++ compiler driver that forwards to the zig
// toolchain. Invoked as `zigcc++` it starts in C++ mode.
//
// Besides the usual compiler arguments it understands:
//
//	--zigcc-lib=PATH   emit a library at PATH instead of compiling
//	--zigcc-shared     make the library a dynamic one
//	--zigcc-targets    print the targets known to be supported by zig
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/EngFlow/zig_cc/internal/config"
	"github.com/EngFlow/zig_cc/internal/flags"
	"github.com/EngFlow/zig_cc/internal/triple"
	"github.com/EngFlow/zig_cc/zigcc"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

func main() {
	status := 0
	cmd := newRootCommand(filepath.Base(os.Args[0]), &status)
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zigcc:", err)
		os.Exit(1)
	}
	os.Exit(status)
}

func newRootCommand(name string, status *int) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [compiler arguments] [source files]",
		Short: "Compile C and C++ sources with the zig toolchain",
		// Every argument belongs to the compiler, including --help.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv := parseArgs(args)
			if inv.listTargets {
				for _, t := range triple.KnownTriples() {
					fmt.Fprintln(cmd.OutOrStdout(), t)
				}
				return nil
			}

			cfg, err := config.Load(os.Getenv)
			if err != nil {
				return err
			}
			var opts []zigcc.Option
			if strings.HasSuffix(name, "++") {
				opts = append(opts, zigcc.WithMode(zigcc.CXX))
			}
			*status = inv.apply(zigcc.New(cfg, opts...)).Status
			return nil
		},
	}
}

type invocation struct {
	flags   []string
	sources []string
	target  string
	cpu     string

	library     string
	shared      bool
	listTargets bool
}

// parseArgs routes every argument to the file, flag, target or CPU path.
func parseArgs(args []string) invocation {
	var inv invocation
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if value, consumed, ok := flags.TargetValue(args, i); ok {
			inv.target = value
			i += consumed - 1
			continue
		}
		if cpu, ok := flags.CPUValue(arg); ok {
			inv.cpu = cpu
			continue
		}
		switch {
		case strings.HasPrefix(arg, "--zigcc-lib="):
			inv.library = strings.TrimPrefix(arg, "--zigcc-lib=")
		case arg == "--zigcc-shared":
			inv.shared = true
		case arg == "--zigcc-targets":
			inv.listTargets = true
		case flags.TakesValue(arg) && i+1 < len(args):
			inv.flags = append(inv.flags, arg, args[i+1])
			i++
		case flags.IsSourceFile(arg), isPattern(arg):
			inv.sources = append(inv.sources, arg)
		default:
			inv.flags = append(inv.flags, arg)
		}
	}
	return inv
}

// isPattern reports whether the argument is a file pattern the shell did not
// expand, e.g. a quoted "src/**/*.c".
func isPattern(arg string) bool {
	return !strings.HasPrefix(arg, "-") && strings.ContainsAny(arg, "*?[{")
}

func matchesSources(pattern string) bool {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	return err == nil && slices.ContainsFunc(matches, flags.IsSourceFile)
}

func (inv invocation) apply(b zigcc.Builder) zigcc.Result {
	b.Flags(inv.flags...)
	for _, source := range inv.sources {
		switch {
		case isPattern(source) && matchesSources(source):
			b.Glob(source)
		case flags.IsSourceFile(source):
			b.File(source)
		default:
			// Unmatched patterns reach zig verbatim, like an unexpanded shell glob.
			b.Flag(source)
		}
	}
	if inv.target != "" {
		b.SetTargetTriple(inv.target)
	}
	if inv.cpu != "" {
		b.SetCPU(inv.cpu)
	}
	if inv.library != "" {
		return b.BuildLibrary(inv.library, inv.shared)
	}
	return b.Run()
}
