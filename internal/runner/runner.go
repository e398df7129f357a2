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

// Package runner executes assembled zig command lines and maps the outcome of
// the child process to an exit status.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/EngFlow/zig_cc/internal/collections"
	"github.com/EngFlow/zig_cc/internal/triple"
)

var (
	ErrRestrictedArch = errors.New("target architecture not supported by the host frontend")
	ErrExecution      = errors.New("zig invocation failed")
)

// Result is the outcome of an invocation. Status is the process exit status
// to report, Err describes the failure when Status is non-zero.
type Result struct {
	Status int
	Err    error
}

func Success() Result { return Result{} }

func Failure(err error) Result { return Result{Status: 1, Err: err} }

func (r Result) OK() bool { return r.Status == 0 }

// Diagnostic returns the message to report for a failed result.
func (r Result) Diagnostic() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

type Request struct {
	// Args is the full command line, starting with the executable.
	Args []string
	// Mode names the frontend personality, e.g. "cc" or "build-lib".
	Mode string
	// Triple is the normalized target, empty for the host.
	Triple string
}

// Architectures the strict host frontend can assemble for.
var strictHostArchs = collections.SetOf("x86_64", "x86", "i386", "i686")

type Executor struct {
	// StrictHost rejects targets outside strictHostArchs before spawning.
	StrictHost bool
	// Stdout receives the captured standard output of the child.
	Stdout io.Writer
	// Stderr receives the child's standard error when it succeeds. On
	// failure the output is part of the returned diagnostic instead.
	Stderr io.Writer
}

func (e *Executor) Execute(req Request) Result {
	if len(req.Args) == 0 {
		return Failure(fmt.Errorf("%w: empty command line", ErrExecution))
	}
	if err := e.preflight(req.Triple); err != nil {
		return Failure(err)
	}

	var bufStdout bytes.Buffer
	var bufStderr bytes.Buffer
	cmd := exec.Command(req.Args[0], req.Args[1:]...)
	cmd.Stdout = &bufStdout
	cmd.Stderr = &bufStderr
	err := cmd.Run()
	_, echoErr := io.Copy(writer(e.Stdout, os.Stdout), &bufStdout)
	if err != nil {
		if echoErr != nil {
			err = errors.Join(err, fmt.Errorf("echoing output: %w", echoErr))
		}
		return Failure(fmt.Errorf("%w: zig %s: %w\n%s", ErrExecution, req.Mode, err, strings.TrimSpace(bufStderr.String())))
	}
	if echoErr != nil {
		return Failure(fmt.Errorf("%w: zig %s: echoing output: %w", ErrExecution, req.Mode, echoErr))
	}
	if _, err := io.Copy(writer(e.Stderr, os.Stderr), &bufStderr); err != nil {
		return Failure(fmt.Errorf("%w: zig %s: forwarding diagnostics: %w", ErrExecution, req.Mode, err))
	}
	return Success()
}

func (e *Executor) preflight(target string) error {
	if !e.StrictHost || target == "" || target == triple.Native {
		return nil
	}
	if arch := triple.Arch(target); !strictHostArchs.Contains(arch) {
		return fmt.Errorf("%w: %s (target %s), supported: %v", ErrRestrictedArch, arch, target, strictHostArchs.SortedValues(strings.Compare))
	}
	return nil
}

func writer(w io.Writer, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
