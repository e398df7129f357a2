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

package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecuteSuccessEchoesOutput(t *testing.T) {
	requireShell(t)
	var stdout, stderr bytes.Buffer
	e := Executor{Stdout: &stdout, Stderr: &stderr}

	result := e.Execute(Request{
		Args: []string{"sh", "-c", "echo compiled; echo note >&2"},
		Mode: "cc",
	})

	assert.True(t, result.OK())
	assert.Equal(t, 0, result.Status)
	assert.Empty(t, result.Diagnostic())
	assert.Equal(t, "compiled\n", stdout.String())
	assert.Equal(t, "note\n", stderr.String())
}

func TestExecuteNonZeroExit(t *testing.T) {
	requireShell(t)
	var stdout, stderr bytes.Buffer
	e := Executor{Stdout: &stdout, Stderr: &stderr}

	result := e.Execute(Request{
		Args: []string{"sh", "-c", "echo partial; echo 'error: undefined symbol' >&2; exit 3"},
		Mode: "c++",
	})

	assert.Equal(t, 1, result.Status)
	assert.ErrorIs(t, result.Err, ErrExecution)
	assert.Contains(t, result.Diagnostic(), "zig c++")
	assert.Contains(t, result.Diagnostic(), "error: undefined symbol")
	assert.Equal(t, "partial\n", stdout.String())
	assert.Empty(t, stderr.String())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errBrokenPipe
}

var errBrokenPipe = errors.New("broken pipe")

func TestExecuteReportsFailedEcho(t *testing.T) {
	requireShell(t)
	e := Executor{Stdout: brokenWriter{}, Stderr: &bytes.Buffer{}}

	result := e.Execute(Request{
		Args: []string{"sh", "-c", "echo compiled"},
		Mode: "cc",
	})

	assert.Equal(t, 1, result.Status)
	assert.ErrorIs(t, result.Err, ErrExecution)
	assert.ErrorIs(t, result.Err, errBrokenPipe)
	assert.Contains(t, result.Diagnostic(), "echoing output")
}

func TestExecuteReportsFailedDiagnosticForwarding(t *testing.T) {
	requireShell(t)
	var stdout bytes.Buffer
	e := Executor{Stdout: &stdout, Stderr: brokenWriter{}}

	result := e.Execute(Request{
		Args: []string{"sh", "-c", "echo compiled; echo note >&2"},
		Mode: "cc",
	})

	assert.Equal(t, 1, result.Status)
	assert.ErrorIs(t, result.Err, errBrokenPipe)
	assert.Equal(t, "compiled\n", stdout.String())
}

func TestExecuteMissingExecutable(t *testing.T) {
	e := Executor{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	result := e.Execute(Request{
		Args: []string{"zigcc-definitely-not-installed", "cc", "main.c"},
		Mode: "cc",
	})

	assert.Equal(t, 1, result.Status)
	assert.ErrorIs(t, result.Err, ErrExecution)
	assert.ErrorIs(t, result.Err, exec.ErrNotFound)
}

func TestExecuteEmptyCommand(t *testing.T) {
	result := (&Executor{}).Execute(Request{Mode: "cc"})
	assert.Equal(t, 1, result.Status)
	assert.ErrorIs(t, result.Err, ErrExecution)
}

func TestStrictHostPreflight(t *testing.T) {
	testCases := []struct {
		triple     string
		restricted bool
	}{
		{triple: "", restricted: false},
		{triple: "native-native", restricted: false},
		{triple: "x86_64-linux-gnu", restricted: false},
		{triple: "x86-windows-gnu", restricted: false},
		{triple: "i386-linux-gnu", restricted: false},
		{triple: "aarch64-macos", restricted: true},
		{triple: "wasm32-freestanding", restricted: true},
		{triple: "riscv64-linux-musl", restricted: true},
	}

	for _, tc := range testCases {
		e := Executor{StrictHost: true}
		err := e.preflight(tc.triple)
		if tc.restricted {
			assert.ErrorIs(t, err, ErrRestrictedArch, "triple=%q", tc.triple)
		} else {
			assert.NoError(t, err, "triple=%q", tc.triple)
		}
	}
}

func TestStrictHostRejectsBeforeSpawning(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "spawned")
	e := Executor{StrictHost: true, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	result := e.Execute(Request{
		Args:   []string{"sh", "-c", "touch " + marker},
		Mode:   "cc",
		Triple: "aarch64-linux-gnu",
	})

	assert.Equal(t, 1, result.Status)
	assert.ErrorIs(t, result.Err, ErrRestrictedArch)
	assert.NoFileExists(t, marker)
}

func TestPermissiveHostAllowsAnyTarget(t *testing.T) {
	e := Executor{}
	assert.NoError(t, e.preflight("aarch64-macos"))
}

// writeArchive writes a minimal common-format ar archive.
func writeArchive(t *testing.T, members map[string]string, order []string) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("!<arch>\n")
	for _, name := range order {
		data := members[name]
		fmt.Fprintf(&sb, "%-16s%-12d%-6d%-6d%-8o%-10d`\n", name, 0, 0, 0, 0o644, len(data))
		sb.WriteString(data)
		if len(data)%2 == 1 {
			sb.WriteString("\n")
		}
	}
	path := filepath.Join(t.TempDir(), "libffi.a")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func TestArchiveMembers(t *testing.T) {
	path := writeArchive(t, map[string]string{
		"ffi.o": "object one",
		"lib.o": "odd",
	}, []string{"ffi.o", "lib.o"})

	members, err := ArchiveMembers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ffi.o", "lib.o"}, members)
}

func TestArchiveMembersMissingFile(t *testing.T) {
	_, err := ArchiveMembers(filepath.Join(t.TempDir(), "missing.a"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
