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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) func(string) string {
	return func(name string) string { return vars[name] }
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, "zig", c.Zig)
	assert.Equal(t, ReleaseFast, c.Optimize)
	assert.Empty(t, c.Target)
	assert.Empty(t, c.CPU)
	assert.False(t, c.StrictHost)
}

func TestClone(t *testing.T) {
	c := NewConfig()
	c.ExtraFlags = []string{"-g"}

	clone := c.Clone()
	clone.ExtraFlags[0] = "-O2"

	assert.Equal(t, []string{"-g"}, c.ExtraFlags)
}

func TestApplyEnv(t *testing.T) {
	c := NewConfig()
	err := c.applyEnv(envOf(map[string]string{
		"ZIG":               "/opt/zig/zig",
		"ZIGCC_TARGET":      "aarch64-linux-musl",
		"ZIGCC_CPU":         "cortex_a72",
		"ZIGCC_OPTIMIZE":    "ReleaseSmall",
		"ZIGCC_STRICT_HOST": "true",
		"ZIGCC_VERBOSE":     "1",
		"ZIGCC_FLAGS":       `-DNAME="hello world" -g`,
	}))
	require.NoError(t, err)

	assert.Equal(t, Config{
		Zig:        "/opt/zig/zig",
		Target:     "aarch64-linux-musl",
		CPU:        "cortex_a72",
		Optimize:   ReleaseSmall,
		StrictHost: true,
		Verbose:    true,
		ExtraFlags: []string{"-DNAME=hello world", "-g"},
	}, c)
}

func TestApplyEnvInvalidValuesKeepDefaults(t *testing.T) {
	c := NewConfig()
	err := c.applyEnv(envOf(map[string]string{
		"ZIGCC_OPTIMIZE":    "Fastest",
		"ZIGCC_STRICT_HOST": "maybe",
	}))
	require.NoError(t, err)
	assert.Equal(t, ReleaseFast, c.Optimize)
	assert.False(t, c.StrictHost)
}

func TestApplyEnvUnterminatedQuote(t *testing.T) {
	c := NewConfig()
	err := c.applyEnv(envOf(map[string]string{"ZIGCC_FLAGS": `-DNAME="oops`}))
	assert.ErrorContains(t, err, "ZIGCC_FLAGS")
}

func TestReadStarlarkFile(t *testing.T) {
	path := writeFile(t, "config.star", `
# zigcc defaults
zig_cc(
    zig = "/usr/local/bin/zig",
    target = "riscv64-linux-musl",
    cpu = "baseline",
    optimize = "Debug",
    strict_host = True,
    flags = ["-g", "-Wall"],
)
`)
	fc, err := readFile(path)
	require.NoError(t, err)

	c := NewConfig()
	c.apply(fc)
	assert.Equal(t, Config{
		Zig:        "/usr/local/bin/zig",
		Target:     "riscv64-linux-musl",
		CPU:        "baseline",
		Optimize:   Debug,
		StrictHost: true,
		ExtraFlags: []string{"-g", "-Wall"},
	}, c)
}

func TestReadStarlarkFileErrors(t *testing.T) {
	testCases := []struct {
		content       string
		expectedError string
	}{
		{content: `other(target = "x")`, expectedError: "no zig_cc(...) call found"},
		{content: `zig_cc(target = 1)`, expectedError: `attribute "target"`},
		{content: `zig_cc(strict_host = "yes")`, expectedError: "expected True or False"},
		{content: `zig_cc(flags = ["-g", 2])`, expectedError: "expected list of strings"},
	}

	for _, tc := range testCases {
		path := writeFile(t, "config.star", tc.content)
		_, err := readFile(path)
		assert.ErrorContains(t, err, tc.expectedError, "content=%s", tc.content)
	}
}

func TestReadYAMLFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
target: x86_64-windows-msvc
verbose: true
flags: [-DWIN32]
`)
	fc, err := readFile(path)
	require.NoError(t, err)

	c := NewConfig()
	c.apply(fc)
	assert.Equal(t, "zig", c.Zig)
	assert.Equal(t, "x86_64-windows-msvc", c.Target)
	assert.True(t, c.Verbose)
	assert.Equal(t, []string{"-DWIN32"}, c.ExtraFlags)
}

func TestLoadPrefersEnvironmentOverFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "target: x86_64-linux-gnu\ncpu: haswell\n")

	c, err := Load(envOf(map[string]string{
		"ZIGCC_CONFIG": path,
		"ZIGCC_TARGET": "aarch64-macos",
	}))
	require.NoError(t, err)
	assert.Equal(t, "aarch64-macos", c.Target)
	assert.Equal(t, "haswell", c.CPU)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(envOf(map[string]string{
		"ZIGCC_CONFIG": filepath.Join(t.TempDir(), "missing.star"),
	}))
	assert.ErrorContains(t, err, "ZIGCC_CONFIG")
}
