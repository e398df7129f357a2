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

// Package config resolves the settings shared by every zig invocation: the
// frontend executable, default target triple and CPU, the optimization mode
// used for library builds and host restrictions.
//
// Settings are layered, later sources overriding earlier ones:
//   - built-in defaults (NewConfig)
//   - a config file, either Starlark (zig_cc(...) call) or YAML
//   - ZIG* environment variables
//
// The resolved Config is passed explicitly to each builder. There is no
// process-wide mutable default.
package config

import (
	"fmt"
	"log"
	"slices"
	"strconv"

	"github.com/kballard/go-shellquote"
)

type Config struct {
	// Zig is the path or name of the zig executable.
	Zig string
	// Target is the default target triple, empty for the host.
	Target string
	// CPU is the default -mcpu value, empty for the zig default.
	CPU string
	// Optimize is the zig optimization mode used by library builds.
	Optimize OptimizeMode
	// StrictHost enables the restricted host frontend, which cannot
	// cross-assemble for architectures other than x86.
	StrictHost bool
	// Verbose echoes every assembled command before running it.
	Verbose bool
	// ExtraFlags are appended to the flags of every builder.
	ExtraFlags []string
}

type OptimizeMode string

const (
	Debug        OptimizeMode = "Debug"
	ReleaseSafe  OptimizeMode = "ReleaseSafe"
	ReleaseFast  OptimizeMode = "ReleaseFast"
	ReleaseSmall OptimizeMode = "ReleaseSmall"
)

var optimizeModes = []OptimizeMode{Debug, ReleaseSafe, ReleaseFast, ReleaseSmall}

func NewConfig() Config {
	return Config{
		Zig:      "zig",
		Optimize: ReleaseFast,
	}
}

func (c Config) Clone() Config {
	copy := c
	copy.ExtraFlags = slices.Clone(c.ExtraFlags)
	return copy
}

// Load resolves the configuration from the config file and the environment
// read through getenv.
func Load(getenv func(string) string) (Config, error) {
	c := NewConfig()

	path, err := findConfigFile(getenv)
	if err != nil {
		return c, err
	}
	if path != "" {
		fc, err := readFile(path)
		if err != nil {
			return c, err
		}
		c.apply(fc)
	}

	if err := c.applyEnv(getenv); err != nil {
		return c, err
	}
	return c, nil
}

// fileConfig holds the settings found in a config file, nil when absent.
type fileConfig struct {
	Zig        *string  `yaml:"zig"`
	Target     *string  `yaml:"target"`
	CPU        *string  `yaml:"cpu"`
	Optimize   *string  `yaml:"optimize"`
	StrictHost *bool    `yaml:"strict_host"`
	Verbose    *bool    `yaml:"verbose"`
	Flags      []string `yaml:"flags"`
}

func (c *Config) apply(fc fileConfig) {
	if fc.Zig != nil {
		c.Zig = *fc.Zig
	}
	if fc.Target != nil {
		c.Target = *fc.Target
	}
	if fc.CPU != nil {
		c.CPU = *fc.CPU
	}
	if fc.Optimize != nil {
		c.setOptimize(*fc.Optimize, "optimize")
	}
	if fc.StrictHost != nil {
		c.StrictHost = *fc.StrictHost
	}
	if fc.Verbose != nil {
		c.Verbose = *fc.Verbose
	}
	c.ExtraFlags = append(c.ExtraFlags, fc.Flags...)
}

func (c *Config) setOptimize(value, source string) {
	mode := OptimizeMode(value)
	if !slices.Contains(optimizeModes, mode) {
		log.Printf("zigcc: %v is invalid value for %v, expected one of %v", value, source, optimizeModes)
		return
	}
	c.Optimize = mode
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("ZIG"); v != "" {
		c.Zig = v
	}
	if v := getenv("ZIGCC_TARGET"); v != "" {
		c.Target = v
	}
	if v := getenv("ZIGCC_CPU"); v != "" {
		c.CPU = v
	}
	if v := getenv("ZIGCC_OPTIMIZE"); v != "" {
		c.setOptimize(v, "ZIGCC_OPTIMIZE")
	}
	for name, dst := range map[string]*bool{
		"ZIGCC_STRICT_HOST": &c.StrictHost,
		"ZIGCC_VERBOSE":     &c.Verbose,
	} {
		v := getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("zigcc: %v is invalid value for %v, expected a boolean", v, name)
			continue
		}
		*dst = b
	}
	if v := getenv("ZIGCC_FLAGS"); v != "" {
		extra, err := shellquote.Split(v)
		if err != nil {
			return fmt.Errorf("parsing ZIGCC_FLAGS: %w", err)
		}
		c.ExtraFlags = append(c.ExtraFlags, extra...)
	}
	return nil
}
