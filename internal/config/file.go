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
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/bazelbuild/buildtools/build"
	"gopkg.in/yaml.v3"
)

// Config file names searched in the XDG config directories, in order.
var configFileNames = []string{
	"zigcc/config.star",
	"zigcc/config.yaml",
	"zigcc/config.yml",
}

// findConfigFile returns the path given by ZIGCC_CONFIG or the first config
// file found in the XDG config directories. Empty when there is none.
func findConfigFile(getenv func(string) string) (string, error) {
	if explicit := getenv("ZIGCC_CONFIG"); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("ZIGCC_CONFIG: %w", err)
		}
		return explicit, nil
	}
	for _, name := range configFileNames {
		if path, err := xdg.SearchConfigFile(name); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// readFile parses a config file. Files with a .yaml or .yml extension are
// YAML documents, everything else is Starlark.
func readFile(path string) (fileConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(content)
	default:
		return parseStarlark(filepath.Base(path), content)
	}
}

func parseYAML(content []byte) (fileConfig, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(content, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("invalid YAML config: %w", err)
	}
	return fc, nil
}

var errNoConfigCall = errors.New("no zig_cc(...) call found")

// parseStarlark reads the keyword arguments of the zig_cc call:
//
//	zig_cc(
//	    target = "aarch64-linux-musl",
//	    cpu = "cortex_a72",
//	    strict_host = False,
//	    flags = ["-g"],
//	)
func parseStarlark(name string, content []byte) (fileConfig, error) {
	file, err := build.ParseBzl(name, content)
	if err != nil {
		return fileConfig{}, err
	}
	for _, stmt := range file.Stmt {
		call, ok := stmt.(*build.CallExpr)
		if !ok {
			continue
		}
		receiver, ok := call.X.(*build.Ident)
		if !ok || receiver.Name != "zig_cc" {
			continue
		}
		return parseConfigCall(name, call)
	}
	return fileConfig{}, fmt.Errorf("%s: %w", name, errNoConfigCall)
}

func parseConfigCall(name string, call *build.CallExpr) (fileConfig, error) {
	var fc fileConfig
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			log.Printf("zigcc: %s: ignoring positional argument of zig_cc", name)
			continue
		}
		param, ok := assign.LHS.(*build.Ident)
		if !ok {
			continue
		}
		var err error
		switch param.Name {
		case "zig":
			fc.Zig, err = stringValue(assign.RHS)
		case "target":
			fc.Target, err = stringValue(assign.RHS)
		case "cpu":
			fc.CPU, err = stringValue(assign.RHS)
		case "optimize":
			fc.Optimize, err = stringValue(assign.RHS)
		case "strict_host":
			fc.StrictHost, err = boolValue(assign.RHS)
		case "verbose":
			fc.Verbose, err = boolValue(assign.RHS)
		case "flags":
			fc.Flags, err = stringListValue(assign.RHS)
		default:
			log.Printf("zigcc: %s: unknown zig_cc attribute %q", name, param.Name)
		}
		if err != nil {
			return fileConfig{}, fmt.Errorf("%s: attribute %q: %w", name, param.Name, err)
		}
	}
	return fc, nil
}

func stringValue(expr build.Expr) (*string, error) {
	str, ok := expr.(*build.StringExpr)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", expr)
	}
	return &str.Value, nil
}

func boolValue(expr build.Expr) (*bool, error) {
	ident, ok := expr.(*build.Ident)
	if ok {
		switch ident.Name {
		case "True":
			value := true
			return &value, nil
		case "False":
			value := false
			return &value, nil
		}
	}
	return nil, fmt.Errorf("expected True or False, got %s", build.FormatString(expr))
}

func stringListValue(expr build.Expr) ([]string, error) {
	list, ok := expr.(*build.ListExpr)
	if !ok {
		return nil, fmt.Errorf("expected list of strings, got %T", expr)
	}
	values := make([]string, 0, len(list.List))
	for _, elem := range list.List {
		str, ok := elem.(*build.StringExpr)
		if !ok {
			return nil, fmt.Errorf("expected list of strings, got element %T", elem)
		}
		values = append(values, str.Value)
	}
	return values, nil
}

