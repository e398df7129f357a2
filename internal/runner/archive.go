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
	"errors"
	"io"
	"os"
	"slices"

	"github.com/erikgeiser/ar"
)

// Archive members holding symbol or name tables rather than objects.
var indexMembers = []string{"", "/", "//", "__.SYMDEF", "__.SYMDEF SORTED"}

// ArchiveMembers lists the object files stored in a static library.
func ArchiveMembers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := ar.NewReader(f)
	if err != nil {
		return nil, err
	}
	var members []string
	for {
		hdr, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(io.Discard, r); err != nil {
			return nil, err
		}
		if slices.Contains(indexMembers, hdr.Name) {
			continue
		}
		members = append(members, hdr.Name)
	}
	return members, nil
}
