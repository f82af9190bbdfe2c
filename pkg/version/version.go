// Copyright (c) 2025, SeismicData.  All rights reserved.
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

package version

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion  = errors.New("version string is empty")
	ErrInvalidFormat = errors.New("version is not in major.minor.patch form")
)

// Version identifies a revision of the container format definition, e.g. "0.0.2".
// Format versions are strict three-component semantic versions without a "v"
// prefix, prerelease tag, or build metadata: the file_format_version attribute
// declared by a container must match a registered definition exactly.
type Version struct {
	sv  *semver.Version
	raw string
}

// ParseVersion parses a format version string into a Version.
// Returns an error if the string is empty or not a strict major.minor.patch triple.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, ErrEmptyVersion
	}
	sv, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if sv.Prerelease() != "" || sv.Metadata() != "" {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return Version{sv: sv, raw: sv.String()}, nil
}

// MustParseVersion parses a version string and panics if parsing fails.
// This function is useful for initializing package-level constants or test data
// where the version string is known to be valid at compile time.
//
// Only use this for hardcoded strings or in tests. For user input or runtime data,
// always use ParseVersion and handle errors explicitly.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseVersion: %v", err))
	}
	return v
}

// String returns the canonical major.minor.patch representation.
// The zero Version renders as an empty string.
func (v Version) String() string {
	return v.raw
}

// IsValid reports whether the Version was produced by a successful parse.
func (v Version) IsValid() bool {
	return v.sv != nil
}

// Compare returns an integer comparing two versions:
// -1 if v < other, 0 if v == other, 1 if v > other.
// Invalid (zero) versions sort before all valid ones.
func (v Version) Compare(other Version) int {
	switch {
	case !v.IsValid() && !other.IsValid():
		return 0
	case !v.IsValid():
		return -1
	case !other.IsValid():
		return 1
	}
	return v.sv.Compare(other.sv)
}

// Equals returns true if v and other denote the same format revision.
func (v Version) Equals(other Version) bool {
	return v.Compare(other) == 0
}

// IsNewer returns true if v is strictly newer than other.
func (v Version) IsNewer(other Version) bool {
	return v.Compare(other) > 0
}

// EqualsOrNewer returns true if v is equal to or newer than other.
func (v Version) EqualsOrNewer(other Version) bool {
	return v.Compare(other) >= 0
}

// Sort orders versions in place, oldest first.
func Sort(versions []Version) {
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) < 0
	})
}

// Latest returns the newest of the given versions.
// Returns the zero Version when the slice is empty.
func Latest(versions []Version) Version {
	var latest Version
	for _, v := range versions {
		if v.IsNewer(latest) {
			latest = v
		}
	}
	return latest
}
