package schema

import (
	"fmt"
	"io/fs"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/seismicdata/asdf-validate/pkg/errors"
	"github.com/seismicdata/asdf-validate/pkg/version"
)

// schemaFilePattern is the naming convention for schema documents.
const schemaFilePattern = "asdf-<version>.yaml"

var schemaFileRE = regexp.MustCompile(`^asdf-(.+)\.yaml$`)

func schemaFileName(formatVersion string) string {
	return "asdf-" + formatVersion + ".yaml"
}

// Compiled schemas, cached per provider generation.
var (
	registryMu         sync.Mutex
	compiledSchemas    map[string]*Schema
	compiledGeneration int
)

// Get returns the compiled schema for a format version. Documents are
// parsed and compiled once per provider generation and cached; the cache
// is safe for concurrent use.
func Get(formatVersion string) (*Schema, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	gen := GetDataProviderGeneration()
	if compiledSchemas == nil || compiledGeneration != gen {
		compiledSchemas = make(map[string]*Schema)
		compiledGeneration = gen
	}
	if s, ok := compiledSchemas[formatVersion]; ok {
		return s, nil
	}

	name := schemaFileName(formatVersion)
	data, err := GetDataProvider().ReadFile(name)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeUnsupportedVersion,
			fmt.Sprintf("format version %s not known to validator, known versions: %s",
				formatVersion, strings.Join(Versions(), ", ")))
	}

	s, err := Compile(data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal,
			fmt.Sprintf("compiling schema document %s", name), err)
	}
	if s.Version != formatVersion {
		return nil, apperrors.New(apperrors.ErrCodeInternal,
			fmt.Sprintf("schema document %s declares version %s", name, s.Version))
	}

	compiledSchemas[formatVersion] = s
	slog.Debug("compiled structural schema",
		"version", formatVersion,
		"source", GetDataProvider().Source(name))
	return s, nil
}

// Has reports whether a format version has a registered schema document.
func Has(formatVersion string) bool {
	for _, v := range Versions() {
		if v == formatVersion {
			return true
		}
	}
	return false
}

// Versions lists the registered format versions, oldest first. Versions
// that parse as semantic versions sort semantically; the rest follow
// lexicographically.
func Versions() []string {
	var out []string
	err := GetDataProvider().WalkDir("", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d == nil || d.IsDir() {
			return nil
		}
		if m := schemaFileRE.FindStringSubmatch(path); m != nil {
			out = append(out, m[1])
		}
		return nil
	})
	if err != nil {
		slog.Warn("failed to enumerate schema documents", "error", err)
		return nil
	}

	sort.Slice(out, func(i, j int) bool {
		vi, errI := version.ParseVersion(out[i])
		vj, errJ := version.ParseVersion(out[j])
		if errI != nil || errJ != nil {
			return out[i] < out[j]
		}
		return vi.Compare(vj) < 0
	})
	return out
}
