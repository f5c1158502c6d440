// Package manifest reads package identifiers from Python dependency files.
//
// Supported formats:
//
//   - requirements.txt (and requirements-*.txt, requirements_*.txt):
//     exact "==" pins become pinned identifiers, anything else a bare name
//   - poetry.lock: every locked package with its version
//   - pyproject.toml: direct dependencies (PEP 621 or Poetry tables)
package manifest

import (
	"path/filepath"

	"github.com/matzehuels/pypeek/pkg/errors"
	"github.com/matzehuels/pypeek/pkg/integrations"
	"github.com/matzehuels/pypeek/pkg/listing"
)

// Parser extracts identifiers from one manifest format.
type Parser interface {
	Type() string
	Supports(filename string) bool
	Parse(path string) ([]listing.Identifier, error)
}

// Parsers lists every supported format.
var Parsers = []Parser{
	&Requirements{},
	&PoetryLock{},
	&PyProject{},
}

// Parse detects the manifest format from the file name and parses it.
func Parse(path string) ([]listing.Identifier, error) {
	base := filepath.Base(path)
	for _, p := range Parsers {
		if p.Supports(base) {
			return p.Parse(path)
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported manifest %q (want requirements*.txt, poetry.lock or pyproject.toml)", base)
}

// dedupe drops later identifiers whose normalized name was already seen.
func dedupe(ids []listing.Identifier) []listing.Identifier {
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		key := integrations.NormalizePkgName(id.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, id)
	}
	return out
}

// ParseRequirements reads a pip requirements file.
func ParseRequirements(path string) ([]listing.Identifier, error) {
	return (&Requirements{}).Parse(path)
}

// ParsePoetryLock reads a poetry.lock file.
func ParsePoetryLock(path string) ([]listing.Identifier, error) {
	return (&PoetryLock{}).Parse(path)
}
