package manifest

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pypeek/pkg/errors"
	"github.com/matzehuels/pypeek/pkg/listing"
)

// PoetryLock parses poetry.lock files. Every locked package is returned
// pinned to its locked version.
type PoetryLock struct{}

func (p *PoetryLock) Type() string              { return "poetry.lock" }
func (p *PoetryLock) Supports(name string) bool { return name == "poetry.lock" }

func (p *PoetryLock) Parse(path string) ([]listing.Identifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lock lockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}

	ids := make([]listing.Identifier, 0, len(lock.Packages))
	for _, pkg := range lock.Packages {
		if pkg.Name == "" {
			continue
		}
		ids = append(ids, listing.Identifier{Name: pkg.Name, Version: pkg.Version})
	}
	return dedupe(ids), nil
}

type lockFile struct {
	Packages []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
}
