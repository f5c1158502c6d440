package manifest

import (
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pypeek/pkg/errors"
	"github.com/matzehuels/pypeek/pkg/listing"
)

// PyProject parses the direct dependencies declared in pyproject.toml,
// both PEP 621 ([project].dependencies) and Poetry
// ([tool.poetry.dependencies]) layouts.
type PyProject struct{}

func (p *PyProject) Type() string              { return "pyproject.toml" }
func (p *PyProject) Supports(name string) bool { return name == "pyproject.toml" }

func (p *PyProject) Parse(path string) ([]listing.Identifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc pyprojectFile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}

	var ids []listing.Identifier
	for _, dep := range doc.Project.Dependencies {
		if id, ok := parseRequirement(stripComment(dep)); ok {
			ids = append(ids, id)
		}
	}

	// Poetry tables are unordered; sort for stable output.
	names := make([]string, 0, len(doc.Tool.Poetry.Dependencies))
	for name := range doc.Tool.Poetry.Dependencies {
		if name != "python" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		id := listing.Identifier{Name: name}
		if v, ok := doc.Tool.Poetry.Dependencies[name].(string); ok && isExactPoetryVersion(v) {
			id.Version = v
		}
		ids = append(ids, id)
	}
	return dedupe(ids), nil
}

// isExactPoetryVersion reports whether a Poetry constraint names one release.
// Poetry treats a bare version as an exact pin.
func isExactPoetryVersion(v string) bool {
	return v != "" && v != "*" && pinRE.MatchString("=="+v)
}

type pyprojectFile struct {
	Project struct {
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name         string         `toml:"name"`
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}
