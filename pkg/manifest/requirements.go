package manifest

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/matzehuels/pypeek/pkg/listing"
)

var (
	depNameRE = regexp.MustCompile(`^([a-zA-Z0-9][-a-zA-Z0-9._]*)`)
	pinRE     = regexp.MustCompile(`^\s*(?:\[[^\]]*\])?\s*==\s*([A-Za-z0-9][A-Za-z0-9.+!_-]*)\s*$`)
)

// Requirements parses pip requirements files.
type Requirements struct{}

func (r *Requirements) Type() string { return "requirements.txt" }

func (r *Requirements) Supports(name string) bool {
	return name == "requirements.txt" ||
		(strings.HasPrefix(name, "requirements") && strings.HasSuffix(name, ".txt"))
}

// Parse reads path line by line. Lines ending in a backslash continue on
// the next line, as in pip-compile output with --hash options. Comments,
// pip options (-r, -e, --index-url) and URL or VCS requirements are
// skipped. Environment markers and per-requirement options are ignored.
func (r *Requirements) Parse(path string) ([]listing.Identifier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var result []listing.Identifier
	add := func(line string) {
		if line == "" || line[0] == '-' {
			return
		}
		if strings.Contains(line, "://") || strings.HasPrefix(line, "git+") {
			return
		}
		if id, ok := parseRequirement(line); ok {
			result = append(result, id)
		}
	}

	var pending strings.Builder
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		part := stripComment(scanner.Text())
		if cont, ok := strings.CutSuffix(part, `\`); ok {
			pending.WriteString(cont)
			pending.WriteByte(' ')
			continue
		}
		pending.WriteString(part)
		add(strings.TrimSpace(pending.String()))
		pending.Reset()
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	add(strings.TrimSpace(pending.String()))
	return dedupe(result), nil
}

func parseRequirement(line string) (listing.Identifier, bool) {
	spec, _, _ := strings.Cut(line, ";")
	if i := strings.Index(spec, " --"); i >= 0 {
		spec = spec[:i]
	}
	m := depNameRE.FindStringSubmatch(spec)
	if len(m) < 2 {
		return listing.Identifier{}, false
	}
	id := listing.Identifier{Name: m[1]}
	if pin := pinRE.FindStringSubmatch(spec[len(m[1]):]); len(pin) > 1 {
		id.Version = pin[1]
	}
	return id, true
}

func stripComment(line string) string {
	if i := strings.Index(line, " #"); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		return ""
	}
	return line
}
