package listing

import (
	"strings"

	"github.com/matzehuels/pypeek/pkg/errors"
)

// Identifier names a package, optionally pinned to a version.
type Identifier struct {
	Name    string
	Version string // empty for the latest release
}

// ParseIdentifier accepts "name" or "name==version".
func ParseIdentifier(s string) (Identifier, error) {
	name, version, pinned := strings.Cut(strings.TrimSpace(s), "==")
	id := Identifier{Name: strings.TrimSpace(name), Version: strings.TrimSpace(version)}
	if err := errors.ValidatePackageName(id.Name); err != nil {
		return Identifier{}, err
	}
	if pinned {
		if err := errors.ValidateVersion(id.Version); err != nil {
			return Identifier{}, err
		}
	}
	return id, nil
}

// String returns "name" or "name==version".
func (id Identifier) String() string {
	if id.Version == "" {
		return id.Name
	}
	return id.Name + "==" + id.Version
}

// RecordStatus tells how a record's metadata was resolved.
type RecordStatus int

const (
	// StatusExact means the requested release (or the latest, if none was
	// requested) was found.
	StatusExact RecordStatus = iota

	// StatusLatestFallback means the requested release was not available and
	// the record describes the latest release instead.
	StatusLatestFallback
)

func (s RecordStatus) String() string {
	switch s {
	case StatusExact:
		return "exact"
	case StatusLatestFallback:
		return "latest-fallback"
	default:
		return "unknown"
	}
}

// Record is the uniform shape handed to the presenter.
type Record struct {
	Name      string
	Version   string // display version; carries a note for StatusLatestFallback
	Summary   string
	Author    string
	Downloads int // last month; 0 when untracked or unavailable
	License   string
	HomePage  string

	Status           RecordStatus
	RequestedVersion string // pinned version from the identifier, if any
	ResolvedVersion  string // release the metadata came from
}

// fallbackVersion is the display version of a record whose pinned release
// could not be found.
func fallbackVersion(requested, latest string) string {
	return requested + " - This version isn't available on PyPI, showing info for latest version " + latest
}
