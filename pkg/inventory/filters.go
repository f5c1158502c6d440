package inventory

import (
	"strings"

	"github.com/matzehuels/pypeek/pkg/errors"
)

// Filter tokens accepted by [ParseFilters].
const (
	TokenOutdated        = "outdated"
	TokenUptodate        = "uptodate"
	TokenEditable        = "editable"
	TokenExcludeEditable = "exclude-editable"
	TokenIncludeEditable = "include-editable"
	TokenLocal           = "local"
	TokenUser            = "user"
	TokenPre             = "pre"
	TokenNotRequired     = "not_required"
)

// Filters narrows the installed-package listing.
//
// Outdated and Uptodate are mutually exclusive, as are the three editable
// options; [Filters.Args] resolves conflicts in declaration order.
type Filters struct {
	Outdated        bool
	Uptodate        bool
	Editable        bool
	ExcludeEditable bool
	IncludeEditable bool
	Local           bool
	User            bool
	Pre             bool
	NotRequired     bool
}

// ParseFilters builds Filters from tokens such as "outdated" or "local".
// Unknown tokens are rejected.
func ParseFilters(tokens []string) (Filters, error) {
	var f Filters
	for _, tok := range tokens {
		switch strings.TrimSpace(tok) {
		case TokenOutdated:
			f.Outdated = true
		case TokenUptodate:
			f.Uptodate = true
		case TokenEditable:
			f.Editable = true
		case TokenExcludeEditable:
			f.ExcludeEditable = true
		case TokenIncludeEditable:
			f.IncludeEditable = true
		case TokenLocal:
			f.Local = true
		case TokenUser:
			f.User = true
		case TokenPre:
			f.Pre = true
		case TokenNotRequired:
			f.NotRequired = true
		default:
			return Filters{}, errors.New(errors.ErrCodeInvalidInput, "unknown filter %q", tok)
		}
	}
	return f, nil
}

// Args returns the pip list flags for f.
func (f Filters) Args() []string {
	var args []string

	switch {
	case f.Outdated:
		args = append(args, "--outdated")
	case f.Uptodate:
		args = append(args, "--uptodate")
	}

	switch {
	case f.Editable:
		args = append(args, "--editable")
	case f.ExcludeEditable:
		args = append(args, "--exclude-editable")
	case f.IncludeEditable:
		args = append(args, "--include-editable")
	}

	if f.Local {
		args = append(args, "--local")
	}
	if f.User {
		args = append(args, "--user")
	}
	if f.Pre {
		args = append(args, "--pre")
	}
	if f.NotRequired {
		args = append(args, "--not-required")
	}
	return args
}
