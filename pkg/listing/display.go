package listing

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pypeek/pkg/errors"
)

// SortKey selects the ordering applied by [Sort].
type SortKey string

// Supported sort keys.
const (
	SortNone     SortKey = ""         // keep input order
	SortInstalls SortKey = "installs" // ascending downloads
	SortName     SortKey = "name"     // ascending name, case-insensitive
)

// ParseSortKey validates a user-supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case SortNone, SortInstalls, SortName:
		return k, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown sort key %q (want installs or name)", s)
	}
}

// Sort returns a stably sorted copy of records. The input is not modified.
func Sort(records []Record, key SortKey) []Record {
	out := slices.Clone(records)
	switch key {
	case SortInstalls:
		slices.SortStableFunc(out, func(a, b Record) int {
			return cmp.Compare(a.Downloads, b.Downloads)
		})
	case SortName:
		slices.SortStableFunc(out, func(a, b Record) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}
	return out
}

// Separator ends every record block.
var Separator = strings.Repeat("=", 40)

// Styles controls how record fields are rendered.
type Styles struct {
	Name      lipgloss.Style
	Version   lipgloss.Style
	Summary   lipgloss.Style
	Author    lipgloss.Style
	Downloads lipgloss.Style
	Separator lipgloss.Style
	Fallback  lipgloss.Style // version line of StatusLatestFallback records
}

// PlainStyles renders every field unchanged.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Name: s, Version: s, Summary: s, Author: s, Downloads: s, Separator: s, Fallback: s}
}

// Presenter writes records as human-readable blocks.
type Presenter struct {
	w      io.Writer
	styles Styles
}

// NewPresenter creates a Presenter writing to w.
func NewPresenter(w io.Writer, styles Styles) *Presenter {
	return &Presenter{w: w, styles: styles}
}

// Display sorts records by key and writes one block per record: name,
// version, summary, author and downloads on separate lines, followed by
// [Separator].
func (p *Presenter) Display(records []Record, key SortKey) error {
	for _, r := range Sort(records, key) {
		version := p.styles.Version.Render(r.Version)
		if r.Status == StatusLatestFallback {
			version = p.styles.Fallback.Render(r.Version)
		}
		_, err := fmt.Fprintf(p.w, "%s\n%s\n%s\n%s\n%s\n%s\n",
			p.styles.Name.Render(r.Name),
			version,
			p.styles.Summary.Render(r.Summary),
			p.styles.Author.Render(r.Author),
			p.styles.Downloads.Render(strconv.Itoa(r.Downloads)),
			p.styles.Separator.Render(Separator),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
