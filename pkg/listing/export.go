package listing

import (
	"encoding/json"
	"fmt"
	"io"
)

type jsonRecord struct {
	Name             string `json:"name"`
	Version          string `json:"version"`
	Summary          string `json:"summary"`
	Author           string `json:"author"`
	Downloads        int    `json:"downloads"`
	License          string `json:"license,omitempty"`
	HomePage         string `json:"home_page,omitempty"`
	Status           string `json:"status"`
	RequestedVersion string `json:"requested_version,omitempty"`
	ResolvedVersion  string `json:"resolved_version,omitempty"`
}

// WriteJSON sorts records by key and writes them to w as an indented JSON
// array. Unlike [Presenter.Display], the version field always holds the
// resolved release; the fallback note is carried by status instead.
func WriteJSON(w io.Writer, records []Record, key SortKey) error {
	sorted := Sort(records, key)
	out := make([]jsonRecord, len(sorted))
	for i, r := range sorted {
		version := r.ResolvedVersion
		if version == "" {
			version = r.Version
		}
		out[i] = jsonRecord{
			Name:             r.Name,
			Version:          version,
			Summary:          r.Summary,
			Author:           r.Author,
			Downloads:        r.Downloads,
			License:          r.License,
			HomePage:         r.HomePage,
			Status:           r.Status.String(),
			RequestedVersion: r.RequestedVersion,
			ResolvedVersion:  r.ResolvedVersion,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
