//go:build integration

package pypi

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/pypeek/pkg/cache"
)

func TestSearch_Integration(t *testing.T) {
	client := NewClient(cache.NewNullCache(), time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	names, err := client.Search(ctx, SearchQuery{Text: "requests"}, true)
	if err != nil {
		t.Fatalf("Search(requests) error: %v", err)
	}
	if !slices.Contains(names, "requests") {
		t.Errorf("Search(requests) = %q, want it to contain requests", names)
	}
}

func TestFetchPackage_Integration(t *testing.T) {
	client := NewClient(cache.NewNullCache(), time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tests := []struct {
		name    string
		pkg     string
		version string
		wantErr bool
	}{
		{"requests", "requests", "", false},
		{"pinned", "flask", "2.0.0", false},
		{"nonexistent", "this-package-should-not-exist-12345", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := client.FetchPackage(ctx, tt.pkg, tt.version, true)
			if (err != nil) != tt.wantErr {
				t.Errorf("FetchPackage(%q) error = %v, wantErr %v", tt.pkg, err, tt.wantErr)
				return
			}
			if !tt.wantErr && (pkg.Name == "" || pkg.Version == "") {
				t.Errorf("incomplete package info: %+v", pkg)
			}
		})
	}
}
