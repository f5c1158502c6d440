package manifest

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/pypeek/pkg/errors"
	"github.com/matzehuels/pypeek/pkg/listing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRequirements_Supports(t *testing.T) {
	parser := &Requirements{}

	tests := []struct {
		filename string
		want     bool
	}{
		{"requirements.txt", true},
		{"requirements-dev.txt", true},
		{"requirements_prod.txt", true},
		{"pyproject.toml", false},
		{"poetry.lock", false},
		{"Pipfile", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := parser.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestRequirements_Parse(t *testing.T) {
	path := writeFile(t, "requirements.txt", `# Test requirements
requests>=2.28.0
click==8.1.0
pydantic[email]==2.5.3
uvicorn==0.23.*
Django>=4,<5
# Comment line
httpx  # trailing comment
typing_extensions==4.8.0 ; python_version < "3.11"

-e ./local-package
--index-url https://example.com/simple
git+https://github.com/user/repo.git
Requests==2.0.0
`)

	got, err := (&Requirements{}).Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []listing.Identifier{
		{Name: "requests"},
		{Name: "click", Version: "8.1.0"},
		{Name: "pydantic", Version: "2.5.3"},
		{Name: "uvicorn"},
		{Name: "Django"},
		{Name: "httpx"},
		{Name: "typing_extensions", Version: "4.8.0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestRequirements_ParseContinuation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []listing.Identifier
	}{
		{
			name:    "hash options",
			content: "requests==2.31.0 \\\n    --hash=sha256:abc\nflask==3.0.0\n",
			want: []listing.Identifier{
				{Name: "requests", Version: "2.31.0"},
				{Name: "flask", Version: "3.0.0"},
			},
		},
		{
			name: "pip-compile output",
			content: `certifi==2023.7.22 \
    --hash=sha256:539cc1d13202e \
    --hash=sha256:92d6037539857
    # via requests
idna==3.4 \
    --hash=sha256:90b77e79eaa3e
    # via requests
requests==2.31.0 ; python_version >= "3.8" \
    --hash=sha256:58cd2187c01e7
`,
			want: []listing.Identifier{
				{Name: "certifi", Version: "2023.7.22"},
				{Name: "idna", Version: "3.4"},
				{Name: "requests", Version: "2.31.0"},
			},
		},
		{
			name:    "split specifier",
			content: "Django>=4, \\\n  <5\nclick==8.1.0 \\",
			want: []listing.Identifier{
				{Name: "Django"},
				{Name: "click", Version: "8.1.0"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "requirements.txt", tt.content)
			got, err := (&Requirements{}).Parse(path)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPoetryLock_Parse(t *testing.T) {
	path := writeFile(t, "poetry.lock", `
[[package]]
name = "certifi"
version = "2023.7.22"
description = "Python package for providing Mozilla's CA Bundle."
optional = false

[[package]]
name = "requests"
version = "2.31.0"
description = "Python HTTP for Humans."

[package.dependencies]
certifi = ">=2017.4.17"

[metadata]
lock-version = "2.0"
`)

	got, err := (&PoetryLock{}).Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []listing.Identifier{
		{Name: "certifi", Version: "2023.7.22"},
		{Name: "requests", Version: "2.31.0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %+v, want %+v", got, want)
	}
}

func TestPoetryLock_Invalid(t *testing.T) {
	path := writeFile(t, "poetry.lock", "[[package]\nname = ")
	if _, err := (&PoetryLock{}).Parse(path); !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Parse() error = %v, want ErrInvalidInput", err)
	}
}

func TestParseDetectsFormat(t *testing.T) {
	req := writeFile(t, "requirements-dev.txt", "pytest==7.4.0\n")
	got, err := Parse(req)
	if err != nil {
		t.Fatalf("Parse(requirements-dev.txt): %v", err)
	}
	if len(got) != 1 || got[0].Name != "pytest" {
		t.Errorf("Parse() = %+v", got)
	}

	other := writeFile(t, "Pipfile", "")
	if _, err := Parse(other); !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Parse(Pipfile) error = %v, want ErrInvalidInput", err)
	}
}

func TestPyProject_Parse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []listing.Identifier
	}{
		{
			name: "pep621",
			content: `[project]
name = "demo"
dependencies = [
    "requests>=2.31",
    "click==8.1.7",
    "rich[jupyter]",
]
`,
			want: []listing.Identifier{
				{Name: "requests"},
				{Name: "click", Version: "8.1.7"},
				{Name: "rich"},
			},
		},
		{
			name: "poetry",
			content: `[tool.poetry]
name = "demo"

[tool.poetry.dependencies]
python = "^3.11"
requests = "^2.31"
attrs = "23.1.0"
httpx = { version = "0.25.0", optional = true }
`,
			want: []listing.Identifier{
				{Name: "attrs", Version: "23.1.0"},
				{Name: "httpx"},
				{Name: "requests"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "pyproject.toml", tt.content)
			got, err := (&PyProject{}).Parse(path)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
