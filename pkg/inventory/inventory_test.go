package inventory

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/matzehuels/pypeek/pkg/errors"
)

type fakeRunner struct {
	out  []byte
	err  error
	name string
	args []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return f.out, f.err
}

func TestFiltersArgs(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{"none", nil, nil},
		{"outdated beats uptodate", []string{"outdated", "uptodate"}, []string{"--outdated"}},
		{"uptodate alone", []string{"uptodate"}, []string{"--uptodate"}},
		{"editable and local", []string{"editable", "local"}, []string{"--editable", "--local"}},
		{"editable beats exclude", []string{"exclude-editable", "editable"}, []string{"--editable"}},
		{"exclude beats include", []string{"include-editable", "exclude-editable"}, []string{"--exclude-editable"}},
		{"include alone", []string{"include-editable"}, []string{"--include-editable"}},
		{
			"independent flags",
			[]string{"not_required", "pre", "user", "local"},
			[]string{"--local", "--user", "--pre", "--not-required"},
		},
		{
			"everything",
			[]string{"uptodate", "outdated", "include-editable", "local", "user", "pre", "not_required"},
			[]string{"--outdated", "--include-editable", "--local", "--user", "--pre", "--not-required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFilters(tt.tokens)
			if err != nil {
				t.Fatalf("ParseFilters(%v): %v", tt.tokens, err)
			}
			if got := f.Args(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFiltersUnknown(t *testing.T) {
	_, err := ParseFilters([]string{"local", "sideways"})
	if !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("ParseFilters error = %v, want ErrInvalidInput", err)
	}
}

func TestReaderList(t *testing.T) {
	runner := &fakeRunner{out: []byte(`[{"name": "requests", "version": "2.31.0"}, {"name": "Flask", "version": "3.0.0", "latest_version": "3.0.1"}]` + "\n")}
	r := NewReader(runner, "", nil)

	entries, err := r.List(context.Background(), Filters{Outdated: true, Local: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []Entry{{Name: "requests", Version: "2.31.0"}, {Name: "Flask", Version: "3.0.0"}}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("List() = %+v, want %+v", entries, want)
	}
	if runner.name != "pip" {
		t.Errorf("command = %q, want pip", runner.name)
	}
	wantArgs := []string{"list", "--format", "json", "--outdated", "--local"}
	if !reflect.DeepEqual(runner.args, wantArgs) {
		t.Errorf("args = %v, want %v", runner.args, wantArgs)
	}
}

func TestReaderListCustomCommand(t *testing.T) {
	runner := &fakeRunner{out: []byte(`[]`)}
	r := NewReader(runner, "python3 -m pip", nil)

	entries, err := r.List(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", entries)
	}
	if runner.name != "python3" {
		t.Errorf("command = %q, want python3", runner.name)
	}
	wantArgs := []string{"-m", "pip", "list", "--format", "json"}
	if !reflect.DeepEqual(runner.args, wantArgs) {
		t.Errorf("args = %v, want %v", runner.args, wantArgs)
	}
}

func TestReaderListUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		runner *fakeRunner
	}{
		{"invocation fails", &fakeRunner{err: stderrors.New("exec: \"pip\": executable file not found in $PATH")}},
		{"not json", &fakeRunner{out: []byte("Package Version\n------- -------\n")}},
		{"empty output", &fakeRunner{out: nil}},
		{"entry without name", &fakeRunner{out: []byte(`[{"version": "1.0"}]`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(tt.runner, "pip", nil).List(context.Background(), Filters{})
			if !stderrors.Is(err, errors.ErrInventoryUnavailable) {
				t.Errorf("List() error = %v, want ErrInventoryUnavailable", err)
			}
		})
	}
}

func TestReaderListCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{err: context.Canceled}
	_, err := NewReader(runner, "pip", nil).List(ctx, Filters{})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("List() error = %v, want context.Canceled", err)
	}
}
