// Package inventory lists the Python packages installed in the local
// environment by running the host package manager.
//
// The process invocation sits behind [Runner] so tests can substitute
// canned output:
//
//	r := inventory.NewReader(inventory.ExecRunner{}, "pip", logger)
//	entries, err := r.List(ctx, inventory.Filters{Outdated: true})
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pypeek/pkg/errors"
)

// DefaultCommand is the package manager used when none is configured.
const DefaultCommand = "pip"

// Entry is one installed distribution.
type Entry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Runner executes an external command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements [Runner]. Standard error is folded into the returned error.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, firstLine(msg))
		}
		return nil, err
	}
	return out, nil
}

// Reader lists installed packages through a package manager command.
type Reader struct {
	runner  Runner
	command []string
	logger  *log.Logger
}

// NewReader creates a Reader. command may carry leading arguments
// (e.g. "python3 -m pip"); an empty command selects [DefaultCommand].
func NewReader(runner Runner, command string, logger *log.Logger) *Reader {
	if runner == nil {
		runner = ExecRunner{}
	}
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{DefaultCommand}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Reader{runner: runner, command: fields, logger: logger}
}

// List runs "<command> list --format json" with the flags for filters and
// returns the reported distributions in the order the tool printed them.
// Any invocation or parse failure yields [errors.ErrInventoryUnavailable].
func (r *Reader) List(ctx context.Context, filters Filters) ([]Entry, error) {
	args := append(append([]string{}, r.command[1:]...), "list", "--format", "json")
	args = append(args, filters.Args()...)

	r.logger.Debug("listing installed packages", "command", r.command[0], "args", strings.Join(args, " "))
	out, err := r.runner.Run(ctx, r.command[0], args...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInventoryUnavailable, err, "run %s", strings.Join(r.command, " "))
	}

	entries, err := parseList(out)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("installed packages", "count", len(entries))
	return entries, nil
}

func parseList(out []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(bytes.TrimSpace(out), &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInventoryUnavailable, err, "parse package list")
	}
	for i, e := range entries {
		if e.Name == "" {
			return nil, errors.New(errors.ErrCodeInventoryUnavailable, "parse package list: entry %d has no name", i)
		}
	}
	return entries, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
