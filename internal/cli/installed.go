package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pypeek/pkg/cache"
	"github.com/matzehuels/pypeek/pkg/inventory"
	"github.com/matzehuels/pypeek/pkg/listing"
)

// filterFlags maps installed command flags to inventory filter tokens.
var filterFlags = []struct {
	flag, token, usage string
}{
	{"outdated", inventory.TokenOutdated, "only outdated packages"},
	{"uptodate", inventory.TokenUptodate, "only up-to-date packages (ignored with --outdated)"},
	{"editable", inventory.TokenEditable, "only editable installs"},
	{"exclude-editable", inventory.TokenExcludeEditable, "exclude editable installs"},
	{"include-editable", inventory.TokenIncludeEditable, "include editable installs"},
	{"local", inventory.TokenLocal, "skip globally installed packages in a virtualenv"},
	{"user", inventory.TokenUser, "only packages in the user site"},
	{"pre", inventory.TokenPre, "consider pre-releases"},
	{"not-required", inventory.TokenNotRequired, "only packages no other package requires"},
}

// installedCommand creates the installed command.
func (c *CLI) installedCommand() *cobra.Command {
	var flags listingFlags
	selected := make([]bool, len(filterFlags))

	cmd := &cobra.Command{
		Use:   "installed [filter]...",
		Short: "Show installed packages with PyPI metadata",
		Long: `List the packages reported by "pip list" and show PyPI metadata for the
installed release of each.

Filters may be given as flags or as words (outdated, uptodate, editable,
exclude-editable, include-editable, local, user, pre, not_required).
The pip command is taken from the "pip" config key.`,
		Example: `  pypeek installed --outdated --sort installs
  pypeek installed local not_required`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := append([]string{}, args...)
			for i, f := range filterFlags {
				if selected[i] {
					tokens = append(tokens, f.token)
				}
			}
			filters, err := inventory.ParseFilters(tokens)
			if err != nil {
				return err
			}
			if _, err := listing.ParseSortKey(flags.sort); err != nil {
				return err
			}

			ctx := cmd.Context()
			entries, err := c.inventoryReader().List(ctx, filters)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No installed packages match")
				return nil
			}

			ids := make([]listing.Identifier, len(entries))
			for i, e := range entries {
				ids[i] = listing.Identifier{Name: e.Name, Version: e.Version}
			}
			return c.withCache(ctx, func(backend cache.Cache) error {
				return c.showRecords(ctx, backend, ids, flags)
			})
		},
	}

	for i, f := range filterFlags {
		cmd.Flags().BoolVar(&selected[i], f.flag, false, f.usage)
	}
	addListingFlags(cmd, &flags)
	return cmd
}
