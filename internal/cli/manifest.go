package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pypeek/pkg/cache"
	"github.com/matzehuels/pypeek/pkg/listing"
	"github.com/matzehuels/pypeek/pkg/manifest"
)

// manifestCommand creates the manifest command.
func (c *CLI) manifestCommand() *cobra.Command {
	var flags listingFlags

	cmd := &cobra.Command{
		Use:   "manifest <file>",
		Short: "Show PyPI metadata for the packages in a dependency file",
		Long: `Read requirements*.txt, poetry.lock or pyproject.toml and show PyPI
metadata for each listed package. Exact pins are looked up at the pinned
release; other requirements show the latest release.`,
		Example: `  pypeek manifest requirements.txt
  pypeek manifest poetry.lock --sort name`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := listing.ParseSortKey(flags.sort); err != nil {
				return err
			}
			ids, err := manifest.Parse(args[0])
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("manifest parsed", "file", args[0], "packages", len(ids))
			if len(ids) == 0 {
				printInfo("No packages found in %s", args[0])
				return nil
			}

			ctx := cmd.Context()
			return c.withCache(ctx, func(backend cache.Cache) error {
				return c.showRecords(ctx, backend, ids, flags)
			})
		},
	}

	addListingFlags(cmd, &flags)
	return cmd
}
