package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pypeek/pkg/cache"
	"github.com/matzehuels/pypeek/pkg/listing"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var flags listingFlags

	cmd := &cobra.Command{
		Use:   "info <name[==version]>...",
		Short: "Show metadata and downloads for packages",
		Long: `Look up each package on PyPI and show its version, summary, author and
last month's downloads.

A pinned release that PyPI does not know is replaced by the latest release,
with the version line saying so.`,
		Example: `  pypeek info requests flask
  pypeek info django==4.2.0 --sort installs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]listing.Identifier, 0, len(args))
			for _, arg := range args {
				id, err := listing.ParseIdentifier(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
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
