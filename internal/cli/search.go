package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pypeek/pkg/cache"
	"github.com/matzehuels/pypeek/pkg/integrations/pypi"
	"github.com/matzehuels/pypeek/pkg/listing"
)

// noResultsMessage is printed when a search has no matches.
const noResultsMessage = "Cannot be found. Try another search!"

// searchOptions holds flags for the search command.
type searchOptions struct {
	order       string
	classifiers []string
	page        int
	details     bool
	listing     listingFlags
}

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	opts := searchOptions{order: string(pypi.OrderRelevance), page: 1}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search PyPI for packages",
		Long: `Search the PyPI search page and print the matching package names.

With --details each match is looked up and shown with its latest version,
summary, author and last month's downloads.`,
		Example: `  pypeek search requests
  pypeek search "http client" --order trending --page 2
  pypeek search flask -c "Framework :: Flask" --details --sort installs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.order, "order", "o", opts.order, "result order: relevance, last_updated or trending")
	cmd.Flags().StringArrayVarP(&opts.classifiers, "classifier", "c", nil, "trove classifier filter (repeatable)")
	cmd.Flags().IntVarP(&opts.page, "page", "p", opts.page, "result page, starting at 1")
	cmd.Flags().BoolVarP(&opts.details, "details", "d", false, "look up metadata and downloads for each match")
	addListingFlags(cmd, &opts.listing)

	return cmd
}

func (c *CLI) runSearch(cmd *cobra.Command, text string, opts searchOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	order, err := pypi.ParseOrder(opts.order)
	if err != nil {
		return err
	}
	if _, err := listing.ParseSortKey(opts.listing.sort); err != nil {
		return err
	}
	query := pypi.SearchQuery{
		Text:        text,
		Order:       order,
		Classifiers: opts.classifiers,
		Page:        opts.page,
	}

	return c.withCache(ctx, func(backend cache.Cache) error {
		logger.Debug("searching", "query", text, "order", order, "page", opts.page)

		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Searching PyPI for %q...", text))
		spinner.Start()
		names, err := c.indexClient(backend).Search(ctx, query, c.refresh)
		spinner.Stop()
		if err != nil {
			return err
		}

		if len(names) == 0 {
			printWarning(noResultsMessage)
			return nil
		}
		if !opts.details {
			for _, name := range names {
				fmt.Fprintln(stdout, name)
			}
			return nil
		}

		ids := make([]listing.Identifier, len(names))
		for i, name := range names {
			ids[i] = listing.Identifier{Name: name}
		}
		return c.showRecords(ctx, backend, ids, opts.listing)
	})
}
