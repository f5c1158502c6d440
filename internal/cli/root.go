package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pypeek/pkg/buildinfo"
	"github.com/matzehuels/pypeek/pkg/config"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Global flags:
//   - --verbose (-v): debug logging
//   - --config: configuration file (default $XDG_CONFIG_HOME/pypeek/config.toml)
//   - --no-cache: do not read or write the response cache
//   - --refresh: ignore cached responses but store fresh ones
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "pypeek searches PyPI and inspects Python packages",
		Long: `pypeek queries the Python Package Index for search results, package metadata
and download statistics, and cross-references them with locally installed
packages or dependency manifests.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				registerLogHooks(c.Logger)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			c.Logger.Debug("configuration loaded", "path", c.configPath, "cache", cfg.Cache.Backend, "workers", cfg.Workers)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "configuration file (default $XDG_CONFIG_HOME/pypeek/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the HTTP response cache")
	flags.BoolVar(&c.refresh, "refresh", false, "bypass cached responses")

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.installedCommand())
	root.AddCommand(c.manifestCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// listingFlags are shared by the commands that print package records.
type listingFlags struct {
	sort string
	json bool
}

// addListingFlags registers --sort and --json on cmd.
func addListingFlags(cmd *cobra.Command, f *listingFlags) {
	cmd.Flags().StringVarP(&f.sort, "sort", "s", "", "sort results by installs or name")
	cmd.Flags().BoolVar(&f.json, "json", false, "write records as JSON")
}
