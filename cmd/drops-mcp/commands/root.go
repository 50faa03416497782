package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"drops-mcp/internal/config"
	"drops-mcp/internal/dataset"
	"drops-mcp/internal/logging"
	"drops-mcp/internal/mcp"
	"drops-mcp/internal/stats"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	source    dataset.Source
	itemTable *stats.ItemTable
)

var rootCmd = &cobra.Command{
	Use:   "drops-mcp",
	Short: "drops-mcp serves crowd-sourced quest drop statistics over MCP",
	Long: `An MCP server and CLI that aggregates player-submitted quest drop reports into
per-item drop rates with Wilson confidence intervals, event item expectations,
outlier flags and per-reporter rollups.

Run without a subcommand to serve MCP over stdio.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		itemTable, err = dataset.LoadItemTable(cfg.ItemTablePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.ItemTablePath).Msg("Failed to load item table")
		}
		source = dataset.NewSource(cfg.Dataset)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("dataPath", cfg.DataPath).
			Str("dataURL", cfg.Dataset.BaseURL).
			Int("knownItems", itemTable.Len()).
			Msg("drops-mcp starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := mcp.NewServer(cfg, source, itemTable)
		return server.Start(ctx, Version)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(questCmd, expectedCmd, reportersCmd, schemaCmd)
}
