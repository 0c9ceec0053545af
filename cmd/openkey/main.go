// Package main is the entry point for the openkey CLI: the search API
// server plus catalog maintenance commands.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"openkey/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Set at build time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	cfg    *config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "openkey",
	Short: "Rank Dubai off-plan projects against natural-language queries",
	Long: `openkey scores a catalog of off-plan projects against a free-text buyer
query and explains each score.

Run "openkey serve" for the HTTP API or "openkey rank" for a one-off ranking
in the terminal. The enrich, embed and seed commands maintain the catalog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger = config.NewLogger(cfg.Logging)
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
