package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesheet/internal/config"
	"github.com/KirkDiggler/pokesheet/internal/logging"
)

// app carries what the long running commands share
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

// load reads configuration and builds the logger
func (a *app) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) sync(cmd *cobra.Command, args []string) {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "pokesheet",
		Short: "Pokémon Tabletop United character sheets",
		Long: `pokesheet keeps trainer and Pokémon sheets for PTU campaigns.

It serves a JSON API for sheets, campaigns and rulesets, and ships tools
for ruleset authors to check formulas before a campaign uses them.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		a.newServeCmd(),
		a.newMigrateCmd(),
		newEvalCmd(),
		newRulesetCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
