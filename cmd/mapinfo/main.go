// mapinfo lists which build-indexed levels each map server preset loads,
// reading the YAML project exported from a game's asset bundles.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/mapinfo/internal/config"
	"github.com/Faultbox/mapinfo/internal/logger"
)

// app carries state shared by all subcommands.
type app struct {
	flags config.Flags
	cfg   *config.Config
	log   *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "mapinfo",
		Short: "Map server preset to level resolver",
		Long: `mapinfo resolves, for every map server preset of an exported bundle, the
scenes it pulls in through its child presets and prints their build indices.

Expected extraction layout:
  <extract>/globalgamemanagers/ExportedProject/ProjectSettings/EditorBuildSettings.asset
  <extract>/<name>.bundle*/ExportedProject/Assets/MonoBehaviour/*.asset(.meta)
  <extract>/<name>.bundle*/ExportedProject/Assets/Content/Locations/_Presets/**.asset`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(&a.flags)
			if err != nil {
				return err
			}
			a.cfg = cfg

			log, err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	a.flags.Register(root.PersistentFlags())

	root.AddCommand(
		a.newReportCmd(),
		a.newScenesCmd(),
		a.newPresetsCmd(),
		a.newResolveCmd(),
		a.newQueryCmd(),
		a.newConfigCmd(),
	)
	return root
}
