package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/centroidhq/centroid/pkg/config"
	"github.com/centroidhq/centroid/pkg/dataset"
	"github.com/centroidhq/centroid/pkg/logging"
)

// datasetsCmd represents the datasets command
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Browse the available datasets",
	Long:  `Browse the embedded datasets and any loaded from the datasets directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'datasets' requires a subcommand (list, describe)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
}

// openRegistry loads the embedded datasets plus the configured
// datasets directory, the same view the server would have.
func openRegistry(cfg *config.Config) (*dataset.Registry, error) {
	registry, err := dataset.NewRegistry(logging.New(cfg.LogLevel, cfg.LogFormat))
	if err != nil {
		return nil, err
	}
	if cfg.DatasetsDir != "" {
		if err := registry.LoadDir(cfg.DatasetsDir); err != nil {
			return nil, fmt.Errorf("failed to load datasets from %s: %w", cfg.DatasetsDir, err)
		}
	}
	return registry, nil
}
