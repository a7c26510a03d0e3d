package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/centroidhq/centroid/pkg/config"
	"github.com/centroidhq/centroid/pkg/db"
	"github.com/centroidhq/centroid/pkg/server/store"
	gormstore "github.com/centroidhq/centroid/pkg/server/store/gorm"
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recorded clustering runs",
	Long:  `Inspect the clustering runs recorded in the database.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'runs' requires a subcommand (list, show, delete)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}

// openRunsStore connects to the configured database.
func openRunsStore(cfg *config.Config) (store.RunsStore, error) {
	database, err := db.Connect(cfg.DatabaseURL, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return gormstore.NewRunsStore(database), nil
}
