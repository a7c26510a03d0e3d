package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/centroidhq/centroid/pkg/server/store"
)

// runsListCmd represents the runs list command
var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Long: `List recorded clustering runs, newest first.

Example:
  centroidctl runs list
  centroidctl runs list --dataset iris --limit 5`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fail("Invalid configuration: %v", err)
		}

		runs, err := openRunsStore(cfg)
		if err != nil {
			fail("Unable to connect to database: %v", err)
		}

		datasetName, _ := cmd.Flags().GetString("dataset")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		list, total, err := runs.ListRuns(store.RunFilter{
			Dataset: datasetName,
			Limit:   limit,
			Offset:  offset,
		})
		if err != nil {
			fail("Failed to list runs: %v", err)
		}

		if total == 0 {
			fmt.Println("No runs recorded yet")
			return
		}

		fmt.Printf("%-36s %-12s %2s %10s %8s  %s\n", "ID", "DATASET", "K", "INERTIA", "SIL", "CREATED")
		for _, run := range list {
			sil := "-"
			if run.Silhouette != nil {
				sil = fmt.Sprintf("%.3f", *run.Silhouette)
			}
			fmt.Printf("%-36s %-12s %2d %10.3f %8s  %s\n",
				run.ID, run.Dataset, run.Clusters, run.Inertia, sil,
				run.CreatedAt.Format(time.RFC3339))
		}
		fmt.Printf("\n%d of %d run(s)\n", len(list), total)
	},
}

func init() {
	runsCmd.AddCommand(runsListCmd)

	runsListCmd.Flags().String("dataset", "", "only runs for this dataset")
	runsListCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	runsListCmd.Flags().Int("offset", 0, "number of runs to skip")
}
