package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/centroidhq/centroid/pkg/server/store"
)

// runsDeleteCmd represents the runs delete command
var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fail("Invalid configuration: %v", err)
		}

		runs, err := openRunsStore(cfg)
		if err != nil {
			fail("Unable to connect to database: %v", err)
		}

		err = runs.DeleteRun(args[0])
		if errors.Is(err, store.ErrRunNotFound) {
			fail("Run not found: %q", args[0])
		}
		if err != nil {
			fail("Failed to delete run: %v", err)
		}

		fmt.Printf("Deleted run %s\n", args[0])
	},
}

func init() {
	runsCmd.AddCommand(runsDeleteCmd)
}
