package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/centroidhq/centroid/pkg/server/store"
)

// runsShowCmd represents the runs show command
var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded run",
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

		run, err := runs.FindRun(args[0])
		if errors.Is(err, store.ErrRunNotFound) {
			fail("Run not found: %q", args[0])
		}
		if err != nil {
			fail("Failed to fetch run: %v", err)
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "json" {
			out, err := json.MarshalIndent(run, "", "  ")
			if err != nil {
				fail("Failed to render run: %v", err)
			}
			fmt.Println(string(out))
			return
		}

		fmt.Printf("ID:          %s\n", run.ID)
		fmt.Printf("Created:     %s\n", run.CreatedAt.Format(time.RFC3339))
		printRun(run, run.FeatureList())
	},
}

func init() {
	runsCmd.AddCommand(runsShowCmd)
	runsShowCmd.Flags().StringP("format", "f", "text", "output format (text or json)")
}
