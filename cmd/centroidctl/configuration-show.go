package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/centroidhq/centroid/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configuration attributes and their sources",
	Long: `Show configuration attributes and their sources.

Each attribute reports whether its value came from the defaults, the
config file or a CENTROID_* environment variable. The values reflect
the current state of the sources, which may differ from what a running
server was started with.

Example:
  centroidctl configuration show
  centroidctl configuration show --format json`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("config")

		// Deliberately skips Validate: show must work on a broken
		// config so the user can see what is wrong.
		cfg, err := config.Load(path)
		if err != nil {
			fail("Failed to load configuration: %v", err)
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "json" {
			out, err := cfg.FormatJSON()
			if err != nil {
				fail("Failed to render configuration: %v", err)
			}
			fmt.Println(out)
			return
		}

		fmt.Print(cfg.FormatText())
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("format", "f", "text", "output format (text or json)")
}
