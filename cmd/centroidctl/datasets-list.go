package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// datasetsListCmd represents the datasets list command
var datasetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available datasets",
	Long: `List the available datasets.

Example:
  centroidctl datasets list
  centroidctl datasets list --format json`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fail("Invalid configuration: %v", err)
		}

		registry, err := openRegistry(cfg)
		if err != nil {
			fail("Failed to load datasets: %v", err)
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "json" {
			type item struct {
				Name    string `json:"name"`
				Title   string `json:"title"`
				Rows    int    `json:"rows"`
				Columns int    `json:"columns"`
				Label   string `json:"label,omitempty"`
			}
			items := []item{}
			for _, ds := range registry.List() {
				items = append(items, item{
					Name:    ds.Name,
					Title:   ds.Title,
					Rows:    ds.Rows(),
					Columns: len(ds.Columns()),
					Label:   ds.Label,
				})
			}
			out, err := json.MarshalIndent(items, "", "  ")
			if err != nil {
				fail("Failed to render datasets: %v", err)
			}
			fmt.Println(string(out))
			return
		}

		fmt.Printf("%-12s %-24s %6s %8s  %s\n", "NAME", "TITLE", "ROWS", "COLUMNS", "LABEL")
		for _, ds := range registry.List() {
			fmt.Printf("%-12s %-24s %6d %8d  %s\n",
				ds.Name, ds.Title, ds.Rows(), len(ds.Columns()), ds.Label)
		}
	},
}

func init() {
	datasetsCmd.AddCommand(datasetsListCmd)
	datasetsListCmd.Flags().StringP("format", "f", "text", "output format (text or json)")
}
