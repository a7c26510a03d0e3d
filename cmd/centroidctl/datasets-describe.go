package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// datasetsDescribeCmd represents the datasets describe command
var datasetsDescribeCmd = &cobra.Command{
	Use:   "describe <name>",
	Short: "Show a dataset's columns and numeric summaries",
	Long: `Show a dataset's columns and numeric summary statistics.

Example:
  centroidctl datasets describe iris`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fail("Invalid configuration: %v", err)
		}

		registry, err := openRegistry(cfg)
		if err != nil {
			fail("Failed to load datasets: %v", err)
		}

		ds, err := registry.Get(args[0])
		if err != nil {
			if suggestion := registry.Suggest(args[0]); suggestion != "" {
				fail("Dataset not found: %q (did you mean %q?)", args[0], suggestion)
			}
			fail("Dataset not found: %q", args[0])
		}

		fmt.Printf("Name:        %s\n", ds.Name)
		fmt.Printf("Title:       %s\n", ds.Title)
		if ds.Description != "" {
			fmt.Printf("Description: %s\n", ds.Description)
		}
		if ds.Source != "" {
			fmt.Printf("Source:      %s\n", ds.Source)
		}
		fmt.Printf("Rows:        %d\n", ds.Rows())
		if ds.Label != "" {
			fmt.Printf("Label:       %s\n", ds.Label)
		}

		fmt.Println()
		fmt.Printf("%-16s %-24s %s\n", "COLUMN", "TITLE", "KIND")
		for _, col := range ds.Columns() {
			fmt.Printf("%-16s %-24s %s\n", col.Name, col.Title, col.Kind)
		}

		summaries := ds.Summaries()
		if len(summaries) == 0 {
			return
		}

		fmt.Println()
		fmt.Printf("%-16s %8s %10s %10s %10s %10s\n", "COLUMN", "COUNT", "MEAN", "STDDEV", "MIN", "MAX")
		for _, s := range summaries {
			fmt.Printf("%-16s %8d %10.3f %10.3f %10.3f %10.3f\n",
				s.Column, s.Count, s.Mean, s.StdDev, s.Min, s.Max)
		}
	},
}

func init() {
	datasetsCmd.AddCommand(datasetsDescribeCmd)
}
