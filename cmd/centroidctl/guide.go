package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/centroidhq/centroid/pkg/guide"
)

// guideCmd represents the guide command
var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Read the workshop guide in the terminal",
	Long: `Read the workshop guide in the terminal.

The same chapters are served at /guide when the server is running.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'guide' requires a subcommand (list, show)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// guideListCmd represents the guide list command
var guideListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the guide chapters",
	Run: func(cmd *cobra.Command, args []string) {
		g, err := guide.Load()
		if err != nil {
			fail("Failed to load guide: %v", err)
		}

		fmt.Printf("%3s  %-28s %s\n", "NO", "SLUG", "TITLE")
		for _, chapter := range g.Chapters() {
			fmt.Printf("%3d  %-28s %s\n", chapter.Number, chapter.Slug, chapter.Title)
		}
	},
}

// guideShowCmd represents the guide show command
var guideShowCmd = &cobra.Command{
	Use:   "show <chapter>",
	Short: "Print a chapter's markdown",
	Long: `Print a chapter's markdown to stdout.

Chapters can be referenced by slug or number.

Example:
  centroidctl guide show k-means
  centroidctl guide show 4`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		g, err := guide.Load()
		if err != nil {
			fail("Failed to load guide: %v", err)
		}

		chapter, err := g.Find(args[0])
		if err != nil {
			if suggestion := g.Suggest(args[0]); suggestion != "" {
				fail("Chapter not found: %q (did you mean %q?)", args[0], suggestion)
			}
			fail("Chapter not found: %q", args[0])
		}

		fmt.Print(chapter.Markdown())
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
	guideCmd.AddCommand(guideListCmd)
	guideCmd.AddCommand(guideShowCmd)
}
