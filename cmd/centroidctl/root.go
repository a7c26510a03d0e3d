package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/centroidhq/centroid/pkg/config"
	"github.com/centroidhq/centroid/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:     "centroidctl",
	Short:   "Interactive k-means clustering workshop tool",
	Version: version.Version,
	Long: `centroidctl serves an interactive k-means clustering dashboard and
manages its datasets, clustering runs and database from the terminal.

Start the dashboard with:

  centroidctl server

then open http://127.0.0.1:8050/ in a browser.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	// A .env file in the working directory is a convenience for
	// workshop machines; absence is not an error.
	_ = godotenv.Load()

	Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to a centroid.yml config file")
}

// loadConfig builds the configuration for a command, honoring the
// persistent --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fail prints an error to stderr and exits non-zero. User errors in
// command bodies all funnel through here.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
