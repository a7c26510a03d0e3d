package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the server to be ready",
	Long: `Wait for the server to be ready by polling the status endpoint.

Polls once per second, printing a dot per attempt, until the server
responds or the retries are exhausted.

Example:
  centroidctl wait
  centroidctl wait --port 3000 --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fail("Invalid configuration: %v", err)
		}

		port := cfg.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		retries, _ := cmd.Flags().GetInt("retries")

		if err := waitForServer(port, retries); err != nil {
			fail("Server did not become ready: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)

	waitCmd.Flags().IntP("port", "p", 8050, "server port to check")
	waitCmd.Flags().IntP("retries", "r", 90, "number of retries")
}

func waitForServer(port, retries int) error {
	url := waitURL(port)
	client := &http.Client{Timeout: 2 * time.Second}

	fmt.Println("Waiting for centroid to be ready...")

	for i := 0; i < retries; i++ {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode < 300 {
				fmt.Println()
				fmt.Println("Centroid is ready!")
				return nil
			}
		}

		fmt.Print(".")
		time.Sleep(1 * time.Second)
	}

	fmt.Println()
	return fmt.Errorf("centroid is not ready after %d seconds", retries)
}
