package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/centroidhq/centroid/pkg/db"
	"github.com/centroidhq/centroid/pkg/kmeans"
	"github.com/centroidhq/centroid/pkg/model"
	gormstore "github.com/centroidhq/centroid/pkg/server/store/gorm"
)

// clusterCmd represents the cluster command
var clusterCmd = &cobra.Command{
	Use:   "cluster <dataset>",
	Short: "Run k-means on a dataset from the terminal",
	Long: `Run k-means on a dataset from the terminal.

By default clustering uses the two plotted columns (--x and --y), the
same behavior as the dashboard's Apply button. Pass --features to
cluster on a different column set. Runs are not recorded unless --save
is given.

Example:
  centroidctl cluster iris --x sepal_length --y sepal_width -k 3
  centroidctl cluster iris --x sepal_length --y sepal_width -k 3 \
      --features sepal_length,sepal_width,petal_length,petal_width --save`,
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

		x, _ := cmd.Flags().GetString("x")
		y, _ := cmd.Flags().GetString("y")
		if x == "" || y == "" {
			fail("--x and --y are required")
		}

		features, _ := cmd.Flags().GetStringSlice("features")
		if len(features) == 0 {
			features = []string{x, y}
		}
		for _, name := range features {
			if _, err := ds.Values(name); err != nil {
				if suggestion := ds.SuggestColumn(name); suggestion != "" {
					fail("Invalid column %q: %v (did you mean %q?)", name, err, suggestion)
				}
				fail("Invalid column %q: %v", name, err)
			}
		}

		X, err := ds.Matrix(features)
		if err != nil {
			fail("Failed to build feature matrix: %v", err)
		}

		k, _ := cmd.Flags().GetInt("clusters")
		if err := validateClusters(k); err != nil {
			fail("%v", err)
		}
		seed, _ := cmd.Flags().GetInt64("seed")
		maxIterations, _ := cmd.Flags().GetInt("max-iterations")
		restarts, _ := cmd.Flags().GetInt("runs")

		started := time.Now()
		result, err := kmeans.Fit(X, kmeans.Config{
			K:             k,
			MaxIterations: maxIterations,
			Seed:          seed,
			Runs:          restarts,
		})
		if err != nil {
			fail("Clustering failed: %v", err)
		}
		elapsed := time.Since(started)

		var silhouette *float64
		if n, _ := X.Dims(); result.K >= 2 && result.K < n {
			if score, err := kmeans.Silhouette(X, result.Labels); err == nil {
				silhouette = &score
			}
		}

		if maxIterations <= 0 {
			maxIterations = kmeans.DefaultMaxIterations
		}

		run := &model.Run{
			Dataset:       ds.Name,
			XColumn:       x,
			YColumn:       y,
			Clusters:      result.K,
			Seed:          result.Seed,
			MaxIterations: maxIterations,
			Iterations:    result.Iterations,
			Converged:     result.Converged,
			Inertia:       result.Inertia,
			Silhouette:    silhouette,
			DurationMS:    elapsed.Milliseconds(),
		}
		_ = run.SetFeatureList(features)
		_ = run.SetCentroidRows(result.Centroids)
		_ = run.SetSizeList(kmeans.Sizes(result.Labels, result.K))

		if save, _ := cmd.Flags().GetBool("save"); save {
			database, err := db.Connect(cfg.DatabaseURL, cfg.LogLevel)
			if err != nil {
				fail("Unable to connect to database: %v", err)
			}
			if err := gormstore.NewRunsStore(database).CreateRun(run); err != nil {
				fail("Failed to save run: %v", err)
			}
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

		printRun(run, features)
		if run.ID != "" {
			fmt.Printf("\nSaved as %s\n", run.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(clusterCmd)

	clusterCmd.Flags().String("x", "", "x-axis column")
	clusterCmd.Flags().String("y", "", "y-axis column")
	clusterCmd.Flags().IntP("clusters", "k", 3, "number of clusters")
	clusterCmd.Flags().StringSlice("features", nil, "columns to cluster on (default: the x and y columns)")
	clusterCmd.Flags().Int64("seed", 0, "random seed (0 picks one)")
	clusterCmd.Flags().Int("max-iterations", 0, "iteration cap per restart (0 uses the default)")
	clusterCmd.Flags().Int("runs", 0, "number of restarts, best inertia wins (0 uses the default)")
	clusterCmd.Flags().Bool("save", false, "record the run in the database")
	clusterCmd.Flags().StringP("format", "f", "text", "output format (text or json)")
}

// validateClusters rejects a non-positive cluster count before any
// fitting work happens.
func validateClusters(k int) error {
	if k < 1 {
		return fmt.Errorf("--clusters must be at least 1, got %d", k)
	}
	return nil
}

// printRun writes the text summary of a clustering run.
func printRun(run *model.Run, features []string) {
	fmt.Printf("Dataset:     %s\n", run.Dataset)
	fmt.Printf("Features:    %s\n", strings.Join(features, ", "))
	fmt.Printf("Clusters:    %d\n", run.Clusters)
	fmt.Printf("Seed:        %d\n", run.Seed)
	fmt.Printf("Iterations:  %d (converged: %v)\n", run.Iterations, run.Converged)
	fmt.Printf("Inertia:     %.4f\n", run.Inertia)
	if run.Silhouette != nil {
		fmt.Printf("Silhouette:  %.4f\n", *run.Silhouette)
	}
	fmt.Printf("Duration:    %dms\n", run.DurationMS)

	fmt.Println()
	fmt.Printf("%-8s %8s  %s\n", "CLUSTER", "SIZE", "CENTROID")
	sizes := run.SizeList()
	for i, centroid := range run.CentroidRows() {
		coords := make([]string, len(centroid))
		for j, v := range centroid {
			coords[j] = fmt.Sprintf("%.3f", v)
		}
		size := 0
		if i < len(sizes) {
			size = sizes[i]
		}
		fmt.Printf("%-8d %8d  [%s]\n", i, size, strings.Join(coords, ", "))
	}
}
