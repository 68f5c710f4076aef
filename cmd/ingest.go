package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/echomindr/echomindr/internal/ingest"
)

func ingestCmd() *cobra.Command {
	var samplePath string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Rebuild the catalog database from episode exports",
		Long: "Walks the episodes directory, merges each episode's moments with its " +
			"metadata and rebuilds the catalog database from scratch.",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustLoadConfig()

			var (
				res *ingest.Result
				err error
			)
			if samplePath != "" {
				res, err = ingest.BuildSample(cmd.Context(), samplePath, cfg.DBPath)
			} else {
				res, err = ingest.Build(cmd.Context(), cfg.EpisodesDir, cfg.DBPath)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			printSummary(cfg.DBPath, res)
		},
	}
	cmd.Flags().StringVar(&samplePath, "sample", "", "ingest a flat JSON sample file instead of the episodes directory")
	return cmd
}

func printSummary(dbPath string, res *ingest.Result) {
	fmt.Printf("Database: %s\n", dbPath)
	fmt.Printf("Total moments: %d\n", res.Total)
	if res.SkippedFiles > 0 {
		fmt.Printf("Skipped files: %d\n", res.SkippedFiles)
	}
	fmt.Printf("By type: %s\n", countLine(res.ByType))
	fmt.Printf("By stage: %s\n", countLine(res.ByStage))
	fmt.Printf("By podcast: %s\n", countLine(res.ByPodcast))
	fmt.Printf("Unique tags: %d\n", res.UniqueTags)
	fmt.Printf("Unique guests: %d\n", res.UniqueGuests)

	if info, err := os.Stat(dbPath); err == nil {
		fmt.Printf("DB size: %.1f KB\n", float64(info.Size())/1024)
	}
}

func countLine(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, ", ")
}
