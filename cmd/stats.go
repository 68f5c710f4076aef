package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/echomindr/echomindr/internal/store"
)

func statsCmd() *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustLoadConfig()

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			defer st.Close()

			stats, err := st.Stats(cmd.Context())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				enc.Encode(stats)
				return
			}
			printStats(stats)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func printStats(stats store.Stats) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total moments:\t%d\n", stats.TotalMoments)
	fmt.Fprintf(w, "Podcasts:\t%d\n", stats.Podcasts)
	fmt.Fprintf(w, "Guests:\t%d\n", stats.Guests)
	fmt.Fprintf(w, "Unique tags:\t%d\n", stats.UniqueTags)
	w.Flush()

	fmt.Println("\nBy type:")
	for k, v := range stats.ByType {
		fmt.Printf("  %s: %d\n", k, v)
	}
	fmt.Println("By stage:")
	for k, v := range stats.ByStage {
		fmt.Printf("  %s: %d\n", k, v)
	}
}
