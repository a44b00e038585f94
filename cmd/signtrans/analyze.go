package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarize collected samples and recognition confidence",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze()
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze() error {
	stats, err := st.Samples().Stats()
	if err != nil {
		return fmt.Errorf("failed to load sample stats: %w", err)
	}

	confidences, err := st.Events().ConfidencesByLetter()
	if err != nil {
		return fmt.Errorf("failed to load confidence series: %w", err)
	}

	if stats.Total == 0 && len(confidences) == 0 {
		fmt.Println("No samples or recognition events recorded yet.")
		return nil
	}

	// One row per letter seen in either source
	seen := make(map[string]bool)
	for letter := range stats.ByLetter {
		seen[letter] = true
	}
	for letter := range confidences {
		seen[letter] = true
	}
	letters := make([]string, 0, len(seen))
	for letter := range seen {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "LETTER\tSAMPLES\tEVENTS\tMEAN CONF\tSTD DEV")
	fmt.Fprintln(w, "------\t-------\t------\t---------\t-------")
	for _, letter := range letters {
		series := confidences[letter]
		if len(series) == 0 {
			fmt.Fprintf(w, "%s\t%d\t0\t-\t-\n", letter, stats.ByLetter[letter])
			continue
		}

		mean := stat.Mean(series, nil)
		if len(series) < 2 {
			// Sample standard deviation needs at least two points
			fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\t-\n", letter, stats.ByLetter[letter], len(series), mean)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\t%.3f\n", letter, stats.ByLetter[letter], len(series), mean, stat.StdDev(series, nil))
	}
	w.Flush()

	if len(stats.ByFingerCount) > 0 {
		counts := make([]int, 0, len(stats.ByFingerCount))
		for n := range stats.ByFingerCount {
			counts = append(counts, n)
		}
		sort.Ints(counts)

		fmt.Println()
		fw := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(fw, "FINGERS\tSAMPLES")
		fmt.Fprintln(fw, "-------\t-------")
		for _, n := range counts {
			fmt.Fprintf(fw, "%d\t%d\n", n, stats.ByFingerCount[n])
		}
		fw.Flush()
	}

	return nil
}
