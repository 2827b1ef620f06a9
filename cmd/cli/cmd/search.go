package cmd

import (
	"fmt"
	"strings"

	freesound "github.com/angelospk/freesound-mcp"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	searchMaxDuration float64
	searchLicense     string
	searchJSON        bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for sounds on Freesound",
	Long: `Searches Freesound by keywords and prints the first page of results.

Examples:
  freesound-mcp search piano
  freesound-mcp search "dog bark" --max-duration 5
  freesound-mcp search rain --license "Creative Commons 0" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	RootCmd.AddCommand(searchCmd)

	searchCmd.Flags().Float64Var(&searchMaxDuration, "max-duration", 0, "Maximum duration of sounds in seconds")
	searchCmd.Flags().StringVarP(&searchLicense, "license", "l", "", "License of sounds to search for")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	params := freesound.SearchParams{
		Query:   strings.Join(args, " "),
		License: searchLicense,
	}
	if cmd.Flags().Changed("max-duration") {
		params.MaxDuration = freesound.Float64(searchMaxDuration)
	}

	client, err := newClient(logger)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"query":   params.Query,
		"license": params.License,
	}).Debug("Searching sounds...")

	sounds, err := client.Search(cmd.Context(), params)
	if err != nil {
		logger.WithError(err).Debug("Sound search failed")
		return fmt.Errorf("sound search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if searchJSON {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{"results": sounds})
	}

	if len(sounds) == 0 {
		fmt.Fprintln(out, "No sounds found matching the criteria.")
		return nil
	}

	fmt.Fprintf(out, "Found %d sounds:\n", len(sounds))
	fmt.Fprintln(out, "--------------------------------------------------")
	for _, sound := range sounds {
		fmt.Fprintf(out, "ID: %d\n", sound.ID)
		fmt.Fprintf(out, "  Name: %s\n", sound.Name)
		fmt.Fprintf(out, "  Duration: %.2fs\n", sound.Duration)
		fmt.Fprintf(out, "  License: %s\n", sound.License)
		if sound.Preview != "" {
			fmt.Fprintf(out, "  Preview: %s\n", sound.Preview)
		}
		fmt.Fprintln(out, "--------------------------------------------------")
	}
	return nil
}
