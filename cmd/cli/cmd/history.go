package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/angelospk/freesound-mcp/pkg/core/history"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show sounds downloaded with the download command",
	Long: `Lists downloads made with "freesound-mcp download", newest first. The history
is stored next to the config file in history.json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		manager, err := openHistory(logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if historyClear {
			if err := manager.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(out, "Download history cleared.")
			return nil
		}

		entries := manager.List(historyLimit)
		if len(entries) == 0 {
			fmt.Fprintln(out, "No downloads recorded.")
			return nil
		}
		for _, e := range entries {
			variant := string(e.Kind)
			if e.Quality != "" {
				variant += " " + e.Quality
			}
			format := e.Format
			if format == "" {
				format = "-"
			}
			fmt.Fprintf(out, "%s  %-8d %-12s %-5s %s\n", e.DownloadedAt.Local().Format("2006-01-02 15:04"), e.SoundID, variant, format, e.FilePath)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Remove all entries")
}

// openHistory opens the download history stored beside the config file.
func openHistory(logger *logrus.Logger) (*history.Manager, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return history.NewManager(filepath.Dir(path), logger)
}
