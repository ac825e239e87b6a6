package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/maddens360/asayomi/internal/config"
	"github.com/maddens360/asayomi/internal/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent digest runs",
	RunE:  historyAction,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func historyAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := storage.OpenDatabase(filepath.Join(cfg.Digest.DataDir, "asayomi.db"))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := storage.RunMigrations(db); err != nil {
		return err
	}
	store := storage.NewStore(db)

	runs, err := store.ListRecentRuns(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		status := "failed"
		if run.Delivered {
			status = "delivered"
		}
		fmt.Fprintf(w, "#%d  %s  items=%d  extract_failures=%d  summary_failures=%d  chars=%d  truncated=%t  %s\n",
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.ItemCount,
			run.ExtractFailures,
			run.SummaryFailures,
			run.MessageChars,
			run.Truncated,
			status,
		)
	}
	return nil
}
