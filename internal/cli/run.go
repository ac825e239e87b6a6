package cli

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/maddens360/asayomi/internal/ai"
	"github.com/maddens360/asayomi/internal/config"
	"github.com/maddens360/asayomi/internal/digest"
	"github.com/maddens360/asayomi/internal/feeds"
	"github.com/maddens360/asayomi/internal/line"
	"github.com/maddens360/asayomi/internal/models"
	"github.com/maddens360/asayomi/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, summarize, and push this morning's digest",
	RunE:  runAction,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// Missing credentials are a fatal startup condition, not something the
	// pipeline degrades around.
	if err := cfg.RequireDelivery(); err != nil {
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

	provider, err := ai.NewProvider(ai.ProviderConfig{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
	})
	if err != nil {
		return err
	}

	pipeline := digest.New(
		feeds.NewFetcher(),
		feeds.NewExtractor(),
		provider,
		line.NewClient(cfg.Line.ChannelToken, cfg.Line.UserID),
		cfg.Feed.URL,
		cfg.Feed.MaxItems,
		time.Duration(cfg.Digest.ItemDelaySeconds)*time.Second,
	)

	started := time.Now()
	res := pipeline.Run(cmd.Context())
	finished := time.Now()

	if _, err := store.InsertRun(cmd.Context(), &models.RunRecord{
		ItemCount:       len(res.Items),
		ExtractFailures: res.ExtractFailures,
		SummaryFailures: res.SummaryFailures,
		MessageChars:    len([]rune(res.Message)),
		Truncated:       res.Truncated,
		Delivered:       res.Delivered,
		StartedAt:       started,
		FinishedAt:      finished,
	}); err != nil {
		slog.Warn("failed to record run", "error", err)
	}

	slog.Info("run finished",
		"items", len(res.Items),
		"extract_failures", res.ExtractFailures,
		"summary_failures", res.SummaryFailures,
		"truncated", res.Truncated,
		"delivered", res.Delivered,
	)
	return nil
}
