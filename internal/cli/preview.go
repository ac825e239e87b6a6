package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/maddens360/asayomi/internal/ai"
	"github.com/maddens360/asayomi/internal/config"
	"github.com/maddens360/asayomi/internal/digest"
	"github.com/maddens360/asayomi/internal/feeds"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Compose the digest and print it without sending",
	RunE:  previewAction,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func previewAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// Preview needs the summarizer but no LINE credentials.
	if err := cfg.RequireAI(); err != nil {
		return err
	}

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
		nil, // Compose never notifies
		cfg.Feed.URL,
		cfg.Feed.MaxItems,
		time.Duration(cfg.Digest.ItemDelaySeconds)*time.Second,
	)

	res := pipeline.Compose(cmd.Context())
	if len(res.Items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), digest.FallbackMessage)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}
