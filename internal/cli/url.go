package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spacesedan/commentlens/config"
	"github.com/spacesedan/commentlens/internal/adapters"
	"github.com/spacesedan/commentlens/internal/clients"
	"github.com/spacesedan/commentlens/internal/models"
	"github.com/spacesedan/commentlens/internal/scrapers"
)

func newURLCommand(flags *rootFlags) *cobra.Command {
	var platformFlag string

	cmd := &cobra.Command{
		Use:   "url <post-url>",
		Short: "Scrape a social post's comments and analyze them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := effectiveConfig(flags)
			rawURL := args[0]

			platform, err := resolvePlatform(rawURL, platformFlag)
			if err != nil {
				return err
			}

			scraper, err := buildScraper(cfg, platform)
			if err != nil {
				return err
			}

			adapter := &adapters.ScrapeAdapter{URL: rawURL, Scraper: scraper}
			return runAnalysis(cmd.Context(), cfg, adapter, flags.exportPath)
		},
	}

	cmd.Flags().StringVarP(&platformFlag, "platform", "p", "",
		"post platform: instagram or tiktok (default: detect from the URL)")
	return cmd
}

func resolvePlatform(rawURL, flag string) (models.Platform, error) {
	if flag != "" {
		p := models.Platform(flag)
		if p != models.PlatformInstagram && p != models.PlatformTikTok {
			return "", fmt.Errorf("unsupported platform %q", flag)
		}
		return p, nil
	}

	p, ok := adapters.DetectPlatform(rawURL)
	if !ok {
		return "", &models.ValidationError{Reason: "url format mismatch"}
	}
	return p, nil
}

func buildScraper(cfg config.Config, platform models.Platform) (scrapers.Scraper, error) {
	var scraper scrapers.Scraper
	switch platform {
	case models.PlatformInstagram:
		scraper = scrapers.NewInstagramScraper(cfg)
	case models.PlatformTikTok:
		scraper = scrapers.NewTikTokScraper(cfg)
	default:
		return nil, fmt.Errorf("no scraper for platform %q", platform)
	}

	if cfg.ValkeyAddress == "" {
		return scraper, nil
	}

	cache, err := clients.InitValkey(clients.ValkeyOptions{
		Address:  cfg.ValkeyAddress,
		Password: cfg.ValkeyPassword,
		UseTLS:   cfg.ValkeyTLS,
	})
	if err != nil {
		slog.Warn("[Scraper] Valkey cache unavailable, scraping without it",
			slog.String("error", err.Error()))
		return scraper, nil
	}

	return &scrapers.CachedScraper{Inner: scraper, Cache: cache}, nil
}
