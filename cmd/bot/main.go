package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go-gig-router/internal/browser"
	"go-gig-router/internal/categorizer"
	"go-gig-router/internal/classifier"
	"go-gig-router/internal/config"
	"go-gig-router/internal/filter"
	"go-gig-router/internal/logging"
	"go-gig-router/internal/poller"
	"go-gig-router/internal/scraper/upwork"
	"go-gig-router/internal/server"
	"go-gig-router/internal/state"
	"go-gig-router/internal/telegram"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config (default $CONFIG_PATH or configs/config.yaml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	//load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	channels := cfg.ChannelIDs()
	logger.Info("config loaded",
		zap.Int("channels", len(channels)),
		zap.Duration("check_interval", cfg.CheckInterval),
		zap.Bool("headless", cfg.Headless))

	cls := classifier.New(filter.New(cfg.Forbidden()), categorizer.New(cfg.Keywords()))
	store := state.New()

	bot, err := telegram.NewBot(cfg.TelegramToken, channels, store, telegram.Options{
		AdminChatID:  cfg.AdminChatID,
		MaxRetries:   cfg.MaxRetries,
		RetryDelay:   cfg.RetryDelay,
		SendInterval: cfg.SendInterval,
	}, logger)
	if err != nil {
		return err
	}

	//init browser
	session, err := browser.OpenSession(cfg.Headless, filepath.Join(cfg.CookiesPath, "cookies-upwork.json"), logger)
	if err != nil {
		return fmt.Errorf("init browser: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("close browser", zap.Error(err))
		}
	}()

	source, err := upwork.NewUpworkScraper(session.Fetcher, cfg.SearchURL, logger)
	if err != nil {
		return err
	}

	p := poller.New(source, cls, store, bot, poller.Options{
		CheckInterval: cfg.CheckInterval,
		DetailDelay:   cfg.DetailDelay,
		FirstRunLimit: cfg.FirstRunLimit,
	}, logger)
	srv := server.New(cfg.ServerAddr, store, cls, p, logger)

	if err := bot.SendStatus(ctx, "Bot started, watching Upwork."); err != nil {
		logger.Warn("failed to send startup status", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.Run(gctx) })
	g.Go(func() error { return bot.Listen(gctx, p) })
	g.Go(func() error { return srv.Run(gctx) })

	logger.Info("🚀 gig router running")
	err = g.Wait()
	logger.Info("🏁 gig router stopped")
	return err
}
