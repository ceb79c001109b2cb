// Command libribot runs the book resale bot: a Telegram conversation flow
// that publishes listings to a public channel.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tele "gopkg.in/telebot.v4"
	"log/slog"

	"github.com/bnlibri/libribot/core/bootstrap"
	coreconfig "github.com/bnlibri/libribot/core/config"
	"github.com/bnlibri/libribot/core/logger"
	coretelegram "github.com/bnlibri/libribot/core/telegram"
	"github.com/bnlibri/libribot/core/telegram/router"
	"github.com/bnlibri/libribot/core/telegram/state"
	"github.com/bnlibri/libribot/internal/bot"
	"github.com/bnlibri/libribot/internal/flow"
	"github.com/bnlibri/libribot/internal/publisher"
	"github.com/bnlibri/libribot/internal/service"
	"github.com/bnlibri/libribot/internal/storage"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		log.Fatalf("libribot: %v", err)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}
	log.Printf("loading config: %s", cfgPath)
	cfg, err := coreconfig.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	res, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return err
	}
	defer func() {
		if err := res.DB.Close(); err != nil {
			logger.DB.Warn("close failed", slog.String("err", err.Error()))
		}
	}()
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	store := storage.New(res.DB)
	pub := publisher.NewDeferred()
	users := service.NewUsers(store)
	listings := service.NewListings(store, pub)
	channelURL := "https://t.me/" + strings.TrimPrefix(cfg.Channel.ID, "@")
	machine := flow.New(state.NewMemoryManager(), users, listings, channelURL)
	adapter := bot.New(machine)

	reg := coretelegram.NewRegistry()
	adapter.Wire(reg)

	routes := router.CommandRoutes(reg)
	routes = append(routes, router.TextRoutes(adapter, reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(reg))

	startedAt := time.Now()
	runOpts := coretelegram.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(cfg, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, b *tele.Bot) error {
			channelPub, err := publisher.NewTelegram(b, cfg.Channel.ID)
			if err != nil {
				return err
			}
			pub.Bind(channelPub)
			logger.L.With("component", "app").Info("app ready",
				slog.String("event", "ready"),
				slog.String("channel", cfg.Channel.ID),
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
		OnStop: func(ctx context.Context, b *tele.Bot) error {
			logger.L.With("component", "app").Info("shutting down...",
				slog.String("event", "shutdown"),
			)
			return nil
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return coretelegram.Run(ctx, runOpts)
}
