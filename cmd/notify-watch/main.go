// Command notify-watch polls the notification feed and logs each new alert.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/apiclient"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file for local development (ignore errors if missing)
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	baseURL := flag.String("url", envOr("API_URL", "http://localhost:8080"), "API base URL")
	token := flag.String("token", os.Getenv("API_TOKEN"), "bearer token, if the API requires auth")
	interval := flag.Duration("interval", apiclient.DefaultPollInterval, "poll interval")
	markRead := flag.Bool("mark-read", false, "mark each notification read after logging it")
	flag.Parse()

	opts := []apiclient.Option{apiclient.WithLogger(log.Logger)}
	if *token != "" {
		opts = append(opts, apiclient.WithToken(*token))
	}
	client := apiclient.New(*baseURL, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poller := apiclient.NewNotificationPoller(client, *interval, func(batch []apiclient.Notification) {
		for _, n := range batch {
			log.Info().
				Int64("notification_id", n.ID).
				Str("notification_type", n.NotificationType).
				Str("created_at", n.CreatedAt).
				Msgf("%s: %s", n.Title, n.Message)

			if !*markRead {
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if _, err := client.MarkNotificationRead(writeCtx, n.ID); err != nil {
				log.Error().Err(err).Int64("notification_id", n.ID).Msg("Failed to mark notification as read")
			}
			cancel()
		}
	})

	log.Info().Str("url", *baseURL).Msg("Watching notifications")
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Poller failed")
	}
	log.Info().Msg("notify-watch exited")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
