package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-arcade/internal/api"
)

var (
	flagAPIAddr     string
	flagAPISecret   string
	flagAPITokenTTL time.Duration
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API",
	Long: `Start an HTTP server that plays match-3 sessions over JSON.

POST /sessions returns a session ID and a bearer token; every
/sessions/{id} route needs that token. Points scored flow into the same
wallet the terminal game uses.

Routes:
  POST   /sessions               {mode, rows, seed}
  GET    /sessions/{id}
  POST   /sessions/{id}/swap     {a:{row,col}, b:{row,col}}
  POST   /sessions/{id}/restart
  DELETE /sessions/{id}
  GET    /wallet
  GET    /shop
  POST   /shop/{item}

Environment:
  ARCADE_API_ADDR    - Default for --addr
  ARCADE_API_SECRET  - Default for --secret (required one way or the other)

Examples:
  ARCADE_API_SECRET=change-me arcade api
  arcade api --addr 127.0.0.1:9090 --secret change-me`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address ($ARCADE_API_ADDR)")
	apiCmd.Flags().StringVar(&flagAPISecret, "secret", "", "Token signing secret ($ARCADE_API_SECRET)")
	apiCmd.Flags().DurationVar(&flagAPITokenTTL, "token-ttl", 24*time.Hour, "How long session tokens stay valid")
}

func runAPI(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("addr") {
		if v := os.Getenv("ARCADE_API_ADDR"); v != "" {
			flagAPIAddr = v
		}
	}
	if flagAPISecret == "" {
		flagAPISecret = os.Getenv("ARCADE_API_SECRET")
	}
	if flagAPISecret == "" {
		return errors.New("no token secret: set --secret or ARCADE_API_SECRET")
	}

	store, w, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	srv, err := api.New(api.Options{
		Secret:   []byte(flagAPISecret),
		Config:   gameConfig,
		Wallet:   w,
		Store:    store,
		Logger:   logger.WithPrefix("arcade-api"),
		TokenTTL: flagAPITokenTTL,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, flagAPIAddr)
}
