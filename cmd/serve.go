package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/lexique/internal/audio"
	"github.com/robalobadob/lexique/internal/favorites"
	"github.com/robalobadob/lexique/internal/httpserver"
	"github.com/robalobadob/lexique/internal/lexicon"
	"github.com/robalobadob/lexique/internal/storage"
	"github.com/robalobadob/lexique/internal/store"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP + websocket server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()

		srv := httpserver.New(httpserver.Options{
			Lexicon:         lexicon.Default(),
			Sessions:        store.NewMemoryStore(),
			Favorites:       favorites.NewRegistry(storage.Factory(db)),
			Audio:           audio.Resolver{Dir: cfg.Audio.Dir, Ext: cfg.Audio.Ext},
			DeviceSecret:    cfg.Auth.DeviceSecret,
			DeviceTokenDays: cfg.Auth.DeviceTokenDays,
			ClientOrigin:    cfg.Server.ClientOrigin,
			RequestTimeout:  cfg.Server.RequestTimeout,
			Frame:           cfg.Game.Frame(),
			SessionTTL:      cfg.Game.SessionTTL,
			DailySalt:       cfg.Daily.Salt,
			DailyCount:      cfg.Daily.Count,
		})

		addr := cfg.Server.Addr()
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start(addr) }()
		log.Info().Str("addr", addr).Str("storage", cfg.Storage.Path).Msg("starting lexique server")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		case err := <-errCh:
			srv.Close()
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
