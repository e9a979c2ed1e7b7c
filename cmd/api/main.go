package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/amberbeaumont/IThelpdesklite/internal/app"
	"github.com/amberbeaumont/IThelpdesklite/internal/config"
	"github.com/amberbeaumont/IThelpdesklite/internal/router"
	"github.com/amberbeaumont/IThelpdesklite/pkg/logger"
)

func main() {
	// config + logger
	cfg, err := config.Load()
	if err != nil {
		l := logger.New("prod", "")
		l.Fatal().Err(err).Msg("invalid configuration")
	}
	l := logger.New(cfg.Env, cfg.LogLevel)

	// stores
	st, err := app.Open(context.Background(), l, cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("store setup failed")
	}
	defer st.Close()

	// http
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(l, cfg, st),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go serve(l, srv)

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("shutdown")
	}
	l.Info().Msg("shutdown complete")
}

func serve(l zerolog.Logger, srv *http.Server) {
	l.Info().Str("addr", srv.Addr).Msg("api listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Fatal().Err(err).Msg("server error")
	}
}
