package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/pokesheet/internal/dice"
	"github.com/KirkDiggler/pokesheet/internal/handlers/api"
	"github.com/KirkDiggler/pokesheet/internal/services"
)

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "serve",
		Short:             "Serve the sheet API over HTTP",
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.load,
		PersistentPostRun: a.sync,
		RunE:              a.serve,
	}
}

func (a *app) serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providerCfg, closeStore, err := openStore(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer closeStore()

	providerCfg.Logger = a.logger
	providerCfg.Roller = dice.NewRandomRoller()
	providerCfg.MissingStatValue = &a.cfg.Formula.MissingStatValue
	provider := services.NewProvider(providerCfg)

	handler := api.NewHandler(&api.HandlerConfig{
		ServiceProvider: provider,
		Logger:          a.logger,
	})

	srv := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down", zap.Duration("timeout", a.cfg.HTTP.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
