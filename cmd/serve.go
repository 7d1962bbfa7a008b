package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/speakplan/internal/config"
	"github.com/abhisek/speakplan/internal/server"
	"github.com/abhisek/speakplan/internal/store"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("config", "speakplan.yaml", "Path to config file (missing file uses defaults)")
}

func runServe(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	log := cfg.Logger()
	log.Info("speakplan starting", "version", version)

	st, err := store.Open(cfg.Store.DSN)
	if err != nil {
		return err
	}
	defer st.Close()
	log.Info("store opened", "dsn", cfg.Store.DSN)

	srv := server.New(st.PlanRepo(), cfg.Planner.MockCap, log)

	addr := cfg.Server.Addr()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Info("server starting", "addr", listener.Addr().String())

	httpSrv := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", "error", err)
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}
