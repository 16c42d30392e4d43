package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"framestudio/internal/certs"
	"framestudio/internal/config"
	"framestudio/internal/handlers"
)

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.Log.Development)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	app, err := handlers.NewApp(cfg, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.Sessions.Run(ctx, cfg.Session.SweepInterval(), cfg.Session.MaxIdle())
	go reloadOnHangup(ctx, app, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Server.TLS.Enabled {
		cert, err := loadCertificate(cfg.Server.TLS)
		if err != nil {
			logger.Fatal("TLS certificate unavailable", zap.Error(err))
		}
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.Bool("tls", srv.TLSConfig != nil),
			zap.Bool("email_enabled", app.Email.Enabled()))

		var err error
		if srv.TLSConfig != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func loadCertificate(c config.TLSConfig) (tls.Certificate, error) {
	if c.CertFile != "" {
		return tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	}
	return certs.SelfSigned(certs.Options{})
}

// reloadOnHangup re-reads the catalog file on SIGHUP.
func reloadOnHangup(ctx context.Context, app *handlers.App, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := app.Catalog.Reload(); err != nil {
				logger.Error("catalog reload failed, keeping previous catalog", zap.Error(err))
				continue
			}
			logger.Info("catalog reloaded", zap.Int("frames", len(app.Catalog.GetFrames())))
		}
	}
}
