// Command corekvd runs the List/Set collection-type server: a TCP listener
// speaking the RESP-like protocol of spec §6.3 alongside an admin HTTP
// surface, both supervised together the way the teacher repo wires its
// single HTTP server in cmd/zmux-server/main.go, generalized to two
// listeners via golang.org/x/sync/errgroup.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corekv/corekv/internal/admin"
	"github.com/corekv/corekv/internal/config"
	"github.com/corekv/corekv/internal/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	log := zap.Must(logConfig.Build())
	defer log.Sync()
	log = log.Named("main")

	limits := config.New()
	srv := server.New(log, limits)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tcpAddr := envOr("COREKV_ADDR", "127.0.0.1:6399")
	adminAddr := envOr("COREKV_ADMIN_ADDR", "127.0.0.1:6400")

	router := admin.NewRouter(log, srv, admin.Options{
		Dev:           os.Getenv("ENV") == "dev",
		SessionSecret: []byte(envOr("COREKV_SESSION_SECRET", "dev-only-insecure-secret")),
		AdminPassword: os.Getenv("COREKV_ADMIN_PASSWORD"),
	})
	httpServer := &http.Server{
		Addr:           adminAddr,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 15,
		ErrorLog:       zap.NewStdLog(log.Named("http").WithOptions(zap.AddCallerSkip(1))),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		srv.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return srv.ListenAndServe(gctx, tcpAddr)
	})
	g.Go(func() error {
		log.Info("admin http listening", zap.String("addr", adminAddr))
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}
