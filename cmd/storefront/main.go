package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mobileriadardania/storefront/config"
	"github.com/mobileriadardania/storefront/internal/adminapi"
	"github.com/mobileriadardania/storefront/internal/app"
	"github.com/mobileriadardania/storefront/internal/webserver"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	version = "develop"

	configFile = flag.String("c", "/etc/storefront.yml", "config file")
	initdb     = flag.Bool("initdb", false, "drop and recreate the catalog schema, then exit")
	showVer    = flag.Bool("v", false, "print version")
)

func main() {
	flag.Parse()
	if *showVer {
		fmt.Println(version)
		return
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		application.Release()
		os.Exit(1)
	}
	if err := run(application, cfg); err != nil {
		zap.S().Error(err)
		application.Release()
		os.Exit(1)
	}
	application.Release()
}

// run blocks until the server stops or a shutdown signal arrives. It never
// exits the process, so the caller can release resources first.
func run(application *app.Application, cfg *config.AppConfig) error {
	if *initdb {
		return errors.Wrap(application.InitDb(), "initdb failed")
	}

	server, err := webserver.NewServer(cfg.Web, cfg.System.Debug)
	if err != nil {
		return errors.Wrap(err, "web server setup failed")
	}
	adminapi.Init(server, application)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	application.StartBackgroundJobs(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "web server stopped")
	case <-ctx.Done():
		zap.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("graceful shutdown failed", zap.Error(err))
		}
		return nil
	}
}
