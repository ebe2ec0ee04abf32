package main

import (
	"context"
	"fmt"
	"os"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/bootstrap"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/config"
	srv "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/server"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.NewApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start pantry service: %v\n", err)
		os.Exit(1)
	}
	log := app.Log

	handler := bootstrap.NewRouter(app.Config, app.Services(), log)
	server := srv.NewServer(srv.DefaultServerConfig(app.Config.HTTPPort), handler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Info("pantry service: stopping pool metrics")
			cancel()
			return nil
		},
		func(ctx context.Context) error {
			log.Info("pantry service: closing database pool")
			app.Pool.Close()
			return nil
		},
	}

	srv.StartWithGracefulShutdownAndHooks(server, log, "pantry", shutdownHooks)
}
