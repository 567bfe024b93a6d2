package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"aitravel/cmd/fx/account_fx"
	"aitravel/cmd/fx/controllers_fx"
	"aitravel/cmd/fx/db_fx"
	"aitravel/cmd/fx/expense_fx"
	"aitravel/cmd/fx/memcache_fx"
	"aitravel/cmd/fx/prompt_fx"
	"aitravel/internal/api"
	"aitravel/internal/config"
)

func main() {
	loadLocalEnv()

	app := fx.New(
		fx.Provide(config.Load),
		db_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		prompt_fx.Module,
		expense_fx.Module,
		controllers_fx.Module,

		fx.Provide(api.NewRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at %s", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
