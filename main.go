package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lg/plannit-go-api/internal/config"
	"lg/plannit-go-api/internal/logger"
	"lg/plannit-go-api/internal/store"
	"lg/plannit-go-api/internal/tracker"
	"lg/plannit-go-api/internal/usda"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Store())
	if err != nil {
		log.Fatal("unable to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer st.Close()

	t, err := tracker.New(ctx, st, tracker.WithLogger(log))
	if err != nil {
		log.Fatal("unable to load tracker state", zap.Error(err))
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.SetTrustedProxies(nil)

	h := Handler{
		tracker: t,
		lookup:  usda.NewClient(cfg.USDA()),
		log:     log,
	}
	h.registerRoutes(router)

	log.Info("starting server", zap.String("addr", cfg.Addr), zap.String("store", cfg.StoreDriver))
	if err := router.Run(cfg.Addr); err != nil {
		log.Error("server stopped", zap.Error(err))
	}
}
