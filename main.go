package main

import (
	"context"
	"embed"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"photodeck/adapters/excel"
	"photodeck/app"
	"photodeck/domain/deck"
	"photodeck/internal"
	"photodeck/internal/api"
	"photodeck/internal/config"
	"photodeck/internal/demo"
	"photodeck/ports"
	"photodeck/ui"
)

//go:embed ui/templates/*.html ui/static/*
var embeddedFiles embed.FS

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("No .env file loaded: %v", err)
	}

	logger := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.Server.GinMode)

	// Measurement source: configured spreadsheet if present, embedded
	// demo data otherwise and as the fallback.
	embedded := demo.NewMeasurementSource()
	var source ports.MeasurementSourcePort
	if cfg.Data.MeasurementsFile != "" {
		logger.Info("Using measurements file %s", cfg.Data.MeasurementsFile)
		source = excel.NewSeriesReader(cfg.Data.MeasurementsFile)
	}

	hub := api.NewSSEHub()
	emitter := ports.NavEmitterFunc(func(sessionID string, tr deck.Transition) {
		hub.Broadcast(api.NavEvent{
			SessionID: sessionID,
			From:      tr.From,
			Index:     tr.To,
			Source:    string(tr.Source),
			Timestamp: time.Now(),
		})
	})

	decks := app.NewDeckService(demo.Deck(), cfg.Deck.WheelCooldown, cfg.Deck.SessionTTL, emitter, nil)
	charts := app.NewChartService(source, embedded)

	server, err := ui.NewServer(embeddedFiles, decks, charts, hub)
	if err != nil {
		logger.Error("Failed to build server: %v", err)
		os.Exit(1)
	}

	stop := make(chan struct{})
	go decks.RunSweeper(time.Minute, stop)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.Handler(),
	}
	go func() {
		logger.Info("Presentation server listening on :%s", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Presentation server failed: %v", err)
			os.Exit(1)
		}
	}()

	var opsServer *http.Server
	if cfg.Ops.Enabled {
		opsServer = &http.Server{
			Addr:    ":" + cfg.Ops.Port,
			Handler: ui.NewOpsRouter(decks, time.Now()),
		}
		go func() {
			logger.Info("Ops server listening on :%s", cfg.Ops.Port)
			if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("Ops server failed: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	close(stop)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Warn("Presentation server shutdown: %v", err)
	}
	if opsServer != nil {
		if err := opsServer.Shutdown(ctx); err != nil {
			logger.Warn("Ops server shutdown: %v", err)
		}
	}
}
