package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/14dstcyr/buzzline-04-stcyr/api"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/chart"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/config"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/consume"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/kafka"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/metrics"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/mock"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/service"
	"github.com/14dstcyr/buzzline-04-stcyr/internal/window"
)

func main() {
	logger := slog.Default()

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived shutdown signal, stopping services...")
		cancel() // Cancel the context to stop the loop and the chart
	}()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// 1. Create the rolling window (single writer: the consumption loop)
	rollingWindow := window.NewRollingWindowWithConfig(window.Config{MaxPoints: cfg.WindowSize})

	// 2. Create the chart hub that live pages subscribe to
	hub := chart.NewHub(logger)

	// 3. Create the trend service (reads the window to serve the API)
	trendService := service.NewTrendService(rollingWindow)

	// 4. Pick the message source: a real broker or the built-in generator
	var consumer consume.MessageConsumer
	if cfg.Broker != "" {
		consumer = kafka.NewConsumer(strings.Split(cfg.Broker, ","), cfg.Topic, cfg.GroupID, logger)
	} else {
		consumer = mock.NewBuzzGenerator()
	}

	instruments := metrics.New()
	loop := consume.NewLoop(consumer, rollingWindow, hub, instruments, logger)

	// Start the API and chart server
	apiHandler := api.NewAPIHandler(trendService, hub, instruments.Handler(), logger)
	go func() {
		fmt.Printf("Sentiment trend service starting on port %d\n", cfg.HTTPPort)
		fmt.Printf("Endpoints:\n")
		fmt.Printf("  GET /chart\n")
		fmt.Printf("  GET /api/v1/window?limit=50\n")
		fmt.Printf("  GET /health\n")
		fmt.Printf("  GET /metrics\n")
		fmt.Printf("Press Ctrl+C to gracefully shutdown\n")

		if err := apiHandler.StartServer(cfg.HTTPPort); err != nil {
			logger.Error("http server stopped", "error", err)
			cancel()
		}
	}()

	if err := loop.Run(ctx); err != nil {
		logger.Error("consumption loop failed", "error", err)
	}

	// Keep the chart up for inspection after the stream ends, interrupt
	// included; the next Ctrl+C closes it.
	showCtx, showCancel := context.WithCancel(context.Background())
	defer showCancel()
	go func() {
		<-sigChan
		fmt.Println("\nClosing chart...")
		showCancel()
	}()
	hub.Show(showCtx)
}
