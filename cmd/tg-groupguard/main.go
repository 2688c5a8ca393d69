package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tg-groupguard/internal/bot"
	"tg-groupguard/internal/config"
	"tg-groupguard/internal/crash"
	"tg-groupguard/internal/handler"
	"tg-groupguard/internal/logger"
	"tg-groupguard/internal/platform"
	"tg-groupguard/internal/service"
	"tg-groupguard/internal/storage"
)

func main() {
	defer crash.RecoverWithStackAndExit("main")

	// Define command line flags
	configPath := flag.String("config", "configs/config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging first
	if err := logger.Setup(cfg); err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	// Initialize database
	if err := storage.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize bot with configuration
	botService, server, err := bot.Initialize(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize bot: %v", err)
	}

	// Wire the moderation core
	client := platform.NewTelegramClient(botService.Bot, time.Duration(cfg.Moderation.CollaboratorTimeoutSec)*time.Second)
	services, err := service.NewServices(storage.GetDB(), client, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	handler.Initialize(cfg)

	// Start HTTP server in a goroutine
	crash.SafeGoroutine("webhook-server", func() {
		if err := server.Start(); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	})

	// Give server time to start
	time.Sleep(500 * time.Millisecond)
	logger.Infof("HTTP server is ready, starting bot handler...")

	// Setup and start update handlers
	handler.SetupHandlers(botService.Handler, botService.Bot, services)
	botService.Start()

	// Create a channel for receiving OS signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for signal
	sig := <-sigChan
	logger.Infof("Received signal: %v, shutting down...", sig)

	// Gracefully shutdown server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	botService.Stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}

	logger.Infof("Server gracefully stopped")
}
