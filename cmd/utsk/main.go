package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kometa-tools/utsk/internal/config"
	"github.com/kometa-tools/utsk/internal/controllers"
	"github.com/kometa-tools/utsk/internal/kometa"
	"github.com/kometa-tools/utsk/internal/models"
	"github.com/kometa-tools/utsk/internal/scheduler"
	"github.com/kometa-tools/utsk/internal/services/sonarr"
	"github.com/kometa-tools/utsk/internal/services/ytdlp"
	"github.com/kometa-tools/utsk/internal/utils"
)

const version = "1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.WithField("version", version).Info("Starting Upcoming TV Shows for Kometa")

	// 3. Check yt-dlp before doing any work
	ytdlpClient := ytdlp.NewClient(cfg.Debug, logger)
	if cfg.DownloadTrailers {
		if _, err := ytdlpClient.CheckInstalled(); err != nil {
			return err
		}
	}

	// 4. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Database initialized")

	// 5. Initialize Sonarr client and resolve the API root
	sonarrClient, err := sonarr.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize Sonarr client: %w", err)
	}
	if err := sonarrClient.Connect(); err != nil {
		return err
	}

	// 6. Initialize controllers
	blocklist := utils.NewChannelBlocklist(cfg.SkipChannels)
	upcomingCtrl := controllers.NewUpcomingController(sonarrClient, cfg, logger)
	trailerCtrl := controllers.NewTrailerController(ytdlpClient, ytdlpClient, blocklist, db, logger)
	synthesizer := kometa.NewSynthesizer(cfg, logger)
	pipeline := controllers.NewPipeline(upcomingCtrl, trailerCtrl, synthesizer, db, cfg, logger)
	logger.Info("Controllers initialized")

	// 7. Single batch run unless a schedule is configured
	if cfg.Schedule == "" {
		return pipeline.Run()
	}

	sched := scheduler.NewScheduler(pipeline, logger)
	if err := sched.Start(cfg.Schedule); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 8. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logger.WithField("signal", sig).Info("Received shutdown signal")

	return nil
}
