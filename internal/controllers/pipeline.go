package controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kometa-tools/utsk/internal/config"
	"github.com/kometa-tools/utsk/internal/kometa"
	"github.com/kometa-tools/utsk/internal/models"
	"github.com/sirupsen/logrus"
)

// Pipeline sequences one full batch run: air-window filter, trailer
// pass, document synthesis. Everything is synchronous and
// single-threaded; per-show failures never cross show boundaries.
type Pipeline struct {
	upcomingCtrl *UpcomingController
	trailerCtrl  *TrailerController
	synthesizer  *kometa.Synthesizer
	db           *models.Database
	cfg          *config.Config
	logger       *logrus.Logger
}

// NewPipeline creates a new pipeline
func NewPipeline(
	upcomingCtrl *UpcomingController,
	trailerCtrl *TrailerController,
	synthesizer *kometa.Synthesizer,
	db *models.Database,
	cfg *config.Config,
	logger *logrus.Logger,
) *Pipeline {
	return &Pipeline{
		upcomingCtrl: upcomingCtrl,
		trailerCtrl:  trailerCtrl,
		synthesizer:  synthesizer,
		db:           db,
		cfg:          cfg,
		logger:       logger,
	}
}

// Run executes one batch run end to end. Returned errors are the
// fatal class: tracker connectivity and output write failures.
func (p *Pipeline) Run() error {
	start := time.Now()

	shows, err := p.upcomingCtrl.FindUpcoming()
	if err != nil {
		return err
	}
	p.reportShows(shows)

	var summary TrailerSummary
	switch {
	case !p.cfg.DownloadTrailers:
		p.logger.Info("Trailer downloading is disabled")
	case len(shows) == 0:
		p.logger.Info("No upcoming shows to download trailers for")
	default:
		p.logger.Info("Processing trailers for upcoming shows")
		summary = p.trailerCtrl.ProcessShows(shows)
		p.logger.WithFields(logrus.Fields{
			"successful":       summary.Downloaded + summary.SkippedExisting,
			"skipped_existing": summary.SkippedExisting,
			"failed":           summary.Failed,
		}).Info("Trailer processing summary")
	}

	// Drop history for shows that left the window
	activeIDs := make([]int, 0, len(shows))
	for _, show := range shows {
		if show.TVDBID != 0 {
			activeIDs = append(activeIDs, show.TVDBID)
		}
	}
	if pruned, err := p.db.PruneTrailerRecords(activeIDs); err != nil {
		p.logger.WithError(err).Warn("Failed to prune stale trailer records")
	} else if pruned > 0 {
		p.logger.WithField("count", pruned).Debug("Pruned stale trailer records")
	}

	if err := p.writeDocuments(shows); err != nil {
		return err
	}

	report := &models.RunReport{
		StartedAt:       start,
		FinishedAt:      time.Now(),
		ShowsFound:      len(shows),
		Downloaded:      summary.Downloaded,
		SkippedExisting: summary.SkippedExisting,
		Failed:          summary.Failed,
	}
	if err := p.db.CreateRunReport(report); err != nil {
		p.logger.WithError(err).Warn("Failed to save run report")
	}

	p.logger.WithField("runtime", time.Since(start).Round(time.Second).String()).Info("Run completed")
	return nil
}

// reportShows logs the accepted show list
func (p *Pipeline) reportShows(shows []models.Show) {
	if len(shows) == 0 {
		p.logger.WithField("days", p.cfg.FutureDays).Warn("No upcoming shows found with first episodes within window")
		return
	}

	p.logger.WithFields(logrus.Fields{
		"count": len(shows),
		"days":  p.cfg.FutureDays,
	}).Info("Found upcoming shows with first episodes within window")

	for _, show := range shows {
		title := show.Title
		if show.Year != 0 {
			title = fmt.Sprintf("%s (%d)", show.Title, show.Year)
		}
		p.logger.WithFields(logrus.Fields{
			"show":          title,
			"first_episode": show.AirDate,
		}).Info("Upcoming show")
	}
}

// writeDocuments regenerates both Kometa YAML files wholesale
func (p *Pipeline) writeDocuments(shows []models.Show) error {
	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	overlayPath := filepath.Join(p.cfg.OutputDir, kometa.OverlayFileName)
	if err := p.synthesizer.WriteOverlay(overlayPath, shows); err != nil {
		return fmt.Errorf("failed to write overlay file: %w", err)
	}

	collectionPath := filepath.Join(p.cfg.OutputDir, kometa.CollectionFileName)
	if err := p.synthesizer.WriteCollection(collectionPath, shows); err != nil {
		return fmt.Errorf("failed to write collection file: %w", err)
	}

	p.logger.WithField("dir", p.cfg.OutputDir).Info("YAML files created successfully")
	return nil
}
