package controllers

import (
	"fmt"
	"time"

	"github.com/kometa-tools/utsk/internal/config"
	"github.com/kometa-tools/utsk/internal/models"
	"github.com/kometa-tools/utsk/internal/utils"
	"github.com/sirupsen/logrus"
)

// Tracker is the slice of the Sonarr API the upcoming filter needs
type Tracker interface {
	GetSeries() ([]models.Series, error)
	GetEpisodes(seriesID int) ([]models.Episode, error)
}

// UpcomingController finds series whose first episode airs within the
// configured window
type UpcomingController struct {
	tracker Tracker
	cfg     *config.Config
	logger  *logrus.Logger
}

// NewUpcomingController creates a new upcoming controller
func NewUpcomingController(tracker Tracker, cfg *config.Config, logger *logrus.Logger) *UpcomingController {
	return &UpcomingController{
		tracker: tracker,
		cfg:     cfg,
		logger:  logger,
	}
}

// FindUpcoming returns shows with an S01E01 airing inside the window,
// in tracker order. Tracker errors abort the run.
func (c *UpcomingController) FindUpcoming() ([]models.Show, error) {
	return c.findUpcomingAt(time.Now().UTC())
}

// findUpcomingAt runs the window filter against a fixed "now" sample.
// Cutoff and comparison baseline derive from the same sample so the
// window cannot skew while iterating.
func (c *UpcomingController) findUpcomingAt(now time.Time) ([]models.Show, error) {
	cutoff := now.Add(time.Duration(c.cfg.FutureDays) * 24 * time.Hour)
	nowLocal := now.Add(time.Duration(c.cfg.UTCOffset * float64(time.Hour)))

	c.logger.WithFields(logrus.Fields{
		"cutoff":    cutoff,
		"now_local": nowLocal,
	}).Debug("Computed air window")

	allSeries, err := c.tracker.GetSeries()
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}

	var upcoming []models.Show
	for _, series := range allSeries {
		if series.Status != models.SeriesStatusUpcoming {
			continue
		}

		c.logger.WithFields(logrus.Fields{
			"title":     series.Title,
			"monitored": series.Monitored,
		}).Debug("Processing upcoming series")

		if c.cfg.SkipUnmonitored && !series.Monitored {
			c.logger.WithField("title", series.Title).Debug("Skipping unmonitored series")
			continue
		}

		episodes, err := c.tracker.GetEpisodes(series.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list episodes for %s: %w", series.Title, err)
		}

		// First S01E01 wins if the tracker sends duplicates
		firstEpisode, found := findFirstEpisode(episodes)
		if !found {
			c.logger.WithField("title", series.Title).Debug("No Season 1 Episode 1 found")
			continue
		}

		airLocal, ok, err := utils.ToLocal(firstEpisode.AirDateUTC, c.cfg.UTCOffset)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", series.Title, err)
		}
		if !ok {
			c.logger.WithField("title", series.Title).Debug("No air date for S01E01")
			continue
		}

		// Strictly after now, at or before the cutoff
		if !airLocal.After(nowLocal) || airLocal.After(cutoff) {
			c.logger.WithFields(logrus.Fields{
				"title":    series.Title,
				"air_date": airLocal,
			}).Debug("First episode outside air window")
			continue
		}

		upcoming = append(upcoming, models.Show{
			Title:   series.Title,
			TVDBID:  series.TVDBID,
			IMDBID:  series.IMDBID,
			Year:    series.Year,
			Path:    series.Path,
			AirDate: airLocal.Format("2006-01-02"),
			AirTime: airLocal,
		})

		c.logger.WithFields(logrus.Fields{
			"title":    series.Title,
			"air_date": airLocal.Format("2006-01-02"),
		}).Debug("Added upcoming show")
	}

	return upcoming, nil
}

// findFirstEpisode returns the first season-1 episode-1 record in
// iteration order
func findFirstEpisode(episodes []models.Episode) (models.Episode, bool) {
	for _, ep := range episodes {
		if ep.SeasonNumber == 1 && ep.EpisodeNumber == 1 {
			return ep, true
		}
	}
	return models.Episode{}, false
}
