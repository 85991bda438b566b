package controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kometa-tools/utsk/internal/models"
	"github.com/kometa-tools/utsk/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	searchLimit = 15

	// Candidates with a known duration outside these bounds are not
	// trailers; unknown durations pass.
	minTrailerSeconds = 10
	maxTrailerSeconds = 900
)

// avoidKeywords mark titles that are about a trailer rather than the
// trailer itself
var avoidKeywords = []string{
	"reaction", "review", "breakdown", "analysis", "explained", "easter eggs", "theory",
	"predictions", "recap", "commentary", "first time watching", "blind reaction",
	"behind the scenes", "fan made", "concept", "music video", "news", "interview",
}

// officialChannels are uploader names of major studios and streamers
var officialChannels = []string{
	"netflix", "hbo", "max", "amazon", "prime video", "disney", "marvel", "lucasfilm",
	"apple tv", "paramount", "showtime", "starz", "fx", "amc", "peacock", "universal",
	"sony pictures", "warner bros", "20th century", "lionsgate", "bbc", "itv", "channel 4", "hulu",
}

// Searcher is the slice of the yt-dlp client the selector needs
type Searcher interface {
	Search(term string, limit int) ([]models.VideoCandidate, error)
}

// Downloader fetches a video to a local output template
type Downloader interface {
	Download(url, outputTemplate string) error
}

// TrailerSummary counts outcomes of a trailer pass over all shows
type TrailerSummary struct {
	Downloaded      int
	SkippedExisting int
	Failed          int
}

// TrailerController finds and downloads the best official trailer for
// each upcoming show
type TrailerController struct {
	searcher   Searcher
	downloader Downloader
	blocklist  *utils.ChannelBlocklist
	db         *models.Database
	logger     *logrus.Logger
}

// NewTrailerController creates a new trailer controller
func NewTrailerController(searcher Searcher, downloader Downloader, blocklist *utils.ChannelBlocklist, db *models.Database, logger *logrus.Logger) *TrailerController {
	return &TrailerController{
		searcher:   searcher,
		downloader: downloader,
		blocklist:  blocklist,
		db:         db,
		logger:     logger,
	}
}

// searchTerms builds the query variants in priority order,
// year-qualified variants first when the year is known
func searchTerms(title string, year int) []string {
	var terms []string
	if year != 0 {
		terms = append(terms,
			fmt.Sprintf("%s %d trailer", title, year),
			fmt.Sprintf("%s %d official trailer", title, year),
			fmt.Sprintf("%s %d teaser", title, year),
		)
	}
	return append(terms,
		title+" trailer",
		title+" official trailer",
		title+" teaser",
		title+" official teaser",
		title+" first look",
	)
}

// SelectTrailer returns the best matching trailer for a show, or nil
// when no candidate passes filtering across all query variants. A
// failed search variant is skipped, never fatal.
func (c *TrailerController) SelectTrailer(showTitle string, year int) *models.TrailerSelection {
	var best *models.TrailerSelection

	for _, term := range searchTerms(showTitle, year) {
		c.logger.WithField("term", term).Debug("Trying search term")

		candidates, err := c.searcher.Search(term, searchLimit)
		if err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"show": showTitle,
				"term": term,
			}).Debug("Search variant failed, skipping")
			continue
		}

		for _, candidate := range candidates {
			if !c.acceptCandidate(candidate, showTitle) {
				continue
			}

			score := scoreCandidate(candidate, year)

			// Strictly greater keeps the first-seen candidate on ties
			if best == nil || score > best.Score {
				best = &models.TrailerSelection{Candidate: candidate, Score: score}
			}
		}
	}

	if best != nil {
		c.logger.WithFields(logrus.Fields{
			"show":     showTitle,
			"video":    best.Candidate.Title,
			"uploader": best.Candidate.Uploader,
			"score":    best.Score,
		}).Debug("Best trailer match")
	}

	return best
}

// acceptCandidate applies the filter chain to a single search result
func (c *TrailerController) acceptCandidate(candidate models.VideoCandidate, showTitle string) bool {
	if candidate.Title == "" || candidate.ID == "" {
		return false
	}

	if blocked, channel := c.blocklist.IsBlocked(candidate.Uploader); blocked {
		c.logger.WithFields(logrus.Fields{
			"video":   candidate.Title,
			"channel": channel,
		}).Debug("Skipping blocked channel")
		return false
	}

	titleLower := strings.ToLower(candidate.Title)
	for _, keyword := range avoidKeywords {
		if strings.Contains(titleLower, keyword) {
			return false
		}
	}

	if candidate.Duration != nil {
		d := *candidate.Duration
		if d < minTrailerSeconds || d > maxTrailerSeconds {
			return false
		}
	}

	if !utils.TitleMatches(candidate.Title, showTitle) {
		c.logger.WithFields(logrus.Fields{
			"video": candidate.Title,
			"show":  showTitle,
		}).Debug("Skipping candidate, title does not match show")
		return false
	}

	return true
}

// scoreCandidate prefers official-looking titles and channels and a
// matching year
func scoreCandidate(candidate models.VideoCandidate, year int) int {
	titleLower := strings.ToLower(candidate.Title)
	uploaderLower := strings.ToLower(candidate.Uploader)

	score := 0
	if strings.Contains(titleLower, "official") {
		score += 3
	}
	if strings.Contains(titleLower, "trailer") {
		score += 2
	}
	if strings.Contains(titleLower, "teaser") {
		score++
	}
	for _, channel := range officialChannels {
		if strings.Contains(uploaderLower, channel) {
			score += 3
			break
		}
	}
	if year != 0 && strings.Contains(titleLower, strconv.Itoa(year)) {
		score += 2
	}

	return score
}

// ProcessShows runs the trailer pass over every show: existing files
// short-circuit the search, failures are isolated per show
func (c *TrailerController) ProcessShows(shows []models.Show) TrailerSummary {
	var summary TrailerSummary

	for _, show := range shows {
		c.logger.WithField("title", show.Title).Info("Processing show")
		c.processShow(show, &summary)
	}

	return summary
}

// processShow handles a single show's trailer search and download
func (c *TrailerController) processShow(show models.Show, summary *TrailerSummary) {
	if show.Path == "" {
		c.logger.WithField("title", show.Title).Warn("No path for show, cannot store trailer")
		summary.Failed++
		c.recordOutcome(show, nil, models.TrailerStatusFailed, "no path configured in Sonarr")
		return
	}

	finalPath := TrailerPath(show)

	// Filesystem presence is the download cache: an existing trailer
	// skips both search and download on every later run
	if _, err := os.Stat(finalPath); err == nil {
		c.logger.WithField("title", show.Title).Info("Trailer already exists, skipping")
		summary.SkippedExisting++
		c.recordOutcome(show, nil, models.TrailerStatusExisting, "")
		return
	}

	selection := c.SelectTrailer(show.Title, show.Year)
	if selection == nil {
		c.logger.WithField("title", show.Title).Warn("No suitable trailer found")
		summary.Failed++
		c.recordOutcome(show, nil, models.TrailerStatusNotFound, "")
		return
	}

	c.logger.WithFields(logrus.Fields{
		"title":    show.Title,
		"video":    selection.Candidate.Title,
		"duration": selection.DurationString(),
		"uploader": selection.Candidate.Uploader,
	}).Info("Found trailer")

	if err := c.downloadTrailer(show, selection, finalPath); err != nil {
		c.logger.WithError(err).WithField("title", show.Title).Error("Trailer download failed")
		summary.Failed++
		c.recordOutcome(show, selection, models.TrailerStatusFailed, err.Error())
		return
	}

	c.logger.WithField("title", show.Title).Info("Successfully downloaded trailer")
	summary.Downloaded++
	c.recordOutcome(show, selection, models.TrailerStatusDownloaded, "")
}

// downloadTrailer fetches the selected trailer into the show's
// Season 00 folder and verifies the final file exists
func (c *TrailerController) downloadTrailer(show models.Show, selection *models.TrailerSelection, finalPath string) error {
	seasonDir := filepath.Dir(finalPath)
	if err := os.MkdirAll(seasonDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", seasonDir, err)
	}

	template := filepath.Join(seasonDir, utils.SanitizeTitle(show.Title)+".S00E00.Trailer.%(ext)s")
	if err := c.downloader.Download(selection.Candidate.URL(), template); err != nil {
		return err
	}

	if _, err := os.Stat(finalPath); err != nil {
		return fmt.Errorf("trailer file not found after download: %s", finalPath)
	}

	return nil
}

// recordOutcome persists the show's trailer outcome to the history store
func (c *TrailerController) recordOutcome(show models.Show, selection *models.TrailerSelection, status models.TrailerStatus, errText string) {
	record := &models.TrailerRecord{
		TVDBID:    show.TVDBID,
		ShowTitle: show.Title,
		AirDate:   show.AirDate,
		Status:    status,
		Error:     errText,
	}
	if selection != nil {
		record.VideoID = selection.Candidate.ID
		record.VideoTitle = selection.Candidate.Title
		record.Uploader = selection.Candidate.Uploader
		record.Score = selection.Score
	}

	if err := c.db.UpsertTrailerRecord(record); err != nil {
		c.logger.WithError(err).Error("Failed to save trailer record")
	}
}

// TrailerPath is the canonical on-disk location of a show's trailer
func TrailerPath(show models.Show) string {
	name := utils.SanitizeTitle(show.Title) + ".S00E00.Trailer.mp4"
	return filepath.Join(show.Path, "Season 00", name)
}
