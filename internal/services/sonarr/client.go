package sonarr

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kometa-tools/utsk/internal/config"
	"github.com/kometa-tools/utsk/internal/models"
	"github.com/sirupsen/logrus"
)

// Candidate API-root suffixes probed against /health during connect.
var apiPaths = []string{
	"/api/v3",
	"/sonarr/api/v3",
}

// Client wraps direct Sonarr API HTTP calls
type Client struct {
	baseURL    string // Resolved API root, set by Connect
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new Sonarr client with direct HTTP calls
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.SonarrURL == "" {
		return nil, fmt.Errorf("sonarr URL is required")
	}
	if cfg.SonarrAPIKey == "" {
		return nil, fmt.Errorf("sonarr API key is required")
	}

	return &Client{
		baseURL: normalizeBaseURL(cfg.SonarrURL),
		apiKey:  cfg.SonarrAPIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}, nil
}

// normalizeBaseURL strips a trailing slash and any path component so
// the candidate API roots can be appended cleanly
func normalizeBaseURL(raw string) string {
	base := strings.TrimRight(raw, "/")

	if strings.HasPrefix(base, "http") {
		protocolEnd := strings.Index(base, "://") + 3
		if nextSlash := strings.Index(base[protocolEnd:], "/"); nextSlash != -1 {
			base = base[:protocolEnd+nextSlash]
		}
	}

	return base
}

// Connect probes the candidate API roots against /health until one
// answers 200, and pins the client to it. Exhausting all candidates is
// a fatal connectivity error.
func (c *Client) Connect() error {
	var tried []string

	for _, path := range apiPaths {
		testURL := c.baseURL + path
		tried = append(tried, testURL)

		if err := c.probeHealth(testURL); err != nil {
			c.logger.WithError(err).WithField("url", testURL).Warn("Sonarr API root probe failed")
			continue
		}

		c.logger.WithField("url", testURL).Info("Successfully connected to Sonarr")
		c.baseURL = testURL
		return nil
	}

	return fmt.Errorf("unable to establish connection to Sonarr, tried: %s; verify the URL and API key and ensure Sonarr is running",
		strings.Join(tried, ", "))
}

// probeHealth issues a single authenticated /health request
func (c *Client) probeHealth(apiRoot string) error {
	req, err := http.NewRequest("GET", apiRoot+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health probe failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health probe returned status %d", resp.StatusCode)
	}

	return nil
}

// GetSeries fetches every series known to Sonarr
func (c *Client) GetSeries() ([]models.Series, error) {
	var series []models.Series
	if err := c.get("/series", &series); err != nil {
		return nil, fmt.Errorf("failed to fetch series: %w", err)
	}

	c.logger.WithField("count", len(series)).Debug("Sonarr series fetched")
	return series, nil
}

// GetEpisodes fetches all episodes for a series
func (c *Client) GetEpisodes(seriesID int) ([]models.Episode, error) {
	var episodes []models.Episode
	if err := c.get("/episode?seriesId="+strconv.Itoa(seriesID), &episodes); err != nil {
		return nil, fmt.Errorf("failed to fetch episodes for series %d: %w", seriesID, err)
	}

	c.logger.WithFields(logrus.Fields{
		"series_id": seriesID,
		"count":     len(episodes),
	}).Debug("Sonarr episodes fetched")
	return episodes, nil
}

// get performs an authenticated GET against the resolved API root and
// decodes the JSON response into result
func (c *Client) get(path string, result interface{}) error {
	fullURL := c.baseURL + path
	c.logger.WithField("url", fullURL).Debug("Making Sonarr API request")

	req, err := http.NewRequest("GET", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sonarr API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sonarr API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
