package ytdlp

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	ytDlpCmd     = "yt-dlp"
	searchPrefix = "ytsearch"

	searchTimeout   = 45 * time.Second
	downloadTimeout = 10 * time.Minute
	versionTimeout  = 10 * time.Second
)

// Client shells out to the yt-dlp command line tool
type Client struct {
	debug  bool
	logger *logrus.Logger
}

// NewClient creates a new yt-dlp client
func NewClient(debug bool, logger *logrus.Logger) *Client {
	return &Client{
		debug:  debug,
		logger: logger,
	}
}

// CheckInstalled verifies yt-dlp is on PATH and working, returning its
// version string
func (c *Client) CheckInstalled() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, ytDlpCmd, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("yt-dlp not found or not working, install it first: %w", err)
	}

	version := strings.TrimSpace(string(output))
	c.logger.WithField("version", version).Info("yt-dlp found")
	return version, nil
}
