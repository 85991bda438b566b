package ytdlp

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Download format strings: exact 1080p first, then the best at or
// below it. Any container/codec is accepted because the file is
// recoded to mp4 afterwards.
const (
	format1080Exact = "bv*[height=1080]+ba/b[height=1080]"
	format1080Max   = "bv*[height<=1080]+ba/b[height<=1080]"
)

// Download fetches a video preferring exact 1080p and falling back to
// the best quality at or below 1080p, recoding the result to a
// faststart mp4 at outputTemplate (which must contain %(ext)s).
func (c *Client) Download(url, outputTemplate string) error {
	if err := c.runDownload(url, outputTemplate, format1080Exact); err != nil {
		c.logger.WithError(err).WithField("url", url).Debug("1080p exact download failed, trying best <=1080p")
		if err := c.runDownload(url, outputTemplate, format1080Max); err != nil {
			return fmt.Errorf("download failed after both quality attempts: %w", err)
		}
	}
	return nil
}

// runDownload performs a single download attempt with the given format string
func (c *Client) runDownload(url, outputTemplate, format string) error {
	ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
	defer cancel()

	args := []string{
		"--format", format,
		"--output", outputTemplate,
		"--no-playlist",
		"--recode-video", "mp4",
		"--postprocessor-args", "ffmpeg:-movflags +faststart",
	}
	if !c.debug {
		args = append(args, "--quiet", "--no-warnings")
	}
	args = append(args, "--", url)

	c.logger.WithFields(logrus.Fields{
		"url":    url,
		"format": format,
	}).Debug("Running yt-dlp download")

	output, err := exec.CommandContext(ctx, ytDlpCmd, args...).CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("yt-dlp download timed out")
	}
	if err != nil {
		if c.debug && len(output) > 0 {
			c.logger.WithField("output", string(output)).Debug("yt-dlp download output")
		}
		return fmt.Errorf("yt-dlp exited with error: %w", err)
	}

	return nil
}
