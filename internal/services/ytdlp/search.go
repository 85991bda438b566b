package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kometa-tools/utsk/internal/models"
)

// Search runs a bounded flat-playlist search and returns the parsed
// candidates in result order. A timeout, non-zero exit, or empty output
// is an error; unparsable output lines are skipped silently.
func (c *Client) Search(term string, limit int) ([]models.VideoCandidate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	query := fmt.Sprintf("%s%d:%s", searchPrefix, limit, term)
	cmd := exec.CommandContext(ctx, ytDlpCmd, "--dump-json", "--no-warnings", "--flat-playlist", query)

	c.logger.WithField("query", query).Debug("Running yt-dlp search")

	output, err := cmd.Output()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("yt-dlp search timed out for %q", term)
	}
	if err != nil {
		return nil, fmt.Errorf("yt-dlp search failed for %q: %w", term, err)
	}
	if len(bytes.TrimSpace(output)) == 0 {
		return nil, fmt.Errorf("yt-dlp returned no results for %q", term)
	}

	return ParseSearchOutput(output), nil
}

// ParseSearchOutput parses newline-delimited JSON records from yt-dlp,
// dropping lines that fail to parse
func ParseSearchOutput(output []byte) []models.VideoCandidate {
	var candidates []models.VideoCandidate

	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var candidate models.VideoCandidate
		if err := json.Unmarshal([]byte(line), &candidate); err != nil {
			continue
		}
		candidates = append(candidates, candidate)
	}

	return candidates
}
