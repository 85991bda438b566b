package kometa

import (
	"fmt"
	"os"
	"sort"

	"github.com/kometa-tools/utsk/internal/config"
	"github.com/kometa-tools/utsk/internal/models"
	"gopkg.in/yaml.v3"
)

// emptyOverlaySentinel is written instead of a YAML document when the
// run found no shows
const emptyOverlaySentinel = "#No matching shows found"

// Text-section keys consumed by the synthesizer, never emitted.
var textControlKeys = []string{config.KeyDateFormat, config.KeyUseText, config.KeyCapitalizeDates}

// WriteOverlay writes the overlay document for the given shows to path
func (s *Synthesizer) WriteOverlay(path string, shows []models.Show) error {
	if len(shows) == 0 {
		return os.WriteFile(path, []byte(emptyOverlaySentinel), 0644)
	}

	doc := s.buildOverlay(shows)
	data, err := marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to render overlay document: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// buildOverlay assembles the overlays mapping: one backdrop block over
// every show, then one text block per distinct air date
func (s *Synthesizer) buildOverlay(shows []models.Show) *yaml.Node {
	allIDs, datesToIDs := groupShows(shows)

	overlays := mappingNode()

	if s.cfg.Backdrop.Enabled && len(allIDs) > 0 {
		styling := mappingNode()
		appendEntries(styling, s.cfg.Backdrop.Extras)
		appendPair(styling, "name", scalarNode("backdrop"))

		block := mappingNode()
		appendPair(block, "overlay", styling)
		appendPair(block, "tvdb_show", scalarNode(joinIDs(allIDs)))
		appendPair(overlays, "backdrop", block)
	}

	if s.cfg.Text.Enabled && len(allIDs) > 0 {
		s.appendTextBlocks(overlays, allIDs, datesToIDs)
	}

	doc := mappingNode()
	appendPair(doc, "overlays", overlays)
	return doc
}

// appendTextBlocks emits one dated text block per air date in
// ascending date order, or a single fallback block when no show has a
// known air date
func (s *Synthesizer) appendTextBlocks(overlays *yaml.Node, allIDs []int, datesToIDs map[string][]int) {
	dateFormat := s.cfg.Text.GetString(config.KeyDateFormat, "yyyy-mm-dd")
	useText := s.cfg.Text.GetString(config.KeyUseText, "Coming Soon")
	capitalize := s.cfg.Text.GetBool(config.KeyCapitalizeDates, true)
	styling := s.cfg.Text.Without(textControlKeys...)

	if len(datesToIDs) == 0 {
		block := textBlock(styling, fmt.Sprintf("text(%s)", useText), allIDs)
		appendPair(overlays, "UTSK_upcoming_shows", block)
		return
	}

	dates := make([]string, 0, len(datesToIDs))
	for date := range datesToIDs {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		formatted := s.formatDate(date, dateFormat, capitalize)
		block := textBlock(styling, fmt.Sprintf("text(%s %s)", useText, formatted), datesToIDs[date])
		appendPair(overlays, "UTSK_"+formatted, block)
	}
}

// textBlock builds one overlay block with injected name and id list
func textBlock(styling []config.Entry, name string, ids []int) *yaml.Node {
	overlay := mappingNode()
	appendEntries(overlay, styling)
	appendPair(overlay, "name", scalarNode(name))

	block := mappingNode()
	appendPair(block, "overlay", overlay)
	appendPair(block, "tvdb_show", scalarNode(joinIDs(ids)))
	return block
}

// groupShows collects the full id set and the per-air-date id sets,
// excluding shows without an external identifier
func groupShows(shows []models.Show) ([]int, map[string][]int) {
	var allIDs []int
	seen := make(map[int]bool)
	datesToIDs := make(map[string][]int)

	for _, show := range shows {
		if show.TVDBID == 0 {
			continue
		}
		if !seen[show.TVDBID] {
			seen[show.TVDBID] = true
			allIDs = append(allIDs, show.TVDBID)
		}
		if show.AirDate != "" {
			datesToIDs[show.AirDate] = append(datesToIDs[show.AirDate], show.TVDBID)
		}
	}

	return allIDs, datesToIDs
}
