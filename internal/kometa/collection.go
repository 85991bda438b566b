package kometa

import (
	"fmt"
	"os"

	"github.com/kometa-tools/utsk/internal/config"
	"github.com/kometa-tools/utsk/internal/models"
	"gopkg.in/yaml.v3"
)

const defaultCollectionName = "Upcoming Shows"

// WriteCollection writes the collection document for the given shows to path
func (s *Synthesizer) WriteCollection(path string, shows []models.Show) error {
	doc := s.buildCollection(shows)
	data, err := marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to render collection document: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// buildCollection assembles the collections document. Key order inside
// the collection block is a hard contract for downstream consumers:
// summary, sort_title when configured, the remaining config keys in
// declaration order, then sync_mode and tvdb_show last.
func (s *Synthesizer) buildCollection(shows []models.Show) *yaml.Node {
	name := s.cfg.Collection.GetString(config.KeyCollectionName, defaultCollectionName)

	var ids []int
	for _, show := range shows {
		if show.TVDBID != 0 {
			ids = append(ids, show.TVDBID)
		}
	}

	var block *yaml.Node
	switch {
	case len(shows) == 0:
		block = emptyCollectionBlock(name, true)
	case len(ids) == 0:
		block = emptyCollectionBlock(name, false)
	default:
		block = s.populatedCollectionBlock(ids)
	}

	collections := mappingNode()
	appendPair(collections, name, block)

	doc := mappingNode()
	appendPair(doc, "collections", collections)
	return doc
}

// emptyCollectionBlock is the degenerate form emitted when there is
// nothing to collect: it clears labels without building anything.
// smartLabel distinguishes the no-shows case from the no-ids case.
func emptyCollectionBlock(name string, smartLabel bool) *yaml.Node {
	all := mappingNode()
	appendPair(all, "label", scalarNode(name))

	plexSearch := mappingNode()
	appendPair(plexSearch, "all", all)

	block := mappingNode()
	appendPair(block, "plex_search", plexSearch)
	if smartLabel {
		appendPair(block, "item_label.remove", scalarNode(name))
		appendPair(block, "smart_label", scalarNode("random"))
	} else {
		appendPair(block, "non_item_remove_label", scalarNode(name))
	}
	appendPair(block, "build_collection", scalarNode(false))
	return block
}

// populatedCollectionBlock builds the ordered collection body
func (s *Synthesizer) populatedCollectionBlock(ids []int) *yaml.Node {
	block := mappingNode()

	summary := fmt.Sprintf("Shows with their first episode premiering within %d days", s.cfg.FutureDays)
	appendPair(block, "summary", scalarNode(summary))

	if sortTitle, ok := s.cfg.Collection.Get(config.KeySortTitle); ok {
		appendPair(block, config.KeySortTitle, quotedNode(sortTitle))
	}

	appendEntries(block, s.cfg.Collection.Without(config.KeyCollectionName, config.KeySortTitle))

	appendPair(block, "sync_mode", scalarNode("sync"))
	appendPair(block, "tvdb_show", scalarNode(joinIDs(ids)))
	return block
}
