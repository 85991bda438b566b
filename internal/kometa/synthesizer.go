package kometa

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kometa-tools/utsk/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Output file names inside the output directory.
const (
	OverlayFileName    = "UTSK_TV_UPCOMING_SHOWS_OVERLAYS.yml"
	CollectionFileName = "UTSK_TV_UPCOMING_SHOWS_COLLECTION.yml"
)

// Synthesizer assembles the Kometa overlay and collection documents.
// Both documents carry a hard key-order contract, so every mapping is
// built as an explicit yaml.Node tree rather than a Go map.
type Synthesizer struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSynthesizer creates a new document synthesizer
func NewSynthesizer(cfg *config.Config, logger *logrus.Logger) *Synthesizer {
	return &Synthesizer{
		cfg:    cfg,
		logger: logger,
	}
}

// node helpers

// scalarNode encodes a single value as a YAML node
func scalarNode(value interface{}) *yaml.Node {
	var n yaml.Node
	if err := n.Encode(value); err != nil {
		n = yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%v", value)}
	}
	return &n
}

// quotedNode encodes a string value with explicit double quotes
func quotedNode(value interface{}) *yaml.Node {
	n := scalarNode(value)
	n.Style = yaml.DoubleQuotedStyle
	return n
}

// mappingNode creates an empty mapping node
func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// appendPair appends one key/value pair to a mapping node
func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

// appendEntries appends config section entries in their declared order
func appendEntries(m *yaml.Node, entries []config.Entry) {
	for _, e := range entries {
		appendPair(m, e.Key, scalarNode(e.Value))
	}
}

// joinIDs renders a sorted id set as the comma-joined string Kometa
// expects for tvdb_show
func joinIDs(ids []int) string {
	sorted := make([]int, len(ids))
	copy(sorted, ids)
	sort.Ints(sorted)

	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ", ")
}

// marshal renders a document node with the two-space indent Kometa
// configs conventionally use
func marshal(doc *yaml.Node) ([]byte, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
