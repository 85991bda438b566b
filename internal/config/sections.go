package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config keys whose values are consumed by the synthesizer itself and
// must never leak into the emitted styling blocks.
const (
	KeyEnable          = "enable"
	KeyDateFormat      = "date_format"
	KeyUseText         = "use_text"
	KeyCapitalizeDates = "capitalize_dates"
	KeyCollectionName  = "collection_name"
	KeySortTitle       = "sort_title"
)

// Section config keys in the settings file.
const (
	sectionBackdrop   = "backdrop_upcoming_shows"
	sectionText       = "text_upcoming_shows"
	sectionCollection = "collection_upcoming_shows"
)

// Entry is a single key/value pair from a styling section
type Entry struct {
	Key   string
	Value interface{}
}

// Section is a config section with an enable flag and arbitrary extra
// styling keys, in file declaration order
type Section struct {
	Enabled bool
	Extras  []Entry
}

// Sections bundles the three styling sections read from the settings file
type Sections struct {
	Backdrop   Section
	Text       Section
	Collection Section
}

// Get returns the value for key and whether it was present
func (s Section) Get(key string) (interface{}, bool) {
	for _, e := range s.Extras {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// GetString returns the string value for key, or fallback
func (s Section) GetString(key, fallback string) string {
	if v, ok := s.Get(key); ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return fallback
}

// GetBool returns the boolean value for key, or fallback
func (s Section) GetBool(key string, fallback bool) bool {
	if v, ok := s.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// Without returns the section's entries minus the named keys,
// preserving relative order
func (s Section) Without(keys ...string) []Entry {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}

	var kept []Entry
	for _, e := range s.Extras {
		if !drop[e.Key] {
			kept = append(kept, e)
		}
	}
	return kept
}

// LoadSections decodes the three styling sections from the settings
// file, keeping the key order the file declares
func LoadSections(path string) (*Sections, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	sections := &Sections{
		Backdrop:   Section{Enabled: true},
		Text:       Section{Enabled: true},
		Collection: Section{Enabled: true},
	}
	if len(doc.Content) == 0 {
		return sections, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return sections, nil
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value := root.Content[i+1]

		switch key {
		case sectionBackdrop:
			sections.Backdrop = decodeSection(value)
		case sectionText:
			sections.Text = decodeSection(value)
		case sectionCollection:
			sections.Collection = decodeSection(value)
		}
	}

	return sections, nil
}

// decodeSection turns a YAML mapping node into a Section, separating
// the enable flag from the remaining keys
func decodeSection(node *yaml.Node) Section {
	section := Section{Enabled: true}
	if node.Kind != yaml.MappingNode {
		return section
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		valueNode := node.Content[i+1]

		var value interface{}
		if err := valueNode.Decode(&value); err != nil {
			continue
		}

		if key == KeyEnable {
			if b, ok := value.(bool); ok {
				section.Enabled = b
			}
			continue
		}

		section.Extras = append(section.Extras, Entry{Key: key, Value: value})
	}

	return section
}
