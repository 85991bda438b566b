package utils

import "strings"

// ChannelBlocklist holds uploader names whose videos are never
// considered for trailer selection
type ChannelBlocklist struct {
	channels []string
}

// NewChannelBlocklist builds a blocklist from configured channel names,
// dropping empty entries
func NewChannelBlocklist(channels []string) *ChannelBlocklist {
	cleaned := make([]string, 0, len(channels))
	for _, ch := range channels {
		ch = strings.TrimSpace(ch)
		if ch != "" {
			cleaned = append(cleaned, ch)
		}
	}
	return &ChannelBlocklist{channels: cleaned}
}

// IsBlocked checks if an uploader matches any blocklist entry
// Returns (isBlocked, matchedChannel)
func (b *ChannelBlocklist) IsBlocked(uploader string) (bool, string) {
	uploaderLower := strings.ToLower(uploader)

	for _, ch := range b.channels {
		if strings.Contains(uploaderLower, strings.ToLower(ch)) {
			return true, ch
		}
	}

	return false, ""
}
