package models

// SeriesStatus represents the airing status reported by Sonarr
type SeriesStatus string

const (
	SeriesStatusUpcoming   SeriesStatus = "upcoming"
	SeriesStatusContinuing SeriesStatus = "continuing"
	SeriesStatusEnded      SeriesStatus = "ended"
)

// TrailerStatus represents the outcome of a trailer pass for a show
type TrailerStatus string

const (
	TrailerStatusDownloaded TrailerStatus = "downloaded" // Searched, found and downloaded this run
	TrailerStatusExisting   TrailerStatus = "existing"   // File already on disk, search skipped
	TrailerStatusNotFound   TrailerStatus = "not_found"  // No candidate survived filtering
	TrailerStatusFailed     TrailerStatus = "failed"     // Download failed after both quality attempts
)
