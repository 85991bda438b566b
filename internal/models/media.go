package models

import "time"

// Series represents a series record from the Sonarr API
type Series struct {
	ID        int          `json:"id"`
	Title     string       `json:"title"`
	Status    SeriesStatus `json:"status"`
	Monitored bool         `json:"monitored"`
	TVDBID    int          `json:"tvdbId"`
	IMDBID    string       `json:"imdbId"`
	Year      int          `json:"year"`
	Path      string       `json:"path"`
}

// Episode represents a single episode record from the Sonarr API
type Episode struct {
	SeriesID      int    `json:"seriesId"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	AirDateUTC    string `json:"airDateUtc"`
}

// Show is an upcoming series whose first episode airs within the
// configured window. Built once per run and never mutated afterwards.
type Show struct {
	Title   string
	TVDBID  int
	IMDBID  string
	Year    int
	Path    string
	AirDate string // local calendar date, YYYY-MM-DD
	AirTime time.Time
}
