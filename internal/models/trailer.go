package models

import (
	"fmt"
	"time"
)

// VideoCandidate is one flat search result from yt-dlp
type VideoCandidate struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Uploader string   `json:"uploader"`
	Duration *float64 `json:"duration"` // seconds, nil when YouTube does not report it
}

// URL returns the watch URL for the candidate
func (v VideoCandidate) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// TrailerSelection is the best-scoring candidate for a show
type TrailerSelection struct {
	Candidate VideoCandidate
	Score     int
}

// DurationString renders the candidate duration as m:ss, or "Unknown"
func (s TrailerSelection) DurationString() string {
	if s.Candidate.Duration == nil || *s.Candidate.Duration <= 0 {
		return "Unknown"
	}
	d := int(*s.Candidate.Duration)
	return fmt.Sprintf("%d:%02d", d/60, d%60)
}

// TrailerRecord is the persisted outcome of a trailer pass for one show
type TrailerRecord struct {
	ID         uint64 `boltholdKey:"ID"`
	TVDBID     int    `boltholdIndex:"TVDBID"`
	ShowTitle  string
	AirDate    string
	Status     TrailerStatus
	VideoID    string
	VideoTitle string
	Uploader   string
	Score      int
	Error      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RunReport is the persisted summary of one pipeline run
type RunReport struct {
	ID              uint64 `boltholdKey:"ID"`
	StartedAt       time.Time
	FinishedAt      time.Time
	ShowsFound      int
	Downloaded      int
	SkippedExisting int
	Failed          int
}
