package controllers

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kometa-tools/utsk/internal/models"
	"github.com/kometa-tools/utsk/internal/utils"
)

type fakeSearcher struct {
	results  map[string][]models.VideoCandidate
	errTerms map[string]error
	calls    []string
}

func (f *fakeSearcher) Search(term string, limit int) ([]models.VideoCandidate, error) {
	f.calls = append(f.calls, term)
	if err := f.errTerms[term]; err != nil {
		return nil, err
	}
	return f.results[term], nil
}

type fakeDownloader struct {
	calls []string
	err   error
}

// Download simulates yt-dlp by materializing the mp4 the output
// template describes
func (f *fakeDownloader) Download(url, outputTemplate string) error {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return f.err
	}
	path := strings.Replace(outputTemplate, "%(ext)s", "mp4", 1)
	return os.WriteFile(path, []byte("video"), 0644)
}

func seconds(d float64) *float64 {
	return &d
}

func newTestTrailerController(t *testing.T, searcher Searcher, downloader Downloader, blocked []string) *TrailerController {
	t.Helper()
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "utsk.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewTrailerController(searcher, downloader, utils.NewChannelBlocklist(blocked), db, testLogger())
}

func TestSearchTerms(t *testing.T) {
	terms := searchTerms("Foo", 2025)
	want := []string{
		"Foo 2025 trailer",
		"Foo 2025 official trailer",
		"Foo 2025 teaser",
		"Foo trailer",
		"Foo official trailer",
		"Foo teaser",
		"Foo official teaser",
		"Foo first look",
	}
	if len(terms) != len(want) {
		t.Fatalf("got %d terms, want %d", len(terms), len(want))
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("terms[%d] = %q, want %q", i, terms[i], want[i])
		}
	}

	if got := searchTerms("Foo", 0); len(got) != 5 {
		t.Errorf("without a year got %d terms, want 5", len(got))
	}
}

func TestSelectTrailerScoring(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]models.VideoCandidate{
			"Foo trailer": {
				{ID: "amateur", Title: "Foo Trailer", Uploader: "Random Clips"},
				{ID: "studio", Title: "Foo Official Trailer", Uploader: "Netflix"},
			},
		},
	}
	ctrl := newTestTrailerController(t, searcher, &fakeDownloader{}, nil)

	selection := ctrl.SelectTrailer("Foo", 0)
	if selection == nil {
		t.Fatal("expected a selection")
	}
	if selection.Candidate.ID != "studio" {
		t.Errorf("selected %q, want the official-channel upload", selection.Candidate.ID)
	}
	// official +3, trailer +2, channel +3
	if selection.Score != 8 {
		t.Errorf("score = %d, want 8", selection.Score)
	}
}

func TestSelectTrailerYearBonus(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]models.VideoCandidate{
			"Foo trailer": {
				{ID: "dated", Title: "Foo Trailer 2025", Uploader: "Some Channel"},
				{ID: "undated", Title: "Foo Trailer", Uploader: "Some Channel"},
			},
		},
	}
	ctrl := newTestTrailerController(t, searcher, &fakeDownloader{}, nil)

	selection := ctrl.SelectTrailer("Foo", 2025)
	if selection == nil || selection.Candidate.ID != "dated" {
		t.Fatalf("expected the year-matching candidate, got %+v", selection)
	}
}

func TestSelectTrailerFirstSeenWinsTies(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]models.VideoCandidate{
			"Foo trailer": {
				{ID: "first", Title: "Foo Trailer", Uploader: "Channel A"},
				{ID: "second", Title: "Foo Trailer", Uploader: "Channel B"},
			},
		},
	}
	ctrl := newTestTrailerController(t, searcher, &fakeDownloader{}, nil)

	selection := ctrl.SelectTrailer("Foo", 0)
	if selection == nil {
		t.Fatal("expected a selection")
	}
	if selection.Candidate.ID != "first" {
		t.Errorf("tie went to %q, want the first-seen candidate", selection.Candidate.ID)
	}
}

func TestSelectTrailerFilters(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]models.VideoCandidate{
			"Foo trailer": {
				{ID: "react", Title: "Foo Trailer REACTION", Uploader: "Fans"},
				{ID: "review", Title: "Foo trailer review and breakdown", Uploader: "Critic"},
				{ID: "short", Title: "Foo Trailer", Uploader: "Clips", Duration: seconds(5)},
				{ID: "long", Title: "Foo Trailer", Uploader: "Clips", Duration: seconds(1200)},
				{ID: "other", Title: "Bar Trailer", Uploader: "Clips"},
				{Title: "Foo Trailer", Uploader: "Clips"},
				{ID: "blocked", Title: "Foo Trailer", Uploader: "Movieclips Trailers"},
			},
		},
	}
	ctrl := newTestTrailerController(t, searcher, &fakeDownloader{}, []string{"movieclips"})

	if selection := ctrl.SelectTrailer("Foo", 0); selection != nil {
		t.Errorf("expected every candidate to be filtered out, got %q", selection.Candidate.ID)
	}
}

func TestSelectTrailerUnknownDurationPasses(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]models.VideoCandidate{
			"Foo trailer": {{ID: "flat", Title: "Foo Trailer", Uploader: "Clips"}},
		},
	}
	ctrl := newTestTrailerController(t, searcher, &fakeDownloader{}, nil)

	if selection := ctrl.SelectTrailer("Foo", 0); selection == nil {
		t.Fatal("candidate without a duration should be accepted")
	}
}

func TestSelectTrailerSearchErrorSkipped(t *testing.T) {
	searcher := &fakeSearcher{
		errTerms: map[string]error{"Foo trailer": errors.New("timed out")},
		results: map[string][]models.VideoCandidate{
			"Foo official trailer": {{ID: "ok", Title: "Foo Official Trailer", Uploader: "Netflix"}},
		},
	}
	ctrl := newTestTrailerController(t, searcher, &fakeDownloader{}, nil)

	selection := ctrl.SelectTrailer("Foo", 0)
	if selection == nil || selection.Candidate.ID != "ok" {
		t.Fatalf("expected later variants to run after a failed search, got %+v", selection)
	}
}

func TestProcessShowsDownload(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]models.VideoCandidate{
			"Foo trailer": {{ID: "abc123", Title: "Foo Official Trailer", Uploader: "Netflix"}},
		},
	}
	downloader := &fakeDownloader{}
	ctrl := newTestTrailerController(t, searcher, downloader, nil)

	show := models.Show{Title: "Foo", TVDBID: 101, Path: t.TempDir(), AirDate: "2025-03-07"}
	summary := ctrl.ProcessShows([]models.Show{show})

	if summary.Downloaded != 1 || summary.Failed != 0 || summary.SkippedExisting != 0 {
		t.Fatalf("summary = %+v, want one download", summary)
	}
	if len(downloader.calls) != 1 || downloader.calls[0] != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("download calls = %v", downloader.calls)
	}
	if _, err := os.Stat(TrailerPath(show)); err != nil {
		t.Errorf("expected trailer at %s: %v", TrailerPath(show), err)
	}

	record, err := ctrl.db.GetTrailerRecord(101)
	if err != nil {
		t.Fatalf("failed to load record: %v", err)
	}
	if record.Status != models.TrailerStatusDownloaded || record.VideoID != "abc123" {
		t.Errorf("record = %+v, want downloaded abc123", record)
	}
}

func TestProcessShowsExisting(t *testing.T) {
	show := models.Show{Title: "Foo", TVDBID: 101, Path: t.TempDir()}

	path := TrailerPath(show)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	searcher := &fakeSearcher{}
	ctrl := newTestTrailerController(t, searcher, &fakeDownloader{}, nil)

	summary := ctrl.ProcessShows([]models.Show{show})
	if summary.SkippedExisting != 1 || summary.Downloaded != 0 {
		t.Fatalf("summary = %+v, want one existing skip", summary)
	}
	if len(searcher.calls) != 0 {
		t.Errorf("existing trailer must short-circuit the search, saw %v", searcher.calls)
	}
}

func TestProcessShowsNoPath(t *testing.T) {
	ctrl := newTestTrailerController(t, &fakeSearcher{}, &fakeDownloader{}, nil)

	summary := ctrl.ProcessShows([]models.Show{{Title: "Foo", TVDBID: 101}})
	if summary.Failed != 1 {
		t.Fatalf("summary = %+v, want one failure", summary)
	}

	record, err := ctrl.db.GetTrailerRecord(101)
	if err != nil {
		t.Fatalf("failed to load record: %v", err)
	}
	if record.Status != models.TrailerStatusFailed {
		t.Errorf("record status = %q, want %q", record.Status, models.TrailerStatusFailed)
	}
}

func TestProcessShowsNotFound(t *testing.T) {
	ctrl := newTestTrailerController(t, &fakeSearcher{}, &fakeDownloader{}, nil)

	show := models.Show{Title: "Foo", TVDBID: 101, Path: t.TempDir()}
	summary := ctrl.ProcessShows([]models.Show{show})
	if summary.Failed != 1 {
		t.Fatalf("summary = %+v, want one failure", summary)
	}

	record, err := ctrl.db.GetTrailerRecord(101)
	if err != nil {
		t.Fatalf("failed to load record: %v", err)
	}
	if record.Status != models.TrailerStatusNotFound {
		t.Errorf("record status = %q, want %q", record.Status, models.TrailerStatusNotFound)
	}
}

func TestProcessShowsDownloadFailure(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]models.VideoCandidate{
			"Foo trailer": {{ID: "abc123", Title: "Foo Trailer", Uploader: "Netflix"}},
		},
	}
	ctrl := newTestTrailerController(t, searcher, &fakeDownloader{err: errors.New("403")}, nil)

	show := models.Show{Title: "Foo", TVDBID: 101, Path: t.TempDir()}
	summary := ctrl.ProcessShows([]models.Show{show})
	if summary.Failed != 1 || summary.Downloaded != 0 {
		t.Fatalf("summary = %+v, want one failure", summary)
	}

	record, err := ctrl.db.GetTrailerRecord(101)
	if err != nil {
		t.Fatalf("failed to load record: %v", err)
	}
	if record.Status != models.TrailerStatusFailed || record.VideoID != "abc123" {
		t.Errorf("record = %+v, want failed with the attempted video", record)
	}
}
