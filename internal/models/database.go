package models

import (
	"fmt"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Database wraps the bolthold store holding run history
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// TrailerRecord operations

// UpsertTrailerRecord creates or updates the trailer record for a show,
// keyed by TVDB id so a show keeps a single record across runs
func (db *Database) UpsertTrailerRecord(record *TrailerRecord) error {
	var existing []*TrailerRecord
	err := db.store.Find(&existing, bolthold.Where("TVDBID").Eq(record.TVDBID))
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		record.ID = existing[0].ID
		record.CreatedAt = existing[0].CreatedAt
		record.UpdatedAt = time.Now()
		return db.store.Update(record.ID, record)
	}

	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	return db.store.Insert(bolthold.NextSequence(), record)
}

// GetTrailerRecord retrieves the trailer record for a TVDB id
func (db *Database) GetTrailerRecord(tvdbID int) (*TrailerRecord, error) {
	var record TrailerRecord
	err := db.store.FindOne(&record, bolthold.Where("TVDBID").Eq(tvdbID))
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetAllTrailerRecords retrieves every trailer record
func (db *Database) GetAllTrailerRecords() ([]*TrailerRecord, error) {
	var records []*TrailerRecord
	err := db.store.Find(&records, nil)
	return records, err
}

// PruneTrailerRecords deletes records for shows no longer in the
// upcoming window, keeping the history aligned with the tracker
func (db *Database) PruneTrailerRecords(activeTVDBIDs []int) (int, error) {
	active := make(map[int]bool, len(activeTVDBIDs))
	for _, id := range activeTVDBIDs {
		active[id] = true
	}

	var records []*TrailerRecord
	if err := db.store.Find(&records, nil); err != nil {
		return 0, err
	}

	pruned := 0
	for _, record := range records {
		if active[record.TVDBID] {
			continue
		}
		if err := db.store.Delete(record.ID, &TrailerRecord{}); err != nil {
			return pruned, err
		}
		pruned++
	}

	return pruned, nil
}

// RunReport operations

// CreateRunReport persists the summary of a finished run
func (db *Database) CreateRunReport(report *RunReport) error {
	return db.store.Insert(bolthold.NextSequence(), report)
}

// GetLastRunReport retrieves the most recent run report, or nil when
// the store is empty
func (db *Database) GetLastRunReport() (*RunReport, error) {
	var reports []*RunReport
	err := db.store.Find(&reports, nil)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}

	last := reports[0]
	for _, report := range reports[1:] {
		if report.StartedAt.After(last.StartedAt) {
			last = report
		}
	}
	return last, nil
}
