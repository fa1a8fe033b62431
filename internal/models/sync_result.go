package models

import "time"

// SyncFailure records one repository that could not be synced during a bulk run
type SyncFailure struct {
	RepositoryID string `json:"repository_id"`
	FullName     string `json:"full_name"`
	Error        string `json:"error"`
}

// BulkSyncResult summarizes a sync-all run
type BulkSyncResult struct {
	Total      int           `json:"total"`
	Synced     int           `json:"synced"`
	Failed     int           `json:"failed"`
	Failures   []SyncFailure `json:"failures,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}
