package models

import "time"

// Release is a single GitHub release of a tracked repository.
// Only Seen changes after creation.
type Release struct {
	BaseModel
	RepositoryID string    `json:"repository_id" db:"repository_id" gorm:"size:36;not null;index:idx_releases_repository_tag"`
	TagName      string    `json:"tag_name" db:"tag_name" gorm:"not null;index:idx_releases_repository_tag"`
	Name         string    `json:"name" db:"name"`
	Body         string    `json:"body" db:"body"`
	HTMLURL      string    `json:"html_url" db:"html_url" gorm:"column:html_url"`
	PublishedAt  time.Time `json:"published_at" db:"published_at" gorm:"not null"`
	Seen         bool      `json:"seen" db:"seen" gorm:"not null"`
}
