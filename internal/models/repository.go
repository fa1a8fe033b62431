package models

import (
	"fmt"
	"time"
)

// Repository is a GitHub repository tracked by the service
type Repository struct {
	BaseModel
	Owner             string     `json:"owner" db:"owner" gorm:"not null"`
	Name              string     `json:"name" db:"name" gorm:"not null"`
	FullName          string     `json:"full_name" db:"full_name" gorm:"uniqueIndex;not null"`
	Description       string     `json:"description" db:"description"`
	StargazersCount   int        `json:"stargazers_count" db:"stargazers_count"`
	ForksCount        int        `json:"forks_count" db:"forks_count"`
	WatchersCount     int        `json:"watchers_count" db:"watchers_count"`
	OpenIssuesCount   int        `json:"open_issues_count" db:"open_issues_count"`
	HasUnseenReleases bool       `json:"has_unseen_releases" db:"has_unseen_releases" gorm:"not null"`
	LastSyncedAt      *time.Time `json:"last_synced_at" db:"last_synced_at"`

	// Releases is only populated when the caller asked for them
	Releases []*Release `json:"releases,omitempty" db:"-" gorm:"foreignKey:RepositoryID;constraint:OnDelete:CASCADE"`
}

// FullNameOf builds the owner/name identifier
func FullNameOf(owner, name string) string {
	return fmt.Sprintf("%s/%s", owner, name)
}
