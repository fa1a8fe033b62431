package github

import (
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/github-release-tracker/internal/batch"
	"github.com/Kamar-Folarin/github-release-tracker/internal/config"
	"github.com/Kamar-Folarin/github-release-tracker/internal/db"
	"github.com/Kamar-Folarin/github-release-tracker/internal/models"
)

// Service bundles every caller-facing operation behind one value
type Service struct {
	RepositoryService
	SyncService
	SeenManager
}

// NewService wires the repository, sync and seen services over one store
func NewService(client ReleaseClient, store db.Store, cfg *config.SyncConfig, logger *logrus.Logger) *Service {
	processor := batch.NewProcessor[*models.Repository](cfg)
	return &Service{
		RepositoryService: NewRepositoryService(store, logger),
		SyncService:       NewSyncService(client, store, processor, logger),
		SeenManager:       NewSeenManager(store, logger),
	}
}
