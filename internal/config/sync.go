package config

import (
	"fmt"
	"time"
)

// SyncConfig holds synchronization configuration
type SyncConfig struct {
	Interval           time.Duration
	MaxConcurrentSyncs int
	OnStartup          bool
}

// DefaultSyncConfig returns the default sync configuration
func DefaultSyncConfig() *SyncConfig {
	return &SyncConfig{
		Interval:           minutes(60),
		MaxConcurrentSyncs: 1,
		OnStartup:          true,
	}
}

func (c SyncConfig) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("SYNC_INTERVAL_MINUTES must be positive, got %s", c.Interval)
	}
	if c.MaxConcurrentSyncs < 1 {
		return fmt.Errorf("SYNC_MAX_CONCURRENT must be at least 1, got %d", c.MaxConcurrentSyncs)
	}
	return nil
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
