package repository

import (
	"context"
)

// ConfigRepository is a flat key/value store. Set upserts, last write wins.
// Get returns empty string for an unset key, not an error, matching how
// every caller treats an unconfigured channel: skip the delivery.
type ConfigRepository interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	GetAll(ctx context.Context) (map[string]string, error)
}
