package fplconfig

import (
	"context"
	"time"
)

// Namespace key under which the config bundle is persisted, shared by all
// store implementations.
const snapshotKey = "fpl_dynamic_config"

// Snapshot is the persisted form of the config bundle: a single blob plus
// its write timestamp.
type Snapshot struct {
	Data      Bundle    `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Store persists the derived configuration bundle across process restarts.
// Load returns (nil, nil) when no snapshot exists; parse failures surface
// as errors the resolver treats as cache-empty, never fatal.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}
