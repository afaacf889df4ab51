package repository

import (
	"context"
	"time"

	"relay_control/internal/device"
	"relay_control/internal/models"
)

// SnapshotRepo owns the shared view-state cell. A successful poll replaces
// the whole snapshot; a failure only flips connectivity. Both return the
// connectivity held before the write so callers can log transitions.
type SnapshotRepo interface {
	Load() models.DeviceSnapshot
	Replace(rep device.Report, at time.Time) (prev models.Connectivity, cur models.DeviceSnapshot)
	MarkDisconnected() (prev models.Connectivity, cur models.DeviceSnapshot)
}

// DeviceRepo is the network link to the relay device.
type DeviceRepo interface {
	Status(ctx context.Context) (device.Report, error)
	Send(ctx context.Context, cmd models.RelayCommand) (int, error)
}

// Ensure implementation at compile time.
var (
	_ SnapshotRepo = (*SnapshotMemory)(nil)
	_ DeviceRepo   = (*device.Client)(nil)
)

type Repository struct {
	Snapshot SnapshotRepo
	Device   DeviceRepo
}

func NewRepository(dev DeviceRepo) *Repository {
	return &Repository{
		Snapshot: NewSnapshotMemory(),
		Device:   dev,
	}
}
