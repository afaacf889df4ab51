package service

import (
	"context"
	"errors"

	"relay_control/internal/logger"
	"relay_control/internal/models"
	"relay_control/internal/repository"
	"relay_control/internal/view"
)

var (
	ErrInvalidRelay  = errors.New("invalid relay: must be 1 or 2")
	ErrInvalidAction = errors.New("invalid action: must be ON, OFF or RESET")
)

// Poller keeps the shared snapshot in sync with the device.
// Run blocks until ctx is cancelled.
type Poller interface {
	Poll(ctx context.Context) (models.DeviceSnapshot, error)
	Run(ctx context.Context)
}

// Dispatcher sends control commands; every dispatch ends with one poll.
type Dispatcher interface {
	SendCommand(ctx context.Context, relayID int, action string) error
	Toggle(ctx context.Context, relayID int) (string, error)
}

// Monitoring exposes the read side of the snapshot.
type Monitoring interface {
	GetSnapshot(ctx context.Context) models.DeviceSnapshot
	GetState(ctx context.Context) view.State
}

type Service struct {
	Poller
	Dispatcher
	Monitoring
}

// NewService wires the repository layer into the concrete services.
func NewService(repos *repository.Repository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	poller := NewPollerService(repos.Snapshot, repos.Device, log)
	return &Service{
		Poller:     poller,
		Dispatcher: NewDispatcherService(repos.Snapshot, repos.Device, poller, log),
		Monitoring: NewMonitoringService(repos.Snapshot),
	}
}

// logTransition records connectivity changes; steady states stay quiet.
func logTransition(log *logger.Logger, prev, cur models.Connectivity, cause error) {
	if prev == cur {
		return
	}
	if cause != nil {
		log.Warnw("device_connectivity_changed", "from", prev, "to", cur, "err", cause)
		return
	}
	log.Infow("device_connectivity_changed", "from", prev, "to", cur)
}
