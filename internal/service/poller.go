package service

import (
	"context"
	"errors"
	"time"

	"relay_control/internal/logger"
	"relay_control/internal/models"
	"relay_control/internal/repository"
)

// PollInterval is the fixed status cadence.
const PollInterval = 1 * time.Second

type PollerService struct {
	snapshots repository.SnapshotRepo
	device    repository.DeviceRepo
	log       *logger.Logger
	now       func() time.Time
	interval  time.Duration
}

func NewPollerService(snapshots repository.SnapshotRepo, dev repository.DeviceRepo, log *logger.Logger) *PollerService {
	return &PollerService{
		snapshots: snapshots,
		device:    dev,
		log:       log,
		now:       time.Now,
		interval:  PollInterval,
	}
}

// Poll fetches device status once. On success the snapshot is replaced
// wholesale; on failure only connectivity drops and the last known relays
// stay. The returned snapshot is the one written by this call.
// A poll cut short by cancellation of ctx says nothing about the device
// and leaves the snapshot untouched.
func (s *PollerService) Poll(ctx context.Context) (models.DeviceSnapshot, error) {
	rep, err := s.device.Status(ctx)
	if err != nil && errors.Is(err, context.Canceled) {
		s.log.Debugw("device_poll_canceled", "err", err)
		return s.snapshots.Load(), err
	}
	if err != nil {
		prev, snap := s.snapshots.MarkDisconnected()
		logTransition(s.log, prev, snap.Connectivity, err)
		s.log.Debugw("device_poll_failed", "err", err)
		return snap, err
	}
	prev, snap := s.snapshots.Replace(rep, s.now())
	logTransition(s.log, prev, snap.Connectivity, nil)
	return snap, nil
}

// Run polls once immediately and then on every tick until ctx is done.
// Each poll runs in its own goroutine: a slow device lets polls overlap and
// whichever response lands last owns the snapshot.
func (s *PollerService) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	if ctx.Err() != nil {
		return
	}
	s.log.Infow("poller_started", "interval", s.interval)
	go s.pollAsync(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Infow("poller_stopped")
			return
		case <-t.C:
			// both cases may be ready at once; never start a poll after stop
			if ctx.Err() != nil {
				continue
			}
			go s.pollAsync(ctx)
		}
	}
}

// errors are already folded into the snapshot by Poll
func (s *PollerService) pollAsync(ctx context.Context) {
	_, _ = s.Poll(ctx)
}
