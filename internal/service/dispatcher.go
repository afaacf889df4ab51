package service

import (
	"context"

	"relay_control/internal/logger"
	"relay_control/internal/models"
	"relay_control/internal/repository"

	"github.com/google/uuid"
)

type DispatcherService struct {
	snapshots repository.SnapshotRepo
	device    repository.DeviceRepo
	poller    Poller
	log       *logger.Logger
}

func NewDispatcherService(snapshots repository.SnapshotRepo, dev repository.DeviceRepo, poller Poller, log *logger.Logger) *DispatcherService {
	return &DispatcherService{snapshots: snapshots, device: dev, poller: poller, log: log}
}

// SendCommand posts action for relayID and then polls once, whatever the
// outcome. Local state is never flipped ahead of the device. A transport
// failure marks the device disconnected and is returned; nothing is retried.
// The device calls outlive ctx: a caller that goes away mid-dispatch does
// not abort a command the relay may already have applied, nor its refresh.
func (s *DispatcherService) SendCommand(ctx context.Context, relayID int, action string) error {
	if !models.ValidRelay(relayID) {
		return ErrInvalidRelay
	}
	if !models.ValidAction(action) {
		return ErrInvalidAction
	}

	ctx = context.WithoutCancel(ctx)
	log := s.log.With("dispatch_id", uuid.NewString(), "relay", relayID, "action", action)
	code, err := s.device.Send(ctx, models.RelayCommand{Relay: relayID, Action: action})
	switch {
	case err != nil:
		prev, snap := s.snapshots.MarkDisconnected()
		logTransition(s.log, prev, snap.Connectivity, err)
		log.Errorw("relay_command_failed", "err", err)
	case code < 200 || code > 299:
		log.Warnw("relay_command_rejected", "http_status", code)
	default:
		log.Infow("relay_command_sent", "http_status", code)
	}

	_, _ = s.poller.Poll(ctx)
	return err
}

// Toggle reads the relay's current state and sends its opposite. It
// returns the action that was sent.
func (s *DispatcherService) Toggle(ctx context.Context, relayID int) (string, error) {
	if !models.ValidRelay(relayID) {
		return "", ErrInvalidRelay
	}
	action := s.snapshots.Load().Relays[relayID].ToggleAction()
	return action, s.SendCommand(ctx, relayID, action)
}
