package service

import (
	"context"

	"relay_control/internal/models"
	"relay_control/internal/repository"
	"relay_control/internal/view"
)

type MonitoringService struct {
	snapshots repository.SnapshotRepo
}

func NewMonitoringService(snapshots repository.SnapshotRepo) *MonitoringService {
	return &MonitoringService{snapshots: snapshots}
}

// GetSnapshot returns the latest snapshot as stored.
func (s *MonitoringService) GetSnapshot(ctx context.Context) models.DeviceSnapshot {
	return s.snapshots.Load()
}

// GetState returns the latest snapshot rendered for the dashboard.
func (s *MonitoringService) GetState(ctx context.Context) view.State {
	return view.Render(s.snapshots.Load())
}
