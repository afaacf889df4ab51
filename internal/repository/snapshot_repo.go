package repository

import (
	"sync"
	"time"

	"relay_control/internal/device"
	"relay_control/internal/models"
)

// SnapshotMemory keeps the current DeviceSnapshot in memory for the
// lifetime of the process. Writers are serialized; the last one wins.
type SnapshotMemory struct {
	mu   sync.RWMutex
	snap models.DeviceSnapshot
}

func NewSnapshotMemory() *SnapshotMemory {
	return &SnapshotMemory{snap: models.NewDeviceSnapshot()}
}

// Load returns a copy of the current snapshot.
func (r *SnapshotMemory) Load() models.DeviceSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap.Clone()
}

// Replace installs the relays and device info from rep and marks the
// device connected. Relays missing from rep are reset, not carried over.
func (r *SnapshotMemory) Replace(rep device.Report, at time.Time) (models.Connectivity, models.DeviceSnapshot) {
	next := models.NewDeviceSnapshot()
	for id, st := range rep.Relays {
		next.Relays[id] = st
	}
	next.Device = rep.Info
	next.Connected = true
	next.Connectivity = models.ConnectivityConnected
	next.UpdatedAt = at.UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.snap.Connectivity
	r.snap = next
	return prev, next.Clone()
}

// MarkDisconnected clears the connected flag and keeps the last known relays.
func (r *SnapshotMemory) MarkDisconnected() (models.Connectivity, models.DeviceSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.snap.Connectivity
	r.snap.Connected = false
	r.snap.Connectivity = models.ConnectivityDisconnected
	return prev, r.snap.Clone()
}
