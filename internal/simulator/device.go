package simulator

import (
	"context"
	"sync"
	"time"

	"relay_control/internal/logger"
	"relay_control/internal/models"
)

// ----------- Firmware constants -----------
const (
	CountdownTime   = 40 * time.Minute // relay auto-off timer
	DefaultDeviceID = "esp32_timer_relay_01"
	defaultRSSI     = -58
)

type relayTimer struct {
	active    bool
	startedAt time.Time
}

// Device emulates the relay firmware: two relays, each switching itself
// off CountdownTime after it was turned on or reset.
type Device struct {
	mu        sync.Mutex
	id        string
	relays    map[int]*relayTimer
	offline   bool
	countdown time.Duration
	now       func() time.Time
	log       *logger.Logger
}

// NewDevice returns a device with both relays off.
func NewDevice(id string, log *logger.Logger) *Device {
	if id == "" {
		id = DefaultDeviceID
	}
	if log == nil {
		log = logger.Nop()
	}
	relays := make(map[int]*relayTimer, len(models.RelayIDs))
	for _, rid := range models.RelayIDs {
		relays[rid] = &relayTimer{}
	}
	return &Device{
		id:        id,
		relays:    relays,
		countdown: CountdownTime,
		now:       time.Now,
		log:       log,
	}
}

// statusDoc mirrors the firmware's /api/status body.
type statusDoc struct {
	DeviceID      string      `json:"device_id"`
	WifiConnected bool        `json:"wifi_connected"`
	WifiRSSI      int         `json:"wifi_rssi"`
	Relay1        relayStatus `json:"relay1"`
	Relay2        relayStatus `json:"relay2"`
}

type relayStatus struct {
	Active           bool `json:"active"`
	RemainingSeconds *int `json:"remaining_seconds,omitempty"` // only while active
}

// Status snapshots the device the way the firmware reports it.
func (d *Device) Status() statusDoc {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	return statusDoc{
		DeviceID:      d.id,
		WifiConnected: true,
		WifiRSSI:      defaultRSSI,
		Relay1:        d.relayStatusLocked(models.Relay1, now),
		Relay2:        d.relayStatusLocked(models.Relay2, now),
	}
}

func (d *Device) relayStatusLocked(id int, now time.Time) relayStatus {
	r := d.relays[id]
	if !r.active {
		return relayStatus{}
	}
	remaining := int(r.startedAt.Add(d.countdown).Sub(now) / time.Second)
	if remaining < 0 {
		remaining = 0
	}
	return relayStatus{Active: true, RemainingSeconds: &remaining}
}

// Apply executes a control action on one relay.
func (d *Device) Apply(relay int, action string) error {
	if !models.ValidRelay(relay) {
		return errInvalidRelay
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	r := d.relays[relay]
	switch action {
	case models.ActionOn:
		r.active = true
		r.startedAt = d.now()
	case models.ActionOff:
		r.active = false
		r.startedAt = time.Time{}
	case models.ActionReset:
		// restarting an idle timer has no effect
		if r.active {
			r.startedAt = d.now()
		}
	default:
		return errInvalidAction
	}
	d.log.Infow("relay_action_applied", "relay", relay, "action", action, "active", r.active)
	return nil
}

// SetOffline makes the HTTP side answer with a non-JSON 503, which a
// client sees as a lost device.
func (d *Device) SetOffline(offline bool) {
	d.mu.Lock()
	d.offline = offline
	d.mu.Unlock()
}

func (d *Device) isOffline() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.offline
}

// expire switches off every relay whose countdown has run out and returns their ids.
func (d *Device) expire(now time.Time) []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	var expired []int
	for _, id := range models.RelayIDs {
		r := d.relays[id]
		if r.active && !now.Before(r.startedAt.Add(d.countdown)) {
			r.active = false
			r.startedAt = time.Time{}
			expired = append(expired, id)
		}
	}
	return expired
}

// Run ticks at the given interval until ctx is canceled, turning relays off
// when their timers end.
func (d *Device) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			for _, id := range d.expire(d.now()) {
				d.log.Infow("relay_timer_expired", "relay", id)
			}
		}
	}
}
