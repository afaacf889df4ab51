package models

import "time"

// Relay identifiers the device exposes.
const (
	Relay1 = 1
	Relay2 = 2
)

// RelayIDs lists every relay in display order.
var RelayIDs = []int{Relay1, Relay2}

// ValidRelay reports whether id names one of the device relays.
func ValidRelay(id int) bool {
	return id == Relay1 || id == Relay2
}

// Connectivity is the view-level connection state.
type Connectivity string

const (
	ConnectivityUnknown      Connectivity = "UNKNOWN"
	ConnectivityConnected    Connectivity = "CONNECTED"
	ConnectivityDisconnected Connectivity = "DISCONNECTED"
)

// DeviceInfo carries the optional identity fields the firmware reports.
type DeviceInfo struct {
	DeviceID      string `json:"device_id,omitempty"`
	WifiConnected bool   `json:"wifi_connected"`
	WifiRSSI      int    `json:"wifi_rssi,omitempty"`
}

// DeviceSnapshot is the last confirmed state of both relays plus connectivity.
type DeviceSnapshot struct {
	Connected    bool               `json:"connected"`
	Connectivity Connectivity       `json:"connectivity"`
	Relays       map[int]RelayState `json:"relays"`
	Device       DeviceInfo         `json:"device"`
	UpdatedAt    time.Time          `json:"updated_at"` // last successful poll
}

// NewDeviceSnapshot returns the startup snapshot: state unknown, both relays off.
func NewDeviceSnapshot() DeviceSnapshot {
	relays := make(map[int]RelayState, len(RelayIDs))
	for _, id := range RelayIDs {
		relays[id] = RelayState{}
	}
	return DeviceSnapshot{
		Connectivity: ConnectivityUnknown,
		Relays:       relays,
	}
}

// Clone returns a copy that shares no map with s.
func (s DeviceSnapshot) Clone() DeviceSnapshot {
	out := s
	out.Relays = make(map[int]RelayState, len(s.Relays))
	for id, r := range s.Relays {
		out.Relays[id] = r
	}
	return out
}
