// Package view turns a DeviceSnapshot into what the dashboard shows:
// connection indicator, relay labels, MM:SS countdowns and progress bars.
package view

import (
	"fmt"
	"time"

	"relay_control/internal/models"
)

// CountdownSeconds is the firmware's fixed timer length (40 minutes); the
// progress bar is drawn against it.
const CountdownSeconds = 40 * 60

// Relay is one rendered relay card.
type Relay struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Active           bool    `json:"active"`
	RemainingSeconds int     `json:"remaining_seconds"`
	Remaining        string  `json:"remaining"` // MM:SS
	Progress         float64 `json:"progress"`  // 0..100
	NextAction       string  `json:"next_action"`
}

// State is the full rendered view.
type State struct {
	Connected    bool                `json:"connected"`
	Connectivity models.Connectivity `json:"connectivity"`
	Device       models.DeviceInfo   `json:"device"`
	UpdatedAt    *time.Time          `json:"updated_at,omitempty"`
	Relays       []Relay             `json:"relays"`
}

// FormatTime renders seconds as MM:SS. Minutes are not wrapped at an hour
// and negative input renders as 00:00.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// CalculateProgress maps remaining seconds onto [0,100] against CountdownSeconds.
func CalculateProgress(seconds int) float64 {
	switch {
	case seconds <= 0:
		return 0
	case seconds >= CountdownSeconds:
		return 100
	}
	return 100 * float64(seconds) / CountdownSeconds
}

// Render builds the view for s. Inactive relays show 00:00 and an empty bar
// whatever remaining value the device last reported.
func Render(s models.DeviceSnapshot) State {
	out := State{
		Connected:    s.Connected,
		Connectivity: s.Connectivity,
		Device:       s.Device,
		Relays:       make([]Relay, 0, len(models.RelayIDs)),
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		out.UpdatedAt = &t
	}
	for _, id := range models.RelayIDs {
		st := s.Relays[id]
		r := Relay{
			ID:         id,
			Name:       fmt.Sprintf("Relay %d", id),
			Active:     st.Active,
			Remaining:  FormatTime(0),
			NextAction: st.ToggleAction(),
		}
		if st.Active {
			r.RemainingSeconds = st.RemainingSeconds
			r.Remaining = FormatTime(st.RemainingSeconds)
			r.Progress = CalculateProgress(st.RemainingSeconds)
		}
		out.Relays = append(out.Relays, r)
	}
	return out
}
