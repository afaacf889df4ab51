package models

// Actions accepted by the device control endpoint.
const (
	ActionOn    = "ON"
	ActionOff   = "OFF"
	ActionReset = "RESET" // restarts the countdown of a running relay
)

// ValidAction reports whether a is a known control action.
func ValidAction(a string) bool {
	switch a {
	case ActionOn, ActionOff, ActionReset:
		return true
	}
	return false
}

// RelayState is one relay as last reported by the device.
type RelayState struct {
	Active           bool `json:"active"`
	RemainingSeconds int  `json:"remaining_seconds"` // meaningful only when Active
}

// ToggleAction returns the action that flips the relay.
func (r RelayState) ToggleAction() string {
	if r.Active {
		return ActionOff
	}
	return ActionOn
}

// RelayCommand is the body of a control request.
type RelayCommand struct {
	Relay  int    `json:"relay"`
	Action string `json:"action"`
}
