package device

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"relay_control/internal/models"
)

// Endpoints served by the relay firmware.
const (
	StatusPath  = "/api/status"
	ControlPath = "/api/relay"
)

// status bodies are a few hundred bytes; anything larger is not the firmware talking
const maxBodyBytes = 64 << 10

// ErrConnectivity is the single failure kind of the device link: transport
// errors, unreachable hosts and bodies that are not a status document.
var ErrConnectivity = errors.New("device connectivity failure")

var errEmptyAddress = errors.New("device address is empty")

// Report is one decoded status response.
type Report struct {
	Relays map[int]models.RelayState
	Info   models.DeviceInfo
}

type relayPayload struct {
	Active           bool `json:"active"`
	RemainingSeconds int  `json:"remaining_seconds"` // absent -> 0
}

type statusPayload struct {
	DeviceID      string        `json:"device_id"`
	WifiConnected bool          `json:"wifi_connected"`
	WifiRSSI      int           `json:"wifi_rssi"`
	Relay1        *relayPayload `json:"relay1"`
	Relay2        *relayPayload `json:"relay2"`
}

// Client talks to one relay device over its JSON HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the device at address, which may be a bare
// host ("192.168.1.100"), host:port, or a full http(s) URL.
// A nil httpClient means http.DefaultClient.
func NewClient(address string, httpClient *http.Client) (*Client, error) {
	base, err := normalizeBaseURL(address)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: base, http: httpClient}, nil
}

// BaseURL returns the normalized device URL.
func (c *Client) BaseURL() string { return c.baseURL }

func normalizeBaseURL(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", errEmptyAddress
	}
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	u, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("parse device address %q: %w", address, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("device address %q: unsupported scheme %q", address, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("device address %q: missing host", address)
	}
	return strings.TrimRight(u.Scheme+"://"+u.Host+u.Path, "/"), nil
}

// Status fetches and decodes GET /api/status.
func (c *Client) Status(ctx context.Context) (Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+StatusPath, nil)
	if err != nil {
		return Report{}, fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("get status: %w: %w", ErrConnectivity, err)
	}
	defer drainAndClose(resp.Body)

	var p statusPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&p); err != nil {
		return Report{}, fmt.Errorf("decode status (http %d): %w: %w", resp.StatusCode, ErrConnectivity, err)
	}
	return p.toReport()
}

func (p statusPayload) toReport() (Report, error) {
	if p.Relay1 == nil || p.Relay2 == nil {
		return Report{}, fmt.Errorf("decode status: %w: relay1 and relay2 are required", ErrConnectivity)
	}
	return Report{
		Relays: map[int]models.RelayState{
			models.Relay1: p.Relay1.toState(),
			models.Relay2: p.Relay2.toState(),
		},
		Info: models.DeviceInfo{
			DeviceID:      p.DeviceID,
			WifiConnected: p.WifiConnected,
			WifiRSSI:      p.WifiRSSI,
		},
	}, nil
}

func (r relayPayload) toState() models.RelayState {
	remaining := r.RemainingSeconds
	if remaining < 0 {
		remaining = 0
	}
	return models.RelayState{Active: r.Active, RemainingSeconds: remaining}
}

// Send posts a control command to POST /api/relay. Any completed exchange
// counts as delivered; the returned status code is informational only.
func (c *Client) Send(ctx context.Context, cmd models.RelayCommand) (int, error) {
	body, err := json.Marshal(cmd)
	if err != nil {
		return 0, fmt.Errorf("encode command: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ControlPath, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build control request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post command relay=%d action=%s: %w: %w", cmd.Relay, cmd.Action, ErrConnectivity, err)
	}
	drainAndClose(resp.Body)
	return resp.StatusCode, nil
}

func drainAndClose(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, maxBodyBytes))
	_ = rc.Close()
}
