package handlers

import (
	"context"
	"sync"

	"relay_control/internal/models"
	"relay_control/internal/service"
	"relay_control/internal/view"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockDispatcher struct {
	toggleAction string
	toggleErr    error
	sendErr      error

	toggleCalls []int
	sendCalls   []models.RelayCommand
}

func (m *mockDispatcher) SendCommand(ctx context.Context, relayID int, action string) error {
	m.sendCalls = append(m.sendCalls, models.RelayCommand{Relay: relayID, Action: action})
	return m.sendErr
}

func (m *mockDispatcher) Toggle(ctx context.Context, relayID int) (string, error) {
	m.toggleCalls = append(m.toggleCalls, relayID)
	return m.toggleAction, m.toggleErr
}

type mockMonitoring struct {
	mu   sync.Mutex
	snap models.DeviceSnapshot
}

func (m *mockMonitoring) GetSnapshot(ctx context.Context) models.DeviceSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.Clone()
}

func (m *mockMonitoring) GetState(ctx context.Context) view.State {
	return view.Render(m.GetSnapshot(ctx))
}

// setSnapshot swaps the served snapshot while a stream is running.
func (m *mockMonitoring) setSnapshot(s models.DeviceSnapshot) {
	m.mu.Lock()
	m.snap = s
	m.mu.Unlock()
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func connectedSnapshot(r1, r2 models.RelayState) models.DeviceSnapshot {
	s := models.NewDeviceSnapshot()
	s.Connected = true
	s.Connectivity = models.ConnectivityConnected
	s.Relays[models.Relay1] = r1
	s.Relays[models.Relay2] = r2
	return s
}
