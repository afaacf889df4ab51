package service

import (
	"context"
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"relay_control/internal/device"
	"relay_control/internal/logger"
	"relay_control/internal/models"
	"relay_control/internal/repository"
	"relay_control/internal/simulator"
)

// newSimulatedService runs the firmware simulator behind httptest and wires
// a full Service against it.
func newSimulatedService(t *testing.T) (*Service, *simulator.Device) {
	t.Helper()
	sim := simulator.NewDevice("", nil)
	srv := httptest.NewServer(sim.Routes())
	t.Cleanup(srv.Close)

	client, err := device.NewClient(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewService(repository.NewRepository(client), logger.Nop()), sim
}

func TestE2E_InitialPollRendersDevice(t *testing.T) {
	svc, sim := newSimulatedService(t)
	_ = sim.Apply(models.Relay2, models.ActionOn)

	if _, err := svc.Poll(context.Background()); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	st := svc.GetState(context.Background())
	if !st.Connected {
		t.Fatalf("expected connected")
	}
	if st.Relays[0].Active || !st.Relays[1].Active {
		t.Fatalf("relays = %+v", st.Relays)
	}
	if st.Device.DeviceID != simulator.DefaultDeviceID {
		t.Fatalf("device id = %q", st.Device.DeviceID)
	}
	// a freshly started relay sits at (or within a second of) a full bar
	if st.Relays[1].Progress < 99.9 || math.IsNaN(st.Relays[1].Progress) {
		t.Fatalf("progress = %v", st.Relays[1].Progress)
	}
}

func TestE2E_DisconnectAndRecover(t *testing.T) {
	svc, sim := newSimulatedService(t)
	ctx := context.Background()

	if _, err := svc.Poll(ctx); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	_ = sim.Apply(models.Relay1, models.ActionOn)
	_, _ = svc.Poll(ctx)

	sim.SetOffline(true)
	if _, err := svc.Poll(ctx); err == nil {
		t.Fatalf("expected failure while offline")
	}
	st := svc.GetState(ctx)
	if st.Connected || st.Connectivity != models.ConnectivityDisconnected {
		t.Fatalf("expected disconnected: %+v", st)
	}
	if !st.Relays[0].Active {
		t.Fatalf("last known relay1 state lost while offline")
	}

	sim.SetOffline(false)
	if _, err := svc.Poll(ctx); err != nil {
		t.Fatalf("Poll after recovery: %v", err)
	}
	if !svc.GetState(ctx).Connected {
		t.Fatalf("expected connected after recovery")
	}
}

func TestE2E_ToggleRoundTrip(t *testing.T) {
	svc, sim := newSimulatedService(t)
	ctx := context.Background()
	_, _ = svc.Poll(ctx)

	action, err := svc.Toggle(ctx, models.Relay1)
	if err != nil || action != models.ActionOn {
		t.Fatalf("Toggle = %q, %v", action, err)
	}
	if !sim.Status().Relay1.Active {
		t.Fatalf("device did not receive ON")
	}
	// the post-dispatch refresh already pulled the new state
	st := svc.GetState(ctx)
	if !st.Relays[0].Active || st.Relays[0].Remaining != "40:00" && st.Relays[0].Remaining != "39:59" {
		t.Fatalf("relay1 after toggle = %+v", st.Relays[0])
	}

	action, err = svc.Toggle(ctx, models.Relay1)
	if err != nil || action != models.ActionOff {
		t.Fatalf("second Toggle = %q, %v", action, err)
	}
	if svc.GetState(ctx).Relays[0].Active {
		t.Fatalf("relay1 still active after OFF")
	}
}

func TestE2E_ToggleWithCanceledCallerStaysConnected(t *testing.T) {
	svc, sim := newSimulatedService(t)
	if _, err := svc.Poll(context.Background()); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Toggle(ctx, models.Relay1); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !sim.Status().Relay1.Active {
		t.Fatalf("device did not receive ON")
	}
	st := svc.GetState(context.Background())
	if !st.Connected || !st.Relays[0].Active {
		t.Fatalf("state after toggle = %+v", st)
	}
}

func TestE2E_RunAgainstSimulator(t *testing.T) {
	svc, _ := newSimulatedService(t)
	p := svc.Poller.(*PollerService)
	p.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	waitFor(t, 2*time.Second, func() bool { return svc.GetState(context.Background()).Connected })
}
