package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"relay_control/internal/device"
	"relay_control/internal/models"
)

var errNetDown = fmt.Errorf("get status: %w: dial tcp 192.168.1.100:80: connect: no route to host", device.ErrConnectivity)

// deviceStub is a scriptable repository.DeviceRepo that records calls in order.
type deviceStub struct {
	mu       sync.Mutex
	calls    []string // "status" | "send"
	commands []models.RelayCommand
	ctxErrs  []error // ctx.Err() seen by each call, in call order

	statusFn func(n int) (device.Report, error) // n is the 1-based status call number
	sendFn   func(cmd models.RelayCommand) (int, error)

	statusCalls atomic.Int32
}

func (d *deviceStub) Status(ctx context.Context) (device.Report, error) {
	n := int(d.statusCalls.Add(1))
	d.mu.Lock()
	d.calls = append(d.calls, "status")
	d.ctxErrs = append(d.ctxErrs, ctx.Err())
	d.mu.Unlock()
	if d.statusFn == nil {
		return device.Report{}, errors.New("statusFn not set")
	}
	return d.statusFn(n)
}

func (d *deviceStub) Send(ctx context.Context, cmd models.RelayCommand) (int, error) {
	d.mu.Lock()
	d.calls = append(d.calls, "send")
	d.ctxErrs = append(d.ctxErrs, ctx.Err())
	d.commands = append(d.commands, cmd)
	d.mu.Unlock()
	if d.sendFn == nil {
		return 200, nil
	}
	return d.sendFn(cmd)
}

func (d *deviceStub) callLog() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func (d *deviceStub) contextErrors() []error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]error(nil), d.ctxErrs...)
}

func (d *deviceStub) sent() []models.RelayCommand {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.RelayCommand(nil), d.commands...)
}

func reportOf(r1, r2 models.RelayState) device.Report {
	return device.Report{Relays: map[int]models.RelayState{models.Relay1: r1, models.Relay2: r2}}
}

func okStatus(r1, r2 models.RelayState) func(int) (device.Report, error) {
	return func(int) (device.Report, error) { return reportOf(r1, r2), nil }
}

func failStatus(int) (device.Report, error) { return device.Report{}, errNetDown }
