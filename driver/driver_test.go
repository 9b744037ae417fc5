package driver

import (
	"context"
	"testing"
	"time"

	"github.com/retrocore/lr35902/cpu"
	"github.com/retrocore/lr35902/draw"
)

type loopBus struct {
	mem [1 << 16]uint8
}

func (b *loopBus) Fetch(addr uint16) uint8    { return b.mem[addr] }
func (b *loopBus) Write(addr uint16, v uint8) { b.mem[addr] = v }
func (b *loopBus) FetchOp(addr uint16) cpu.OpCode {
	return cpu.OpCode(b.mem[addr])
}
func (b *loopBus) SendDraw(sig draw.Signal) {}

func TestRunStopsOnShutdown(t *testing.T) {
	bus := &loopBus{}
	// A tight relative jump to itself (JR -2), so Step never errors and
	// the loop would run forever without the Shutdown mode check.
	bus.mem[0] = 0x18
	bus.mem[1] = 0xFE

	c := cpu.New(bus)
	go func() {
		time.Sleep(10 * time.Millisecond)
		c.Mode.Set(cpu.Shutdown)
	}()

	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), c, Options{Unthrottled: true})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after Mode was set to Shutdown")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	bus := &loopBus{}
	bus.mem[0] = 0x18
	bus.mem[1] = 0xFE

	c := cpu.New(bus)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, c, Options{Unthrottled: true})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}

func TestRunPropagatesStepError(t *testing.T) {
	bus := &loopBus{}
	bus.mem[0] = 0xCB // stubbed opcode

	c := cpu.New(bus)
	err := Run(context.Background(), c, Options{Unthrottled: true})
	if err == nil {
		t.Fatal("Run returned nil error over a stubbed opcode")
	}
}

func TestRunHaltDoesNotBusySpinForever(t *testing.T) {
	bus := &loopBus{}
	bus.mem[0] = 0x76 // HALT

	c := cpu.New(bus)
	go func() {
		time.Sleep(20 * time.Millisecond)
		c.Mode.Set(cpu.Shutdown)
	}()

	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), c, Options{Unthrottled: true})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after halting then shutting down")
	}
}
