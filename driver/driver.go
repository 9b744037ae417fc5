// Package driver runs a cpu.CPU at roughly real hardware speed and
// owns the wall-clock pacing the core itself has no opinion about.
package driver

import (
	"context"
	"math/rand"
	"time"

	"github.com/retrocore/lr35902/cpu"
	"github.com/retrocore/lr35902/draw"
)

// CyclesPerSecond is the LR35902's nominal clock rate.
const CyclesPerSecond = 4194304

// Options configures a Run call. A zero Options uses real-time pacing
// at CyclesPerSecond.
type Options struct {
	// CyclesPerSecond overrides the clock rate Run paces against. Zero
	// means CyclesPerSecond.
	CyclesPerSecond uint64
	// Unthrottled disables wall-clock pacing entirely, running Step as
	// fast as the host can, useful for test fixtures and headless
	// batch runs where real-time playback doesn't matter.
	Unthrottled bool
}

// Run steps c until ctx is canceled or c.Mode observes Shutdown,
// pacing execution to Options.CyclesPerSecond real-time by sleeping
// off whatever time a second's worth of cycles didn't use. It returns
// the first error Step produces, or nil on a clean shutdown/cancel.
func Run(ctx context.Context, c *cpu.CPU, opts Options) error {
	rate := opts.CyclesPerSecond
	if rate == 0 {
		rate = CyclesPerSecond
	}

	for {
		if c.Mode.Get() == cpu.Shutdown {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		start := time.Now()
		startCycle := c.Cycle
		for c.Cycle-startCycle < rate {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			switch c.Mode.Get() {
			case cpu.Shutdown:
				return nil
			case cpu.Halt:
				// Step is a no-op while halted; don't spin the host CPU
				// waiting for a mode change that will arrive externally.
				time.Sleep(time.Millisecond)
				continue
			case cpu.DebugGpu:
				// Step is a no-op in DebugGpu, same as Halt, but this mode
				// additionally exercises the draw sink with synthetic
				// traffic so a GPU collaborator can be developed against
				// the CPU without a ROM driving real pixel output.
				emitFakeDraw(c.Bus)
				time.Sleep(time.Millisecond)
				continue
			}
			if err := c.Step(); err != nil {
				return err
			}
		}

		if !opts.Unthrottled {
			elapsed := time.Since(start)
			if remaining := time.Second - elapsed; remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// emitFakeDraw sends one pseudo-random pixel to bus's draw sink. It is
// development scaffolding for exercising a GPU collaborator in
// isolation, not part of the architectural contract (see §4.5).
func emitFakeDraw(bus cpu.Bus) {
	bus.SendDraw(draw.Signal{
		X:     uint8(rand.Intn(160)),
		Y:     uint8(rand.Intn(144)),
		Color: uint8(rand.Intn(4)),
	})
}
