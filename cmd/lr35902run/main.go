// Command lr35902run loads a ROM image, runs it against the core, and
// optionally renders its draw traffic to an SDL2 window.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/retrocore/lr35902/bus"
	"github.com/retrocore/lr35902/cpu"
	"github.com/retrocore/lr35902/draw"
	"github.com/retrocore/lr35902/driver"
	"github.com/retrocore/lr35902/gpu"
)

var (
	rom        = flag.String("rom", "", "Path to the ROM image to load at 0x0000")
	headless   = flag.Bool("headless", false, "If true run without opening a window")
	scale      = flag.Int("scale", 3, "Window scale factor")
	cycleRate  = flag.Uint64("cycle_rate", driver.CyclesPerSecond, "Cycles per second to pace execution at")
	debugStart = flag.Bool("debug_start", false, "If true start in DebugGpu mode")
)

func run() error {
	flag.Parse()
	if *rom == "" {
		return fmt.Errorf("-rom is required")
	}
	data, err := ioutil.ReadFile(*rom)
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}

	mem := bus.New()
	mem.LoadROM(0x0000, data)

	c := cpu.New(mem)
	if *debugStart {
		c.Mode.Set(cpu.DebugGpu)
	}

	if *headless {
		return driver.Run(context.Background(), c, driver.Options{CyclesPerSecond: *cycleRate})
	}

	sigs := make(chan draw.Signal, 4096)
	mem.AttachDrawSink(sigs)

	var runErr error
	sdl.Main(func() {
		if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
			log.Fatalf("can't init SDL: %v", err)
		}
		defer sdl.Quit()

		screen, err := gpu.NewScreen(int32(*scale), gpu.DefaultPalette)
		if err != nil {
			log.Fatalf("can't create screen: %v", err)
		}
		defer screen.Close()

		go func() {
			runErr = driver.Run(context.Background(), c, driver.Options{CyclesPerSecond: *cycleRate})
			close(sigs)
		}()

		screen.Drain(sigs, screen.Present)
	})
	return runErr
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
