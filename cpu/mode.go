package cpu

import "sync/atomic"

// ModeValue is the tagged variant controlling whether Step executes
// instructions.
type ModeValue int32

const (
	// Run executes instructions normally.
	Run ModeValue = iota
	// Halt makes Step a no-op without tearing the driver's loop down.
	Halt
	// DebugGpu makes Step a no-op, like Halt, but signals the driver to
	// emit synthetic draw traffic instead of executing (see driver
	// package); it is not part of the architectural contract, only
	// development scaffolding.
	DebugGpu
	// Shutdown causes the driver's run loop to exit at the next step
	// boundary.
	Shutdown
)

// String returns the mode's name for logging.
func (m ModeValue) String() string {
	switch m {
	case Run:
		return "Run"
	case Halt:
		return "Halt"
	case DebugGpu:
		return "DebugGpu"
	case Shutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

// Mode is an externally-writable mode switch. A host goroutine may call
// Set concurrently with a driver's run loop; the driver only observes
// the value at step boundaries, so a write is visible promptly but not
// necessarily mid-step.
type Mode struct {
	v atomic.Int32
}

// NewMode returns a Mode initialized to Run.
func NewMode() *Mode {
	m := &Mode{}
	m.Set(Run)
	return m
}

// Get returns the current mode.
func (m *Mode) Get() ModeValue {
	return ModeValue(m.v.Load())
}

// Set installs a new mode.
func (m *Mode) Set(v ModeValue) {
	m.v.Store(int32(v))
}
