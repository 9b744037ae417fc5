// Package bus implements the flat, total 64KiB address space the cpu
// package requires, plus the one-way draw-signal sink a graphics
// collaborator drains from.
package bus

import (
	"math/rand"
	"time"

	"github.com/retrocore/lr35902/cpu"
	"github.com/retrocore/lr35902/draw"
)

// RAM is a flat 64KiB image backing the whole address space. It never
// refuses a read or write: every uint16 address is valid, so Fetch and
// Write never need an error return.
type RAM struct {
	image [1 << 16]uint8
	draws chan draw.Signal
}

var _ cpu.Bus = (*RAM)(nil)

// New returns a RAM with every byte zeroed and no draw sink attached.
// Call AttachDrawSink to wire one up before running DebugGpu-mode code.
func New() *RAM {
	return &RAM{}
}

// PowerOn randomizes the image, mirroring how real hardware RAM comes
// up in an indeterminate state, rather than presetting to zero. Call
// this on a RAM from New when a test wants to catch code that assumes
// zeroed memory it was never entitled to.
func (r *RAM) PowerOn() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range r.image {
		r.image[i] = uint8(rng.Intn(256))
	}
}

// LoadROM copies data into the image starting at addr, truncating if
// data would run past the end of the address space.
func (r *RAM) LoadROM(addr uint16, data []byte) {
	for i, b := range data {
		target := int(addr) + i
		if target >= len(r.image) {
			break
		}
		r.image[target] = b
	}
}

// Fetch returns the byte at addr.
func (r *RAM) Fetch(addr uint16) uint8 { return r.image[addr] }

// Write stores val at addr.
func (r *RAM) Write(addr uint16, val uint8) { r.image[addr] = val }

// FetchOp returns the byte at addr as an opcode. It is identical to
// Fetch for this flat implementation; a banked or memory-mapped bus
// would use the distinction to let instruction fetches bypass I/O
// register side effects that a data read would trigger.
func (r *RAM) FetchOp(addr uint16) cpu.OpCode { return cpu.OpCode(r.image[addr]) }

// AttachDrawSink installs the channel SendDraw publishes to. Passing
// nil detaches it, turning SendDraw back into a no-op.
func (r *RAM) AttachDrawSink(ch chan draw.Signal) { r.draws = ch }

// SendDraw publishes sig to the attached sink without blocking. If no
// sink is attached, or the sink is full or closed, the signal is
// dropped: the CPU must never stall waiting on a graphics collaborator.
func (r *RAM) SendDraw(sig draw.Signal) {
	if r.draws == nil {
		return
	}
	defer func() { recover() }()
	select {
	case r.draws <- sig:
	default:
	}
}
