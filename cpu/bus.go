package cpu

import "github.com/retrocore/lr35902/draw"

// Bus is the memory interface the CPU requires. Implementations must be
// total over the full 16-bit address space: no address may cause a
// panic or an error return.
type Bus interface {
	// Fetch returns the byte stored at addr.
	Fetch(addr uint16) uint8
	// Write stores val at addr.
	Write(addr uint16, val uint8)
	// FetchOp is equivalent to Fetch but returns the byte wrapped as an
	// OpCode to discourage accidental arithmetic on it before decode.
	FetchOp(addr uint16) OpCode
	// SendDraw forwards a draw signal to an optional external sink.
	// Implementations must never block; if no sink is attached, or the
	// sink can't accept the signal immediately, it is dropped.
	SendDraw(sig draw.Signal)
}
