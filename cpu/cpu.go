package cpu

// CPU holds the register file, the bus it executes against, the mode
// switch a host can write concurrently, and the running cycle count.
type CPU struct {
	Reg   Registers
	Bus   Bus
	Mode  *Mode
	Cycle uint64
}

// New returns a CPU wired to bus, with PC and SP both zero and Mode
// starting in Run. Callers that need a specific reset vector call
// Reg.SetPC themselves before the first Step.
func New(bus Bus) *CPU {
	return &CPU{Bus: bus, Mode: NewMode()}
}

// regAccess accounts for one architectural register read or write.
func (c *CPU) regAccess() { c.Cycle++ }

// memAccess accounts for one bus read or write.
func (c *CPU) memAccess() { c.Cycle++ }

// fetch8 reads one byte off the bus and advances the cycle count.
func (c *CPU) fetch8(addr uint16) uint8 {
	c.memAccess()
	return c.Bus.Fetch(addr)
}

// fetch16 reads a little-endian word off the bus.
func (c *CPU) fetch16(addr uint16) uint16 {
	lo := c.fetch8(addr)
	hi := c.fetch8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// write8 writes one byte to the bus and advances the cycle count.
func (c *CPU) write8(addr uint16, v uint8) {
	c.memAccess()
	c.Bus.Write(addr, v)
}

// write16 writes a little-endian word to the bus.
func (c *CPU) write16(addr uint16, v uint16) {
	c.write8(addr, uint8(v))
	c.write8(addr+1, uint8(v>>8))
}

// push16 decrements SP by two and stores v little-endian: the low byte
// at the new SP and the high byte at SP+1, the order pop16 reads back.
func (c *CPU) push16(v uint16) {
	c.regAccess()
	sp := c.Reg.SP() - 2
	c.Reg.SetSP(sp)
	c.write8(sp, uint8(v))
	c.write8(sp+1, uint8(v>>8))
}

func (c *CPU) pop16() uint16 {
	sp := c.Reg.SP()
	lo := c.fetch8(sp)
	hi := c.fetch8(sp + 1)
	c.Reg.SetSP(sp + 2)
	c.regAccess()
	return uint16(hi)<<8 | uint16(lo)
}

// Step fetches, decodes, and executes a single instruction, then
// commits the resulting AddressMove against PC. It is a no-op when
// Mode is anything but Run, and returns immediately without consuming
// a cycle in that case: a halted CPU doesn't drift.
func (c *CPU) Step() error {
	if c.Mode.Get() != Run {
		return nil
	}

	pcBefore := c.Reg.PC()
	op := OpCode(c.fetch8(pcBefore))
	kind := Decode(op)

	move, err := c.execute(kind, op, pcBefore)
	if err != nil {
		return err
	}
	c.Reg.SetPC(move.commit(pcBefore))
	return nil
}
