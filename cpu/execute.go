package cpu

// execute carries out the instruction kind decoded from op, starting
// at pcBefore (the address the opcode byte itself was fetched from),
// and returns how PC should move afterward.
func (c *CPU) execute(kind Kind, op OpCode, pcBefore uint16) (AddressMove, error) {
	b := uint8(op)
	operandAddr := pcBefore + 1

	switch kind {
	case KindNop:
		return Add(1), nil

	case KindHalt:
		c.Mode.Set(Halt)
		return Add(1), nil

	case KindLoad16Imm:
		v := c.fetch16(operandAddr)
		c.setPairArith(b, v)
		return Add(3), nil

	case KindStoreSPImm16:
		addr := c.fetch16(operandAddr)
		c.write16(addr, c.Reg.SP())
		c.regAccess()
		return Add(3), nil

	case KindIncrement16:
		idx := (b >> 4) & 0x3
		c.Reg.setPairIndex16(idx, c.Reg.pairIndex16(idx)+1)
		c.regAccess()
		return Add(1), nil

	case KindDecrement16:
		idx := (b >> 4) & 0x3
		c.Reg.setPairIndex16(idx, c.Reg.pairIndex16(idx)-1)
		c.regAccess()
		return Add(1), nil

	case KindAdd16toHL:
		idx := (b >> 4) & 0x3
		hl := c.Reg.HL()
		operand := c.Reg.pairIndex16(idx)
		sum := uint32(hl) + uint32(operand)
		c.Reg.SetFlagN(false)
		c.Reg.SetFlagH((hl&0x0FFF)+(operand&0x0FFF) > 0x0FFF)
		c.Reg.SetFlagC(sum > 0xFFFF)
		c.Reg.SetHL(uint16(sum))
		c.regAccess()
		return Add(1), nil

	case KindIncrement8:
		idx := (b >> 3) & 0x7
		v := c.readReg8OrMem(idx)
		res := v + 1
		c.Reg.SetFlagZ(res == 0)
		c.Reg.SetFlagN(false)
		c.Reg.SetFlagH(v&0x0F == 0x0F)
		c.writeReg8OrMem(idx, res)
		return Add(1), nil

	case KindDecrement8:
		idx := (b >> 3) & 0x7
		v := c.readReg8OrMem(idx)
		res := v - 1
		c.Reg.SetFlagZ(res == 0)
		c.Reg.SetFlagN(true)
		c.Reg.SetFlagH(v&0x0F == 0x00)
		c.writeReg8OrMem(idx, res)
		return Add(1), nil

	case KindLoad8Imm:
		idx := (b >> 3) & 0x7
		v := c.fetch8(operandAddr)
		c.Reg.setReg8(idx, v)
		c.regAccess()
		return Add(2), nil

	case KindStoreImmMemHl:
		v := c.fetch8(operandAddr)
		c.write8(c.Reg.HL(), v)
		return Add(2), nil

	case KindRotateA:
		c.execRotateA((b >> 3) & 0x3)
		return Add(1), nil

	case KindDaa:
		c.execDaa()
		return Add(1), nil

	case KindComplementA:
		c.Reg.SetA(^c.Reg.A())
		c.Reg.SetFlagN(true)
		c.Reg.SetFlagH(true)
		return Add(1), nil

	case KindSetCarryFlag:
		c.Reg.SetFlagN(false)
		c.Reg.SetFlagH(false)
		c.Reg.SetFlagC(true)
		return Add(1), nil

	case KindFlipCarryFlag:
		c.Reg.SetFlagN(false)
		c.Reg.SetFlagH(false)
		c.Reg.SetFlagC(!c.Reg.FlagC())
		return Add(1), nil

	case KindStore8Mem:
		addr := c.store8MemAddr(b, operandAddr)
		c.write8(addr, c.Reg.A())
		if b == 0xEA {
			return Add(3), nil
		}
		return Add(1), nil

	case KindLoad16MemIntoA:
		addr := c.load16MemAddr(b, operandAddr)
		c.Reg.SetA(c.fetch8(addr))
		if b == 0xFA {
			return Add(3), nil
		}
		return Add(1), nil

	case KindStoreHLIndirect:
		hl := c.Reg.HL()
		c.write8(hl, c.Reg.A())
		if b == 0x22 {
			c.Reg.SetHL(hl + 1)
		} else {
			c.Reg.SetHL(hl - 1)
		}
		c.regAccess()
		return Add(1), nil

	case KindLoadHLIndirect:
		hl := c.Reg.HL()
		c.Reg.SetA(c.fetch8(hl))
		if b == 0x2A {
			c.Reg.SetHL(hl + 1)
		} else {
			c.Reg.SetHL(hl - 1)
		}
		c.regAccess()
		return Add(1), nil

	case KindLoad8into8:
		dst := (b >> 3) & 0x7
		src := b & 0x7
		c.writeReg8OrMem(dst, c.readReg8OrMem(src))
		return Add(1), nil

	case KindALUReg:
		aluOp := (b >> 3) & 0x7
		operand := c.readReg8OrMem(b & 0x7)
		c.execALU(aluOp, operand)
		return Add(1), nil

	case KindALUImm:
		aluOp := (b >> 3) & 0x7
		operand := c.fetch8(operandAddr)
		c.execALU(aluOp, operand)
		return Add(2), nil

	case KindJumpRelative:
		offset := int8(c.fetch8(operandAddr))
		target := uint16(int32(pcBefore+2) + int32(offset))
		if b == 0x18 || c.condTaken((b>>3)&0x3) {
			return To(target), nil
		}
		return Add(2), nil

	case KindJump16:
		if b == 0xE9 {
			c.regAccess()
			return To(c.Reg.HL()), nil
		}
		target := c.fetch16(operandAddr)
		return To(target), nil

	case KindJumpIfFlag:
		target := c.fetch16(operandAddr)
		if c.condTaken((b >> 3) & 0x3) {
			return To(target), nil
		}
		return Add(3), nil

	case KindCall:
		target := c.fetch16(operandAddr)
		c.push16(pcBefore + 3)
		return To(target), nil

	case KindCallIfFlag:
		target := c.fetch16(operandAddr)
		if c.condTaken((b >> 3) & 0x3) {
			c.push16(pcBefore + 3)
			return To(target), nil
		}
		return Add(3), nil

	case KindReturn:
		return To(c.pop16()), nil

	case KindReturnIfFlag:
		if c.condTaken((b >> 3) & 0x3) {
			return To(c.pop16()), nil
		}
		return Add(1), nil

	case KindRestart:
		vector := uint16(b & 0x38)
		c.push16(pcBefore + 1)
		return To(vector), nil

	case KindPush16:
		idx := (b >> 4) & 0x3
		c.push16(c.Reg.pairIndexStack(idx))
		return Add(1), nil

	case KindPop16:
		idx := (b >> 4) & 0x3
		c.Reg.setPairIndexStack(idx, c.pop16())
		return Add(1), nil

	case KindIOPageOut:
		offset := c.fetch8(operandAddr)
		c.write8(0xFF00|uint16(offset), c.Reg.A())
		return Add(2), nil

	case KindIOPageIn:
		offset := c.fetch8(operandAddr)
		c.Reg.SetA(c.fetch8(0xFF00 | uint16(offset)))
		return Add(2), nil

	case KindIOPageOutC:
		c.write8(0xFF00|uint16(c.Reg.C()), c.Reg.A())
		c.regAccess()
		return Add(1), nil

	case KindIOPageInC:
		c.Reg.SetA(c.fetch8(0xFF00 | uint16(c.Reg.C())))
		c.regAccess()
		return Add(1), nil

	default: // KindUnimplemented, KindCBPrefix, KindInterruptToggle,
		// KindStackSPArith, KindReturnInterrupt
		return AddressMove{}, UnimplementedOpcode{Op: op}
	}
}

// setPairArith installs v into the arithmetic-family pair selected by
// bits 4-5 of the opcode (0=BC,1=DE,2=HL,3=SP).
func (c *CPU) setPairArith(b uint8, v uint16) {
	c.Reg.setPairIndex16((b>>4)&0x3, v)
	c.regAccess()
}

// readReg8OrMem reads the 8-bit operand selected by idx, routing index
// 6 through the bus at HL instead of a register.
func (c *CPU) readReg8OrMem(idx uint8) uint8 {
	if idx&0x7 == 6 {
		return c.fetch8(c.Reg.HL())
	}
	v := c.Reg.reg8(idx)
	c.regAccess()
	return v
}

func (c *CPU) writeReg8OrMem(idx uint8, v uint8) {
	if idx&0x7 == 6 {
		c.write8(c.Reg.HL(), v)
		return
	}
	c.Reg.setReg8(idx, v)
	c.regAccess()
}

// condTaken evaluates the branch condition selected by the NZ/Z/NC/C
// field that occupies bits 3-4 of conditional jump/call/return opcodes.
func (c *CPU) condTaken(sel uint8) bool {
	switch sel & 0x3 {
	case 0:
		return !c.Reg.FlagZ()
	case 1:
		return c.Reg.FlagZ()
	case 2:
		return !c.Reg.FlagC()
	default:
		return c.Reg.FlagC()
	}
}

func (c *CPU) store8MemAddr(b uint8, operandAddr uint16) uint16 {
	switch b {
	case 0x02:
		return c.Reg.BC()
	case 0x12:
		return c.Reg.DE()
	default: // 0xEA
		return c.fetch16(operandAddr)
	}
}

func (c *CPU) load16MemAddr(b uint8, operandAddr uint16) uint16 {
	switch b {
	case 0x0A:
		return c.Reg.BC()
	case 0x1A:
		return c.Reg.DE()
	default: // 0xFA
		return c.fetch16(operandAddr)
	}
}

// execRotateA implements RLCA/RRCA/RLA/RRA. Unlike their CB-prefixed
// counterparts these always clear Z, regardless of the result.
func (c *CPU) execRotateA(sel uint8) {
	a := c.Reg.A()
	var res uint8
	var carryOut bool
	switch sel {
	case 0: // RLCA
		carryOut = a&0x80 != 0
		res = a<<1 | a>>7
	case 1: // RRCA
		carryOut = a&0x01 != 0
		res = a>>1 | a<<7
	case 2: // RLA
		carryOut = a&0x80 != 0
		res = a << 1
		if c.Reg.FlagC() {
			res |= 0x01
		}
	default: // RRA
		carryOut = a&0x01 != 0
		res = a >> 1
		if c.Reg.FlagC() {
			res |= 0x80
		}
	}
	c.Reg.SetA(res)
	c.Reg.SetFlagZ(false)
	c.Reg.SetFlagN(false)
	c.Reg.SetFlagH(false)
	c.Reg.SetFlagC(carryOut)
}

// execDaa adjusts A into packed BCD after an 8-bit addition or
// subtraction, using N/H/C from the flags the preceding ALU op left
// behind.
func (c *CPU) execDaa() {
	a := c.Reg.A()
	n := c.Reg.FlagN()
	h := c.Reg.FlagH()
	carry := c.Reg.FlagC()
	var adjust uint8
	newCarry := carry

	if !n {
		if h || a&0x0F > 0x09 {
			adjust |= 0x06
		}
		if carry || a > 0x99 {
			adjust |= 0x60
			newCarry = true
		}
		a += adjust
	} else {
		if h {
			adjust |= 0x06
		}
		if carry {
			adjust |= 0x60
		}
		a -= adjust
	}

	c.Reg.SetA(a)
	c.Reg.SetFlagZ(a == 0)
	c.Reg.SetFlagH(false)
	c.Reg.SetFlagC(newCarry)
}

// execALU performs one of the eight ALU-against-A operations selected
// by aluOp (0=Add,1=Adc,2=Sub,3=Sbc,4=And,5=Xor,6=Or,7=Cp) with the
// given 8-bit operand, updating A (except for Cp) and all four flags.
func (c *CPU) execALU(aluOp uint8, operand uint8) {
	a := c.Reg.A()
	switch aluOp & 0x7 {
	case 0: // Add
		c.Reg.SetA(c.add8(a, operand, false))
	case 1: // Adc
		c.Reg.SetA(c.add8(a, operand, c.Reg.FlagC()))
	case 2: // Sub
		c.Reg.SetA(c.sub8(a, operand, false))
	case 3: // Sbc
		c.Reg.SetA(c.sub8(a, operand, c.Reg.FlagC()))
	case 4: // And
		res := a & operand
		c.Reg.SetA(res)
		c.Reg.SetFlagZ(res == 0)
		c.Reg.SetFlagN(false)
		c.Reg.SetFlagH(true)
		c.Reg.SetFlagC(false)
	case 5: // Xor
		res := a ^ operand
		c.Reg.SetA(res)
		c.Reg.SetFlagZ(res == 0)
		c.Reg.SetFlagN(false)
		c.Reg.SetFlagH(false)
		c.Reg.SetFlagC(false)
	case 6: // Or
		res := a | operand
		c.Reg.SetA(res)
		c.Reg.SetFlagZ(res == 0)
		c.Reg.SetFlagN(false)
		c.Reg.SetFlagH(false)
		c.Reg.SetFlagC(false)
	default: // Cp: same as Sub but A is left unmodified
		c.sub8(a, operand, false)
	}
}

// add8 computes a+b+carryIn, sets the four flags, and returns the
// result without writing it anywhere.
func (c *CPU) add8(a, b uint8, carryIn bool) uint8 {
	var cin uint16
	if carryIn {
		cin = 1
	}
	sum := uint16(a) + uint16(b) + cin
	res := uint8(sum)
	c.Reg.SetFlagZ(res == 0)
	c.Reg.SetFlagN(false)
	c.Reg.SetFlagH((a&0x0F)+(b&0x0F)+uint8(cin) > 0x0F)
	c.Reg.SetFlagC(sum > 0xFF)
	return res
}

// sub8 computes a-b-borrowIn, sets the four flags, and returns the
// result without writing it anywhere.
func (c *CPU) sub8(a, b uint8, borrowIn bool) uint8 {
	var bin uint8
	if borrowIn {
		bin = 1
	}
	res := a - b - bin
	c.Reg.SetFlagZ(res == 0)
	c.Reg.SetFlagN(true)
	c.Reg.SetFlagH((a & 0x0F) < (b&0x0F)+bin)
	c.Reg.SetFlagC(uint16(a) < uint16(b)+uint16(bin))
	return res
}
