package cpu

// Decode maps a raw opcode byte onto the Kind of instruction it
// belongs to. Decode never touches registers, the bus, or cycle state:
// it is a pure function of the byte, so it can be table-tested against
// every one of the 256 possible values without a CPU at all.
//
// Decode is total — every byte maps to a Kind and no error is returned.
// Illegal/undefined bytes and STOP map to KindUnimplemented; the stubbed
// families (CB prefix, EI/DI, RETI, SP-relative stack arithmetic) map to
// their own Kinds. Execute is where a Kind it does not carry out turns
// into a typed UnimplementedOpcode.
func Decode(op OpCode) Kind {
	b := uint8(op)

	switch {
	case b == 0x00:
		return KindNop
	case b == 0x10:
		return KindUnimplemented // STOP, not modeled
	case b == 0x76:
		return KindHalt
	case b == 0xCB:
		return KindCBPrefix
	case b == 0xF3, b == 0xFB:
		return KindInterruptToggle
	case b == 0xC9:
		return KindReturn
	case b == 0xD9:
		return KindReturnInterrupt
	case b == 0xE8, b == 0xF8, b == 0xF9:
		return KindStackSPArith
	case b == 0xE0:
		return KindIOPageOut
	case b == 0xF0:
		return KindIOPageIn
	case b == 0xE2:
		return KindIOPageOutC
	case b == 0xF2:
		return KindIOPageInC
	case b == 0x08:
		return KindStoreSPImm16
	case b == 0xEA:
		return KindStore8Mem
	case b == 0xFA:
		return KindLoad16MemIntoA
	case b == 0x02, b == 0x12:
		return KindStore8Mem
	case b == 0x0A, b == 0x1A:
		return KindLoad16MemIntoA
	case b == 0x22, b == 0x32:
		return KindStoreHLIndirect
	case b == 0x2A, b == 0x3A:
		return KindLoadHLIndirect
	case b == 0x07, b == 0x0F, b == 0x17, b == 0x1F:
		return KindRotateA
	case b == 0x27:
		return KindDaa
	case b == 0x2F:
		return KindComplementA
	case b == 0x37:
		return KindSetCarryFlag
	case b == 0x3F:
		return KindFlipCarryFlag
	case b == 0x18:
		return KindJumpRelative
	case b&0xE7 == 0x20:
		return KindJumpRelative // JR cc,r8: 0x20,0x28,0x30,0x38
	case b == 0xC3:
		return KindJump16
	case b&0xC7 == 0xC2:
		return KindJumpIfFlag
	case b == 0xE9:
		return KindJump16 // JP (HL)
	case b == 0xCD:
		return KindCall
	case b&0xC7 == 0xC4 && b < 0xE0:
		return KindCallIfFlag // 0xE4,0xEC,0xF4,0xFC are illegal
	case b&0xC7 == 0xC0:
		return KindReturnIfFlag
	case b&0xC7 == 0xC7:
		return KindRestart
	case b&0xCF == 0xC1:
		return KindPop16
	case b&0xCF == 0xC5:
		return KindPush16
	case b&0xCF == 0x01:
		return KindLoad16Imm
	case b&0xCF == 0x03:
		return KindIncrement16
	case b&0xCF == 0x0B:
		return KindDecrement16
	case b&0xCF == 0x09:
		return KindAdd16toHL
	case b&0xC7 == 0x04:
		return KindIncrement8
	case b&0xC7 == 0x05:
		return KindDecrement8
	case b&0xC7 == 0x06 && b != 0x36:
		return KindLoad8Imm
	case b == 0x36:
		return KindStoreImmMemHl
	case b >= 0x40 && b <= 0x7F:
		return KindLoad8into8 // 0x76 handled above as Halt
	case b >= 0x80 && b <= 0xBF:
		return KindALUReg
	case (b&0xC7) == 0xC6:
		return KindALUImm
	default:
		return KindUnimplemented
	}
}
