package cpu

// Kind is the tagged variant of instruction families the decoder maps
// an opcode byte onto. Instruction variants that differ only by which
// register or addressing-mode nibble is selected share a single Kind
// here, with operand selection derived from opcode nibbles inside the
// executor — e.g. every ALU-against-A opcode in the 0x80..0xBF block is
// one Kind (ALUReg) distinguished at execute time by bits 3..5 and 0..2
// of the raw opcode, not by 8 separate Kinds.
type Kind int

const (
	// KindUnimplemented covers genuinely illegal opcode bytes and STOP.
	// The families stubbed outright (CB-prefix, EI/DI, RETI, SP-relative
	// stack arithmetic) have Kinds of their own below.
	KindUnimplemented Kind = iota
	KindNop
	KindLoad16Imm
	KindStore8Mem
	KindIncrement16
	KindIncrement8
	KindDecrement8
	KindLoad8Imm
	KindRotateA
	KindStoreSPImm16
	KindAdd16toHL
	KindLoad16MemIntoA
	KindDecrement16
	KindStoreHLIndirect
	KindLoadHLIndirect
	KindDaa
	KindComplementA
	KindStoreImmMemHl
	KindSetCarryFlag
	KindFlipCarryFlag
	KindJumpRelative
	KindHalt
	KindLoad8into8
	KindALUReg
	KindReturnIfFlag
	KindPop16
	KindJumpIfFlag
	KindJump16
	KindCallIfFlag
	KindPush16
	KindALUImm
	KindRestart
	KindReturn
	KindReturnInterrupt
	KindCall
	KindIOPageOut
	KindIOPageIn
	KindIOPageOutC
	KindIOPageInC
	KindStackSPArith
	KindInterruptToggle
	KindCBPrefix
)

// kindNames backs Kind.String for debug logging and the disassembler.
var kindNames = map[Kind]string{
	KindUnimplemented:   "Unimplemented",
	KindNop:             "Nop",
	KindLoad16Imm:       "Load16Imm",
	KindStore8Mem:       "Store8Mem",
	KindIncrement16:     "Increment16",
	KindIncrement8:      "Increment8",
	KindDecrement8:      "Decrement8",
	KindLoad8Imm:        "Load8Imm",
	KindRotateA:         "RotateA",
	KindStoreSPImm16:    "StoreSPImm16",
	KindAdd16toHL:       "Add16toHL",
	KindLoad16MemIntoA:  "Load16MemIntoA",
	KindDecrement16:     "Decrement16",
	KindStoreHLIndirect: "StoreHLIndirect",
	KindLoadHLIndirect:  "LoadHLIndirect",
	KindDaa:             "Daa",
	KindComplementA:     "ComplementA",
	KindStoreImmMemHl:   "StoreImmMemHl",
	KindSetCarryFlag:    "SetCarryFlag",
	KindFlipCarryFlag:   "FlipCarryFlag",
	KindJumpRelative:    "JumpRelative",
	KindHalt:            "Halt",
	KindLoad8into8:      "Load8into8",
	KindALUReg:          "ALUReg",
	KindReturnIfFlag:    "ReturnIfFlag",
	KindPop16:           "Pop16",
	KindJumpIfFlag:      "JumpIfFlag",
	KindJump16:          "Jump16",
	KindCallIfFlag:      "CallIfFlag",
	KindPush16:          "Push16",
	KindALUImm:          "ALUImm",
	KindRestart:         "Restart",
	KindReturn:          "Return",
	KindReturnInterrupt: "ReturnInterrupt",
	KindCall:            "Call",
	KindIOPageOut:       "IOPageOut",
	KindIOPageIn:        "IOPageIn",
	KindIOPageOutC:      "IOPageOutC",
	KindIOPageInC:       "IOPageInC",
	KindStackSPArith:    "StackSPArith",
	KindInterruptToggle: "InterruptToggle",
	KindCBPrefix:        "CBPrefix",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Invalid"
}
