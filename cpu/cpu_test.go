package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"

	"github.com/retrocore/lr35902/draw"
)

func TestDecodeIsTotal(t *testing.T) {
	// Decode must never panic and must return a valid Kind for every one
	// of the 256 possible opcode bytes.
	for i := 0; i < 256; i++ {
		k := Decode(OpCode(i))
		if k.String() == "Invalid" {
			t.Errorf("Decode(0x%02X) produced a Kind with no name: %d", i, k)
		}
	}
}

func TestRegisterAliasing(t *testing.T) {
	var r Registers
	r.SetBC(0x1234)
	if got, want := r.B(), uint8(0x12); got != want {
		t.Errorf("B() = 0x%02X, want 0x%02X", got, want)
	}
	if got, want := r.C(), uint8(0x34); got != want {
		t.Errorf("C() = 0x%02X, want 0x%02X", got, want)
	}
	r.SetC(0xFF)
	if got, want := r.BC(), uint16(0x12FF); got != want {
		t.Errorf("after SetC, BC() = 0x%04X, want 0x%04X", got, want)
	}
	if got, want := r.B(), uint8(0x12); got != want {
		t.Errorf("SetC disturbed B: got 0x%02X, want 0x%02X", got, want)
	}
}

func TestSetAFMasksLowNibble(t *testing.T) {
	var r Registers
	r.SetAF(0x00FF)
	if got, want := r.F(), uint8(0xF0); got != want {
		t.Errorf("F() after SetAF(0x00FF) = 0x%02X, want 0x%02X", got, want)
	}
}

func TestFlagSettersForceNotToggle(t *testing.T) {
	var r Registers
	r.SetFlagC(true)
	r.SetFlagC(true)
	if !r.FlagC() {
		t.Fatal("FlagC() false after setting true twice; setter must force, not toggle")
	}
}

type execCase struct {
	name     string
	setup    func(c *CPU)
	program  []uint8
	wantA    uint8
	wantPC   uint16
	wantFlag Flags
}

func TestExecuteScenarios(t *testing.T) {
	tests := []execCase{
		{
			name:    "LD BC,d16",
			program: []uint8{0x01, 0x34, 0x12}, // LD BC,0x1234
			wantPC:  3,
		},
		{
			name: "ADD A,B half carry",
			setup: func(c *CPU) {
				c.Reg.SetA(0x0F)
				c.Reg.SetB(0x01)
			},
			program:  []uint8{0x80}, // ADD A,B
			wantA:    0x10,
			wantPC:   1,
			wantFlag: Flags{H: true},
		},
		{
			name: "SUB A,B borrow",
			setup: func(c *CPU) {
				c.Reg.SetA(0x00)
				c.Reg.SetB(0x01)
			},
			program:  []uint8{0x90}, // SUB A,B
			wantA:    0xFF,
			wantPC:   1,
			wantFlag: Flags{N: true, H: true, C: true},
		},
		{
			name: "CP A,B equal sets Z without touching A",
			setup: func(c *CPU) {
				c.Reg.SetA(0x42)
				c.Reg.SetB(0x42)
			},
			program:  []uint8{0xB8}, // CP B
			wantA:    0x42,
			wantPC:   1,
			wantFlag: Flags{Z: true, N: true},
		},
		{
			name: "JR NZ taken",
			setup: func(c *CPU) {
				c.Reg.SetFlagZ(false)
			},
			program: []uint8{0x20, 0x05}, // JR NZ,+5
			wantPC:  7,
		},
		{
			name: "JR NZ not taken falls through",
			setup: func(c *CPU) {
				c.Reg.SetFlagZ(true)
			},
			program:  []uint8{0x20, 0x05},
			wantPC:   2,
			wantFlag: Flags{Z: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bus := &testBus{}
			copy(bus.mem[:], tc.program)
			c := New(bus)
			if tc.setup != nil {
				tc.setup(c)
			}
			if err := c.Step(); err != nil {
				t.Fatalf("Step() returned error: %v\n%s", err, spew.Sdump(c.Reg))
			}
			if got, want := c.Reg.PC(), tc.wantPC; got != want {
				t.Errorf("PC = 0x%04X, want 0x%04X", got, want)
			}
			if tc.wantA != 0 {
				if got, want := c.Reg.A(), tc.wantA; got != want {
					t.Errorf("A = 0x%02X, want 0x%02X", got, want)
				}
			}
			if diff := deep.Equal(FlagsOf(&c.Reg), tc.wantFlag); diff != nil {
				t.Errorf("flags mismatch: %v\n%s", diff, spew.Sdump(c.Reg))
			}
		})
	}
}

func TestCallReturnRoundTrip(t *testing.T) {
	bus := &testBus{}
	// CALL 0x0010 at address 0, RET at 0x0010.
	bus.mem[0] = 0xCD
	bus.mem[1] = 0x10
	bus.mem[2] = 0x00
	bus.mem[0x10] = 0xC9

	c := New(bus)
	c.Reg.SetSP(0xFFFE)

	if err := c.Step(); err != nil { // CALL
		t.Fatalf("CALL step failed: %v", err)
	}
	if got, want := c.Reg.PC(), uint16(0x10); got != want {
		t.Fatalf("after CALL, PC = 0x%04X, want 0x%04X", got, want)
	}
	if got, want := c.Reg.SP(), uint16(0xFFFC); got != want {
		t.Fatalf("after CALL, SP = 0x%04X, want 0x%04X", got, want)
	}

	if err := c.Step(); err != nil { // RET
		t.Fatalf("RET step failed: %v", err)
	}
	if got, want := c.Reg.PC(), uint16(0x03); got != want {
		t.Errorf("after RET, PC = 0x%04X, want 0x%04X", got, want)
	}
	if got, want := c.Reg.SP(), uint16(0xFFFE); got != want {
		t.Errorf("after RET, SP = 0x%04X, want 0x%04X", got, want)
	}
}

func TestPushPopAFMasksLowNibble(t *testing.T) {
	bus := &testBus{}
	c := New(bus)
	c.Reg.SetSP(0xFFFE)
	c.Reg.SetA(0x55)
	c.Reg.SetF(0xF0)

	c.push16(c.Reg.AF())
	// Corrupt the low nibble directly on the stack, as if a stray write
	// had landed there.
	sp := c.Reg.SP()
	bus.mem[sp] |= 0x0F

	got := c.pop16()
	var r Registers
	r.SetAF(got)
	if f := r.F(); f&0x0F != 0 {
		t.Errorf("SetAF left low nibble set: F = 0x%02X", f)
	}
}

func TestModeHaltStopsStep(t *testing.T) {
	bus := &testBus{}
	bus.mem[0] = 0x76 // HALT
	c := New(bus)

	if err := c.Step(); err != nil {
		t.Fatalf("Step() (HALT) returned error: %v", err)
	}
	if got := c.Mode.Get(); got != Halt {
		t.Fatalf("Mode after HALT = %v, want Halt", got)
	}

	cyclesBefore := c.Cycle
	if err := c.Step(); err != nil {
		t.Fatalf("Step() while halted returned error: %v", err)
	}
	if c.Cycle != cyclesBefore {
		t.Errorf("Step() consumed cycles while halted: before=%d after=%d", cyclesBefore, c.Cycle)
	}
}

func TestUnimplementedOpcodeDoesNotMovePC(t *testing.T) {
	bus := &testBus{}
	bus.mem[0] = 0xCB // CB-prefix, stubbed
	c := New(bus)

	err := c.Step()
	if err == nil {
		t.Fatal("Step() over a stubbed opcode returned nil error")
	}
	if _, ok := err.(UnimplementedOpcode); !ok {
		t.Fatalf("Step() error = %T, want UnimplementedOpcode", err)
	}
	if c.Reg.PC() != 0 {
		t.Errorf("PC moved to 0x%04X after an unimplemented opcode", c.Reg.PC())
	}
}

// testBus is a bare Bus implementation used only inside this package's
// tests; the real implementation lives in package bus.
type testBus struct {
	mem [1 << 16]uint8
}

func (b *testBus) Fetch(addr uint16) uint8    { return b.mem[addr] }
func (b *testBus) Write(addr uint16, v uint8) { b.mem[addr] = v }
func (b *testBus) FetchOp(addr uint16) OpCode { return OpCode(b.mem[addr]) }
func (b *testBus) SendDraw(sig draw.Signal)   {}
