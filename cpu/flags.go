package cpu

// Flag bit positions within F. Lower nibble is never set by an
// architectural write.
const (
	flagZ = uint8(0x80)
	flagN = uint8(0x40)
	flagH = uint8(0x20)
	flagC = uint8(0x10)
)

// FlagZ reports the zero flag.
func (r *Registers) FlagZ() bool { return r.F()&flagZ != 0 }

// FlagN reports the subtract flag.
func (r *Registers) FlagN() bool { return r.F()&flagN != 0 }

// FlagH reports the half-carry flag.
func (r *Registers) FlagH() bool { return r.F()&flagH != 0 }

// FlagC reports the carry flag.
func (r *Registers) FlagC() bool { return r.F()&flagC != 0 }

// SetFlagZ forces the zero flag to the given value. Setters always
// force-set or force-clear the bit rather than XOR-toggling it, so a
// flag's new state never depends on its previous one.
func (r *Registers) SetFlagZ(v bool) { r.setFlag(flagZ, v) }

// SetFlagN forces the subtract flag to the given value.
func (r *Registers) SetFlagN(v bool) { r.setFlag(flagN, v) }

// SetFlagH forces the half-carry flag to the given value.
func (r *Registers) SetFlagH(v bool) { r.setFlag(flagH, v) }

// SetFlagC forces the carry flag to the given value.
func (r *Registers) SetFlagC(v bool) { r.setFlag(flagC, v) }

func (r *Registers) setFlag(mask uint8, v bool) {
	f := r.F()
	if v {
		f |= mask
	} else {
		f &^= mask
	}
	r.SetF(f)
}

// Flags is a standalone snapshot of the four meaningful flag bits,
// useful for comparing expected vs. actual flag state in tests without
// dragging along the rest of Registers.
type Flags struct {
	Z, N, H, C bool
}

// FlagsOf snapshots the current flag state.
func FlagsOf(r *Registers) Flags {
	return Flags{Z: r.FlagZ(), N: r.FlagN(), H: r.FlagH(), C: r.FlagC()}
}

// Apply installs the snapshot onto r.
func (f Flags) Apply(r *Registers) {
	r.SetFlagZ(f.Z)
	r.SetFlagN(f.N)
	r.SetFlagH(f.H)
	r.SetFlagC(f.C)
}
