// Command disassembler loads a ROM image and disassembles it to
// stdout starting at the given PC, stopping once it reaches the end
// of the loaded data.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/retrocore/lr35902/bus"
	"github.com/retrocore/lr35902/disassemble"
)

var (
	startPC = flag.Int("start_pc", 0x0000, "PC value to start disassembling")
	offset  = flag.Int("offset", 0x0000, "Offset into RAM to load the file at")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Invalid command: %s [-start_pc <PC> -offset <offset>] <filename>", os.Args[0])
	}
	fn := flag.Args()[0]

	b, err := ioutil.ReadFile(fn)
	if err != nil {
		log.Fatalf("Can't open %s - %v", fn, err)
	}

	mem := bus.New()
	mem.LoadROM(uint16(*offset), b)

	max := 1<<16 - *offset
	if len(b) > max {
		log.Printf("Length %d at offset %d too long, truncating to 64k", len(b), *offset)
		b = b[:max]
	}
	fmt.Printf("0x%X bytes at pc: %04X\n", len(b), *startPC)

	pc := uint16(*startPC)
	cnt := 0
	for cnt < len(b) {
		dis, off := disassemble.Step(pc, mem)
		fmt.Printf("%04X %s\n", pc, dis)
		pc += uint16(off)
		cnt += off
	}
}
