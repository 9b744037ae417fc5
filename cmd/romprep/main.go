// Command romprep pads or truncates a raw ROM image to the flat 64KiB
// size the bus package expects, and prints a report of the cartridge
// header fields found at the standard 0x0100-0x014F offsets.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
)

var (
	out = flag.String("out", "", "Output path; defaults to <input>.padded.bin")
)

const imageSize = 1 << 16

func headerChecksum(b []byte) uint8 {
	var sum uint8
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - b[addr] - 1
	}
	return sum
}

func report(b []byte) {
	title := make([]byte, 0, 16)
	for _, c := range b[0x0134:0x0144] {
		if c == 0 {
			break
		}
		title = append(title, c)
	}
	fmt.Printf("Title:            %q\n", title)
	fmt.Printf("Cartridge type:   0x%02X\n", b[0x0147])
	fmt.Printf("ROM size code:    0x%02X\n", b[0x0148])
	fmt.Printf("RAM size code:    0x%02X\n", b[0x0149])
	want := b[0x014D]
	got := headerChecksum(b)
	status := "OK"
	if got != want {
		status = "MISMATCH"
	}
	fmt.Printf("Header checksum:  stored=0x%02X computed=0x%02X (%s)\n", want, got, status)
}

func run() error {
	flag.Parse()
	if len(flag.Args()) != 1 {
		return fmt.Errorf("usage: %s [-out path] <rom-file>", os.Args[0])
	}
	fn := flag.Args()[0]
	data, err := ioutil.ReadFile(fn)
	if err != nil {
		return fmt.Errorf("reading %s: %w", fn, err)
	}

	if len(data) > imageSize {
		log.Printf("input is %d bytes, truncating to %d", len(data), imageSize)
		data = data[:imageSize]
	}
	padded := make([]byte, imageSize)
	copy(padded, data)

	if len(data) >= 0x0150 {
		report(padded)
	} else {
		fmt.Println("input too short to contain a cartridge header; skipping report")
	}

	outfn := *out
	if outfn == "" {
		outfn = fn + ".padded.bin"
	}
	if err := ioutil.WriteFile(outfn, padded, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outfn, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", outfn, len(padded))
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
