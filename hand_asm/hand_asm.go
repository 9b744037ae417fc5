// hand_asm takes a filename and produces a bin file from parsing the
// output as a hand assembled file of the form:
//
// XXXX OP A1 A2
//
// Where XXXX is the address field (unused other than as a line
// anchor) and OP is the opcode; A1,A2 are optional operand bytes. A
// line with more than three byte tokens is rejected.
// A trailing tab-separated comment or a "(...)" aside is ignored.
package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	offset = flag.Int("offset", 0x0000, "Offset to start writing assembled data. Everything prior is zero filled.")
)

var lineRE = regexp.MustCompile(`^[0-9A-Fa-f]{4} (.*)$`)
var parenRE = regexp.MustCompile(`\(.*\)?.*$`)

// extractBytes filters raw input down to the hex byte tokens hand_asm
// understands: keep only lines beginning with a 4-hex-digit address,
// then strip a trailing tab comment and any "(...)" aside.
func extractBytes(r *bufio.Scanner) []string {
	var lines []string
	for r.Scan() {
		m := lineRE.FindStringSubmatch(r.Text())
		if m == nil {
			continue
		}
		rest := m[1]
		if i := strings.Index(rest, "\t"); i >= 0 {
			rest = rest[:i]
		}
		rest = parenRE.ReplaceAllString(rest, "")
		rest = strings.TrimSpace(rest)
		if rest != "" {
			lines = append(lines, rest)
		}
	}
	return lines
}

func main() {
	flag.Parse()
	if len(flag.Args()) != 2 {
		log.Fatalf("Invalid command: %s <input> <output>", os.Args[0])
	}
	fn := flag.Args()[0]
	out := flag.Args()[1]

	f, err := os.Open(fn)
	if err != nil {
		log.Fatalf("Can't open %q for input - %v", fn, err)
	}
	defer f.Close()

	lines := extractBytes(bufio.NewScanner(f))

	var output []byte
	for i := 0; i < *offset; i++ {
		output = append(output, 0x00)
	}
	for l, t := range lines {
		toks := strings.Split(t, " ")
		if len(toks) > 3 {
			log.Fatalf("Invalid line %d - %q", l+1, t)
		}
		for _, v := range toks {
			b, err := strconv.ParseUint(v, 16, 8)
			if err != nil {
				log.Fatalf("Can't process input line %d %q - %v", l+1, t, err)
			}
			output = append(output, byte(b))
		}
	}

	of, err := os.Create(out)
	if err != nil {
		log.Fatalf("Can't open output %q - %v", out, err)
	}
	n, err := of.Write(output)
	if got, want := n, len(output); got != want {
		log.Fatalf("Short write to %q. Got %d and want %d", out, got, want)
	}
	if err != nil {
		log.Fatalf("Got error writing to %q - %v", out, err)
	}
	if err := of.Close(); err != nil {
		log.Fatalf("Error closing %q - %v", out, err)
	}
}
