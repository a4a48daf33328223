// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/m6502/cpu"
	"github.com/ezrec/m6502/emulator"
	"github.com/ezrec/m6502/memory"
	"github.com/ezrec/m6502/translate"
)

var ErrSourceConflict = errors.New(translate.From("-c and -b are mutually exclusive"))

// checkSources verifies that at most one program source was given.
func checkSources(compile, binary string) (err error) {
	if len(compile) != 0 && len(binary) != 0 {
		err = ErrSourceConflict
	}

	return
}

// demo calls a subroutine that loads A twice.
var demo = []string{
	".org RESET_PC",
	"        jsr sub",
	".org $4242",
	"sub:    lda #$24",
	"        lda $4243",
}

func main() {
	var compile string
	var binary string
	var origin string
	var cycles int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble and run (not with -b)")
	flag.StringVar(&binary, "b", "", "raw binary image to run (not with -c)")
	flag.StringVar(&origin, "org", "0xfffc", "Load address of the binary image")
	flag.IntVar(&cycles, "n", emulator.DEFAULT_CYCLES, "Cycle budget")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if err := checkSources(compile, binary); err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	var err error
	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(binary) == 0:
		emu.Program, err = asm.Parse(strings.NewReader(strings.Join(demo, "\n")))
		if err != nil {
			log.Fatalf("demo: %v", err)
		}
	}

	emu.Reset()

	// Raw images go in after reset, which clears memory.
	if len(binary) != 0 {
		addr, err := strconv.ParseUint(origin, 0, 16)
		if err != nil {
			log.Fatalf("-org %v: %v", origin, err)
		}
		inf, err := os.Open(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		defer inf.Close()

		tape := &memory.Tape{Input: inf}
		_, err = tape.Load(emu.Memory, uint16(addr))
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
	}

	emu.Run(cycles)

	err = emu.Report(os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}
