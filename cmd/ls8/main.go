// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/loader"
)

func main() {
	var compile string
	var save bool
	var output string
	var verbose bool
	var ticks int

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.BoolVar(&save, "s", false, "Write the program in binary text format, do not execute")
	flag.StringVar(&output, "o", "-", "PRN output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode, traces every instruction")
	flag.IntVar(&ticks, "n", 0, "Stop after this many instructions (0 is unlimited)")

	flag.Parse()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.MaxTicks = ticks

	var prog *cpu.Program
	var err error

	switch {
	case len(compile) != 0:
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case flag.NArg() == 1:
		prog, err = loader.LoadFile(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("usage: %v [flags] (-c program.asm | program.ls8)", os.Args[0])
	}

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	if save {
		fmt.Fprint(ouf, prog.Text())
		return
	}

	emu.Program = prog
	emu.Tape.Output = ouf

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		log.Print(emu.Cpu.String())
		log.Fatal(err)
	}
}
