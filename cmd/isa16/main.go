// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/tebeka/atexit"

	"github.com/ezrec/isa16/emulator"
)

// printReport writes the register report, logging any failure.
func printReport(emu *emulator.Emulator, w io.Writer) {
	err := emu.Report(w)
	if err != nil {
		log.Printf("report: %v", err)
	}
}

func main() {
	var verbose bool
	var report bool
	var budget int

	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&report, "r", false, "Print registers on exit")
	flag.IntVar(&budget, "n", 0, "Instruction budget, 0 for unlimited")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [options] <infile> <outfile>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		atexit.Exit(1)
	}

	input := flag.Arg(0)
	output := flag.Arg(1)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Budget = budget

	err := emu.LoadFile(input)
	if err != nil {
		atexit.Fatalf("%v: %v", input, err)
	}

	if report {
		atexit.Register(func() {
			printReport(emu, os.Stdout)
		})
	}

	// Interrupt stops a program that never halts.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	atexit.Register(stop)

	err = emu.Run(ctx)
	if err != nil {
		atexit.Fatalf("%v: %v (%v)", input, err, emu.Code())
	}

	err = emu.DumpFile(output)
	if err != nil {
		atexit.Fatalf("%v: %v", output, err)
	}

	atexit.Exit(0)
}
