// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"gitlab.com/gnss-tools/oem6_share/internal/oem6"
)

func usage() {
	flag.CommandLine.Usage()
}

func main() {
	var devPath string
	flag.StringVar(&devPath, "d", "/dev/ttyS5", "Path to OEM6 serial device")
	var baud int
	flag.IntVar(&baud, "b", 9600, "Baud rate of the serial device")
	var hold bool
	flag.BoolVar(&hold, "hold", false, "Mark requested logs as held, or remove held logs on unlog-all")
	var verbose bool
	flag.BoolVar(&verbose, "v", false, "Enable debug logging.")
	var help bool
	flag.BoolVar(&help, "h", false, "Print help and quit.")

	flag.Usage = func() {
		fmt.Println("usage: oem6ctl [OPTION...] COMMAND")
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println("Commands:")
		fmt.Printf("  %-12s\t%s\n", "version", "Print receiver version information.")
		fmt.Printf("  %-12s\t%s\n", "position [INTERVAL [OFFSET]]", "Request a position fix, or periodic fixes every INTERVAL seconds.")
		fmt.Printf("  %-12s\t%s\n", "errors", "Stream receiver status events until interrupted.")
		fmt.Printf("  %-12s\t%s\n", "unlog <MSG-ID>", "Stop a previously requested log.")
		fmt.Printf("  %-12s\t%s\n", "unlog-all", "Stop all logs.")
		fmt.Printf("  %-12s\t%s\n", "passthrough <HEX>", "Write raw bytes to the receiver, unframed.")
	}

	flag.Parse()

	if help {
		usage()
		return
	}

	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	drv, err := oem6.Open(devPath, baud)
	if err != nil {
		log.Fatal(err)
	}
	defer drv.Close()

	errChan := make(chan error, 1)
	go drv.ReadLoop(errChan)

	switch cmd := flag.Arg(0); cmd {
	case "version":
		if err := drv.RequestVersion(); err != nil {
			log.Fatal(err)
		}
		l, err := drv.GetLog()
		if err != nil {
			log.Fatal(err)
		}
		v, ok := l.(oem6.VersionLog)
		if !ok {
			log.Fatalf("unexpected log %d while waiting for version", l.LogID())
		}
		for _, c := range v.Components {
			fmt.Printf("model: %s  serial: %s\n", c.Model, c.Serial)
			fmt.Printf("  hw: %s  sw: %s  boot: %s (built %s %s)\n",
				c.HwVersion, c.SwVersion, c.BootVersion, c.CompileDate, c.CompileTime)
		}
	case "position":
		interval, offset := 0.0, 0.0
		if flag.Arg(1) != "" {
			if interval, err = strconv.ParseFloat(flag.Arg(1), 64); err != nil {
				log.Fatalf("invalid interval %q: %v", flag.Arg(1), err)
			}
		}
		if flag.Arg(2) != "" {
			if offset, err = strconv.ParseFloat(flag.Arg(2), 64); err != nil {
				log.Fatalf("invalid offset %q: %v", flag.Arg(2), err)
			}
		}
		if err := drv.RequestPosition(interval, offset, hold); err != nil {
			log.Fatal(err)
		}
		l, err := drv.GetLog()
		if err != nil {
			log.Fatal(err)
		}
		if fix, ok := l.(oem6.BestXYZLog); ok {
			fmt.Printf("position (ECEF m):   %.3f %.3f %.3f\n",
				fix.Position[0], fix.Position[1], fix.Position[2])
			fmt.Printf("velocity (ECEF m/s): %.3f %.3f %.3f\n",
				fix.Velocity[0], fix.Velocity[1], fix.Velocity[2])
			fmt.Printf("satellites: %d tracked, %d used\n", fix.SatsTracked, fix.SatsUsed)
		}
	case "errors":
		if err := drv.RequestErrors(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Waiting for status events, interrupt to stop.")
		for {
			l, err := drv.GetLog()
			if err != nil {
				continue
			}
			if e, ok := l.(oem6.RxStatusEventLog); ok {
				fmt.Printf("status word %#08x bit %d event %d: %s\n",
					e.Word, e.Bit, e.Event, e.Description)
			}
		}
	case "unlog":
		id, err := strconv.ParseUint(flag.Arg(1), 10, 16)
		if err != nil {
			log.Fatalf("invalid message ID %q: %v", flag.Arg(1), err)
		}
		if err := drv.RequestUnlog(oem6.MessageID(id)); err != nil {
			log.Fatal(err)
		}
	case "unlog-all":
		if err := drv.RequestUnlogAll(hold); err != nil {
			log.Fatal(err)
		}
	case "passthrough":
		raw, err := hex.DecodeString(flag.Arg(1))
		if err != nil {
			log.Fatalf("invalid hex payload: %v", err)
		}
		if err := drv.Passthrough(raw); err != nil {
			log.Fatal(err)
		}
	default:
		if cmd != "" {
			fmt.Printf("Unknown command: %q\n", cmd)
		}
		usage()
	}
}
