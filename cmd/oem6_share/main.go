// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"gitlab.com/gnss-tools/oem6_share/internal/config"
	"gitlab.com/gnss-tools/oem6_share/internal/geo"
	"gitlab.com/gnss-tools/oem6_share/internal/nmea"
	"gitlab.com/gnss-tools/oem6_share/internal/oem6"
	"gitlab.com/gnss-tools/oem6_share/internal/pool"
	"gitlab.com/gnss-tools/oem6_share/internal/server"
)

func usage() {
	flag.CommandLine.Usage()
}

func main() {
	var confFile string
	flag.StringVar(&confFile, "c", "/etc/oem6_share.conf", "Configuration file to use.")
	var verbose bool
	flag.BoolVar(&verbose, "v", false, "Enable debug logging.")
	var help bool
	flag.BoolVar(&help, "h", false, "Print help and quit.")

	flag.Usage = func() {
		fmt.Println("usage: oem6_share [OPTION...]")
		fmt.Println("Share position fixes from a NovAtel OEM6 receiver over a unix socket.")
		fmt.Println("Options:")
		flag.PrintDefaults()
	}

	flag.Parse()

	if help {
		usage()
		return
	}

	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	conf, err := config.Parse(confFile)
	if err != nil {
		log.Fatal(err)
	}

	drv, err := oem6.Open(conf.DevicePath, conf.BaudRate)
	if err != nil {
		log.Fatal(err)
	}
	defer drv.Close()

	errChan := make(chan error, 1)
	go drv.ReadLoop(errChan)

	connPool := pool.New()
	go connPool.Start()
	go broadcastFixes(drv, connPool)

	startChan := make(chan bool)
	stopChan := make(chan bool)

	srv := server.New(conf.Socket, conf.OwnerGroup, startChan, stopChan, connPool)
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal(err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case err := <-errChan:
			log.Fatal(err)
		case <-startChan:
			log.Infof("First client connected, requesting position logs every %gs", conf.Interval)
			if err := drv.RequestPosition(conf.Interval, conf.Offset, conf.Hold); err != nil {
				log.Errorf("Unable to request position logs: %v", err)
			}
		case <-stopChan:
			if err := drv.RequestUnlog(oem6.MessageIDBestXYZ); err != nil {
				log.Errorf("Unable to stop position logs: %v", err)
			}
		case sig := <-sigChan:
			log.Infof("Received %v, stopping all logs", sig)
			if err := drv.RequestUnlogAll(false); err != nil {
				log.Errorf("Unable to stop logs: %v", err)
			}
			return
		}
	}
}

// broadcastFixes forwards position solutions to connected clients as
// NMEA GGA sentences.
func broadcastFixes(drv *oem6.Driver, connPool *pool.Pool) {
	for {
		l, err := drv.GetLog()
		if err != nil {
			// no log inside the wait window, keep listening
			continue
		}

		fix, ok := l.(oem6.BestXYZLog)
		if !ok {
			log.Debugf("Ignoring non-position log %d", l.LogID())
			continue
		}

		lat, lon, alt := geo.ECEFToGeodetic(fix.Position[0], fix.Position[1], fix.Position[2])
		sentence := nmea.GGA(time.Now().UTC(), lat, lon, alt, int(fix.SatsUsed))

		connPool.Broadcast <- sentence.Bytes()
	}
}
