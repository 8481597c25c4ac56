// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package oem6 drives a NovAtel OEM6-family GNSS receiver over its binary
// serial protocol. A background read loop validates and demultiplexes
// incoming frames into a response queue and a log queue; the command API
// sends framed requests and correlates the acknowledgment.
package oem6

import (
	"encoding/binary"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// Depth of the response and log delivery channels. Commands are
	// acknowledged one at a time, so a handful of in-flight frames is
	// enough; a full queue is treated as a hard fault.
	queueDepth = 5

	syncTimeout     = 2 * time.Second
	readTimeout     = 60 * time.Millisecond
	responseTimeout = 500 * time.Millisecond
	logTimeout      = 5 * time.Second
)

// frame couples a validated header with its body for queue delivery.
type frame struct {
	hdr  Header
	body []byte
}

// Driver is one receiver instance. The underlying stream is shared
// between the read loop and command senders behind a mutex, so a command
// write blocks until the loop finishes the frame it is on.
type Driver struct {
	mu   sync.Mutex // serializes access to conn
	conn *conn

	logQ  chan frame
	respQ chan frame
}

// Open connects to the receiver on the given serial device.
func Open(device string, baud int) (*Driver, error) {
	c, err := openConn(device, baud)
	if err != nil {
		return nil, err
	}
	return NewDriver(c.stream), nil
}

// NewDriver builds a driver on an already-open stream.
func NewDriver(stream Stream) *Driver {
	return &Driver{
		conn:  &conn{stream: stream},
		logQ:  make(chan frame, queueDepth),
		respQ: make(chan frame, queueDepth),
	}
}

func (d *Driver) Close() error {
	return d.conn.stream.Close()
}

// RequestVersion asks the receiver for a one-shot version log.
func (d *Driver) RequestVersion() error {
	cmd := NewLogCmd(PortCOM1, MessageIDVersion, TriggerOnce, 0.0, 0.0, false)

	if err := d.sendMessage(cmd); err != nil {
		return err
	}
	return d.getResponse(MessageIDLog)
}

// RequestPosition asks for BestXYZ position logs: once if interval is
// zero, otherwise every interval seconds at the given offset. Logs
// requested with hold set survive a plain unlog-all.
func (d *Driver) RequestPosition(interval, offset float64, hold bool) error {
	trigger := TriggerOnTime
	if interval == 0 {
		trigger = TriggerOnce
	}
	cmd := NewLogCmd(PortCOM1, MessageIDBestXYZ, trigger, interval, offset, hold)

	if err := d.sendMessage(cmd); err != nil {
		return err
	}
	return d.getResponse(MessageIDLog)
}

// RequestErrors asks the receiver to emit status event logs whenever its
// status word changes.
func (d *Driver) RequestErrors() error {
	cmd := NewLogCmd(PortCOM1, MessageIDRxStatusEvent, TriggerOnChanged, 0.0, 0.0, false)

	if err := d.sendMessage(cmd); err != nil {
		return err
	}
	return d.getResponse(MessageIDLog)
}

// RequestUnlog cancels a previously requested log.
func (d *Driver) RequestUnlog(id MessageID) error {
	cmd := NewUnlogCmd(PortCOM1, id)

	if err := d.sendMessage(cmd); err != nil {
		return err
	}
	return d.getResponse(MessageIDUnlog)
}

// RequestUnlogAll cancels all logs. Held logs are removed too only when
// held is set.
func (d *Driver) RequestUnlogAll(held bool) error {
	cmd := NewUnlogAllCmd(PortCOM1, held)

	if err := d.sendMessage(cmd); err != nil {
		return err
	}
	return d.getResponse(MessageIDUnlogAll)
}

// Passthrough writes raw bytes to the receiver with no framing, CRC or
// response wait. Escape hatch for commands this driver does not model.
func (d *Driver) Passthrough(msg []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	log.Debugf("Passthrough write: % x", msg)
	return d.conn.write(msg)
}

// sendMessage serializes a command, appends the CRC over header and body,
// and writes the frame under the stream lock.
func (d *Driver) sendMessage(msg Message) error {
	raw := msg.Bytes()
	buf := make([]byte, len(raw)+crcLen)
	copy(buf, raw)
	binary.LittleEndian.PutUint32(buf[len(raw):], calcCrc(raw))

	d.mu.Lock()
	defer d.mu.Unlock()

	log.Debugf("Sending command: % x", buf)
	return d.conn.write(buf)
}

// getResponse waits for the acknowledgment of a just-sent command and
// translates receiver-reported failure into a typed error.
func (d *Driver) getResponse(expected MessageID) error {
	select {
	case f := <-d.respQ:
		if !f.hdr.isResponse() {
			log.Debug("Correlated message is missing the response flag")
			return ErrNoResponse
		}

		resp, ok := ParseResponse(f.body)
		if !ok {
			log.Debug("Unable to parse response body")
			return ErrNoResponse
		}

		if f.hdr.MsgID != expected {
			log.Debugf("Response message ID mismatch: got %d, want %d", f.hdr.MsgID, expected)
			return ErrResponseMismatch
		}

		if resp.ID != ResponseOk {
			return &CommandError{ID: resp.ID, Description: resp.Text}
		}
		return nil
	case <-time.After(responseTimeout):
		return ErrNoResponse
	}
}

// GetLog returns the next parseable log from the receiver, waiting up to
// five seconds. Misrouted responses and bodies that do not parse are
// skipped under the same deadline, so the call never hangs.
func (d *Driver) GetLog() (Log, error) {
	deadline := time.NewTimer(logTimeout)
	defer deadline.Stop()

	for {
		select {
		case f := <-d.logQ:
			if f.hdr.isResponse() {
				log.Debug("Skipping response message on the log queue")
				continue
			}

			l, err := ParseLog(f.hdr.MsgID, f.body)
			if err != nil {
				log.Debugf("Skipping log message %d: %v", f.hdr.MsgID, err)
				continue
			}
			return l, nil
		case <-deadline.C:
			return nil, ErrNoResponse
		}
	}
}
