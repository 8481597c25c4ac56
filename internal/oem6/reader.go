// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package oem6

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ReadLoop continually pulls frames off the receiver, validates them and
// routes each to the response or log queue. Run it in its own goroutine
// for the lifetime of the driver:
//
//	errCh := make(chan error, 1)
//	go drv.ReadLoop(errCh)
//
// Read timeouts just mean no frame arrived yet and the loop carries on.
// Any other transport failure, and a full delivery queue, stops the loop
// and is reported on errCh.
func (d *Driver) ReadLoop(errCh chan<- error) {
	for {
		if err := d.readFrame(); err != nil {
			if errors.Is(err, errReadTimeout) {
				continue
			}
			errCh <- fmt.Errorf("oem6/Driver.ReadLoop: %w", err)
			return
		}
	}
}

// readFrame reads and dispatches a single frame. The stream lock is held
// for the whole frame so a command write cannot interleave mid-frame.
// Framing anomalies return nil: the frame is dropped and the caller
// resynchronizes on the next marker.
func (d *Driver) readFrame() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	raw, err := d.conn.read(len(syncMarker), syncTimeout)
	if err != nil {
		return err
	}
	if !bytes.Equal(raw, syncMarker) {
		// garbage between frames
		return nil
	}

	rest, err := d.conn.read(headerLen-len(syncMarker), readTimeout)
	if err != nil {
		return err
	}
	raw = append(raw, rest...)

	hdr, ok := ParseHeader(raw)
	if !ok {
		log.Debug("Discarding frame with malformed header")
		return nil
	}

	body, err := d.conn.read(int(hdr.MsgLen)+crcLen, readTimeout)
	if err != nil {
		return err
	}

	sent := binary.LittleEndian.Uint32(body[len(body)-crcLen:])
	body = body[:len(body)-crcLen]

	if calc := calcCrc(append(raw, body...)); calc != sent {
		log.Debugf("Discarding frame with bad CRC: calculated %#08x, received %#08x", calc, sent)
		return nil
	}

	q, kind := d.logQ, "log"
	if hdr.isResponse() {
		q, kind = d.respQ, "response"
	}

	select {
	case q <- frame{hdr: hdr, body: body}:
	default:
		return fmt.Errorf("%s queue full, dropping message %d", kind, hdr.MsgID)
	}
	return nil
}
