// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package oem6

import (
	"errors"
	"time"

	"go.bug.st/serial"
)

// Stream is the byte-level connection frames are read from and commands
// are written to. The real implementation is a serial port; tests
// substitute an in-memory script.
type Stream interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	SetReadTimeout(t time.Duration) error
	Close() error
}

// errReadTimeout marks a read that ran out of time without a genuine I/O
// failure. The dispatcher absorbs these; everything else is fatal.
var errReadTimeout = errors.New("oem6: read timed out")

// conn wraps a Stream with exact-count reads. The receiver is wired
// 8 data bits, no parity, 1 stop bit, no flow control.
type conn struct {
	stream Stream
}

func openConn(device string, baud int) (*conn, error) {
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, &TransportError{Op: "open", Err: err}
	}
	return &conn{stream: port}, nil
}

// read returns exactly n bytes, or errReadTimeout if they did not all
// arrive within the timeout. The port reports its own read timeout as a
// zero-length read.
func (c *conn) read(n int, timeout time.Duration) ([]byte, error) {
	if err := c.stream.SetReadTimeout(timeout); err != nil {
		return nil, &TransportError{Op: "read", Err: err}
	}

	buf := make([]byte, n)
	deadline := time.Now().Add(timeout)

	for read := 0; read < n; {
		m, err := c.stream.Read(buf[read:])
		if err != nil {
			return nil, &TransportError{Op: "read", Err: err}
		}
		if m == 0 {
			return nil, errReadTimeout
		}
		read += m
		if read < n && time.Now().After(deadline) {
			return nil, errReadTimeout
		}
	}
	return buf, nil
}

func (c *conn) write(p []byte) error {
	if _, err := c.stream.Write(p); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}
