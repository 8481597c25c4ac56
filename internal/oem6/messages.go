// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package oem6

import (
	"encoding/binary"
	"math"
)

// MessageID identifies a binary message type on the wire.
type MessageID uint16

// Message IDs for the commands and logs this driver knows about.
const (
	MessageIDLog           MessageID = 1
	MessageIDUnlog         MessageID = 36
	MessageIDVersion       MessageID = 37
	MessageIDUnlogAll      MessageID = 38
	MessageIDRxStatusEvent MessageID = 94
	MessageIDBestXYZ       MessageID = 241
)

// Port identifies a receiver communication port in command bodies.
type Port uint32

const (
	PortCOM1 Port = 0x20
	PortThis Port = 0xC0
)

// LogTrigger selects the condition under which a requested log is
// (re-)emitted by the receiver.
type LogTrigger uint32

const (
	TriggerOnNew LogTrigger = iota
	TriggerOnChanged
	TriggerOnTime
	TriggerOnNext
	TriggerOnce
	TriggerOnMark
)

// Message is an outbound command. Bytes returns header plus body, without
// the trailing CRC; the sender appends the CRC so the same serialization
// is usable in tests.
type Message interface {
	Bytes() []byte
}

const logCmdLen = 32

// LogCmd requests a log from the receiver.
type LogCmd struct {
	hdr      Header
	Port     Port
	MsgID    MessageID
	MsgType  uint8
	Reserved uint8
	Trigger  LogTrigger
	Period   float64
	Offset   float64
	Hold     bool
}

func NewLogCmd(port Port, id MessageID, trigger LogTrigger, period, offset float64, hold bool) LogCmd {
	return LogCmd{
		hdr:     newHeader(MessageIDLog, logCmdLen),
		Port:    port,
		MsgID:   id,
		Trigger: trigger,
		Period:  period,
		Offset:  offset,
		Hold:    hold,
	}
}

func (c LogCmd) Bytes() []byte {
	body := make([]byte, logCmdLen)
	binary.LittleEndian.PutUint32(body[0:4], uint32(c.Port))
	binary.LittleEndian.PutUint16(body[4:6], uint16(c.MsgID))
	body[6] = c.MsgType
	body[7] = c.Reserved
	binary.LittleEndian.PutUint32(body[8:12], uint32(c.Trigger))
	binary.LittleEndian.PutUint64(body[12:20], math.Float64bits(c.Period))
	binary.LittleEndian.PutUint64(body[20:28], math.Float64bits(c.Offset))
	if c.Hold {
		binary.LittleEndian.PutUint32(body[28:32], 1)
	}
	return append(c.hdr.Bytes(), body...)
}

const unlogCmdLen = 8

// UnlogCmd cancels a previously requested log by message ID.
type UnlogCmd struct {
	hdr      Header
	Port     Port
	MsgID    MessageID
	MsgType  uint8
	Reserved uint8
}

func NewUnlogCmd(port Port, id MessageID) UnlogCmd {
	return UnlogCmd{
		hdr:   newHeader(MessageIDUnlog, unlogCmdLen),
		Port:  port,
		MsgID: id,
	}
}

func (c UnlogCmd) Bytes() []byte {
	body := make([]byte, unlogCmdLen)
	binary.LittleEndian.PutUint32(body[0:4], uint32(c.Port))
	binary.LittleEndian.PutUint16(body[4:6], uint16(c.MsgID))
	body[6] = c.MsgType
	body[7] = c.Reserved
	return append(c.hdr.Bytes(), body...)
}

const unlogAllCmdLen = 8

// UnlogAllCmd cancels all logs. Logs requested with hold set survive
// unless Held is also set.
type UnlogAllCmd struct {
	hdr  Header
	Port Port
	Held bool
}

func NewUnlogAllCmd(port Port, held bool) UnlogAllCmd {
	return UnlogAllCmd{
		hdr:  newHeader(MessageIDUnlogAll, unlogAllCmdLen),
		Port: port,
		Held: held,
	}
}

func (c UnlogAllCmd) Bytes() []byte {
	body := make([]byte, unlogAllCmdLen)
	binary.LittleEndian.PutUint32(body[0:4], uint32(c.Port))
	if c.Held {
		binary.LittleEndian.PutUint32(body[4:8], 1)
	}
	return append(c.hdr.Bytes(), body...)
}
