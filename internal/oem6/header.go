// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package oem6

import (
	"bytes"
	"encoding/binary"
)

// syncMarker is the fixed three-byte constant that starts every binary
// frame sent or received on the wire.
var syncMarker = []byte{0xAA, 0x44, 0x12}

const (
	headerLen   = 28
	crcLen      = 4
	responseBit = 0x80
)

// Header is the fixed 28-byte header of a binary message, scalars
// little-endian. MsgType bit 0x80 marks a command response, everything
// else is a log.
type Header struct {
	Sync       [3]byte
	HdrLen     uint8
	MsgID      MessageID
	MsgType    uint8
	PortAddr   uint8
	MsgLen     uint16
	Seq        uint16
	IdleTime   uint8
	TimeStatus uint8
	Week       uint16
	Ms         int32
	RxStatus   uint32
	Reserved   uint16
	RxVersion  uint16
}

func newHeader(id MessageID, msgLen uint16) Header {
	h := Header{
		HdrLen: headerLen,
		MsgID:  id,
		MsgLen: msgLen,
	}
	copy(h.Sync[:], syncMarker)
	return h
}

// ParseHeader decodes the first 28 bytes of a frame. A malformed header
// yields no value rather than an error: on a serial link it is expected
// noise and the frame is simply dropped.
func ParseHeader(raw []byte) (hdr Header, ok bool) {
	if len(raw) < headerLen {
		return hdr, false
	}
	if !bytes.Equal(raw[0:3], syncMarker) {
		return hdr, false
	}
	if raw[3] != headerLen {
		return hdr, false
	}

	copy(hdr.Sync[:], raw[0:3])
	hdr.HdrLen = raw[3]
	hdr.MsgID = MessageID(binary.LittleEndian.Uint16(raw[4:6]))
	hdr.MsgType = raw[6]
	hdr.PortAddr = raw[7]
	hdr.MsgLen = binary.LittleEndian.Uint16(raw[8:10])
	hdr.Seq = binary.LittleEndian.Uint16(raw[10:12])
	hdr.IdleTime = raw[12]
	hdr.TimeStatus = raw[13]
	hdr.Week = binary.LittleEndian.Uint16(raw[14:16])
	hdr.Ms = int32(binary.LittleEndian.Uint32(raw[16:20]))
	hdr.RxStatus = binary.LittleEndian.Uint32(raw[20:24])
	hdr.Reserved = binary.LittleEndian.Uint16(raw[24:26])
	hdr.RxVersion = binary.LittleEndian.Uint16(raw[26:28])

	return hdr, true
}

func (h Header) Bytes() []byte {
	buf := make([]byte, headerLen)
	copy(buf[0:3], h.Sync[:])
	buf[3] = h.HdrLen
	binary.LittleEndian.PutUint16(buf[4:6], uint16(h.MsgID))
	buf[6] = h.MsgType
	buf[7] = h.PortAddr
	binary.LittleEndian.PutUint16(buf[8:10], h.MsgLen)
	binary.LittleEndian.PutUint16(buf[10:12], h.Seq)
	buf[12] = h.IdleTime
	buf[13] = h.TimeStatus
	binary.LittleEndian.PutUint16(buf[14:16], h.Week)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(h.Ms))
	binary.LittleEndian.PutUint32(buf[20:24], h.RxStatus)
	binary.LittleEndian.PutUint16(buf[24:26], h.Reserved)
	binary.LittleEndian.PutUint16(buf[26:28], h.RxVersion)
	return buf
}

func (h Header) isResponse() bool {
	return h.MsgType&responseBit == responseBit
}
