// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package oem6

import (
	"encoding/binary"
	"math"
	"strings"
)

// Log is one parsed unsolicited message from the receiver.
type Log interface {
	LogID() MessageID
}

// VersionComponent describes one hardware or firmware component reported
// in a version log.
type VersionComponent struct {
	CompType    uint32
	Model       string
	Serial      string
	HwVersion   string
	SwVersion   string
	BootVersion string
	CompileDate string
	CompileTime string
}

// VersionLog reports receiver hardware and firmware version information.
type VersionLog struct {
	Components []VersionComponent
}

func (VersionLog) LogID() MessageID { return MessageIDVersion }

// BestXYZLog is the receiver's best available position and velocity
// solution, in ECEF coordinates.
type BestXYZLog struct {
	PosStatus    uint32
	PosType      uint32
	Position     [3]float64
	PosDeviation [3]float32
	VelStatus    uint32
	VelType      uint32
	Velocity     [3]float64
	VelDeviation [3]float32
	StationID    string
	Latency      float32
	DiffAge      float32
	SolAge       float32
	SatsTracked  uint8
	SatsUsed     uint8
}

func (BestXYZLog) LogID() MessageID { return MessageIDBestXYZ }

// RxStatusEventLog reports a change in the receiver's status word.
type RxStatusEventLog struct {
	Word        uint32
	Bit         uint32
	Event       uint32
	Description string
}

func (RxStatusEventLog) LogID() MessageID { return MessageIDRxStatusEvent }

// ParseLog decodes a log-flagged message body keyed by its header message
// ID. An unrecognized ID returns an UnknownMessageError so strict callers
// can tell "not a log we model" from "corrupt body"; the log consumer
// skips both.
func ParseLog(id MessageID, body []byte) (Log, error) {
	switch id {
	case MessageIDVersion:
		return parseVersionLog(body)
	case MessageIDBestXYZ:
		return parseBestXYZLog(body)
	case MessageIDRxStatusEvent:
		return parseRxStatusEventLog(body)
	default:
		return nil, &UnknownMessageError{ID: uint16(id)}
	}
}

const versionComponentLen = 108

func parseVersionLog(body []byte) (Log, error) {
	if len(body) < 4 {
		return nil, ErrGeneric
	}
	count := int(binary.LittleEndian.Uint32(body[0:4]))
	if len(body) < 4+count*versionComponentLen {
		return nil, ErrGeneric
	}

	var l VersionLog
	for i := 0; i < count; i++ {
		c := body[4+i*versionComponentLen:]
		l.Components = append(l.Components, VersionComponent{
			CompType:    binary.LittleEndian.Uint32(c[0:4]),
			Model:       cstr(c[4:20]),
			Serial:      cstr(c[20:36]),
			HwVersion:   cstr(c[36:52]),
			SwVersion:   cstr(c[52:68]),
			BootVersion: cstr(c[68:84]),
			CompileDate: cstr(c[84:96]),
			CompileTime: cstr(c[96:108]),
		})
	}
	return l, nil
}

const bestXYZLen = 106

func parseBestXYZLog(body []byte) (Log, error) {
	if len(body) < bestXYZLen {
		return nil, ErrGeneric
	}

	l := BestXYZLog{
		PosStatus:   binary.LittleEndian.Uint32(body[0:4]),
		PosType:     binary.LittleEndian.Uint32(body[4:8]),
		VelStatus:   binary.LittleEndian.Uint32(body[44:48]),
		VelType:     binary.LittleEndian.Uint32(body[48:52]),
		StationID:   cstr(body[88:92]),
		Latency:     float32FromLE(body[92:96]),
		DiffAge:     float32FromLE(body[96:100]),
		SolAge:      float32FromLE(body[100:104]),
		SatsTracked: body[104],
		SatsUsed:    body[105],
	}
	for i := 0; i < 3; i++ {
		l.Position[i] = float64FromLE(body[8+i*8 : 16+i*8])
		l.PosDeviation[i] = float32FromLE(body[32+i*4 : 36+i*4])
		l.Velocity[i] = float64FromLE(body[52+i*8 : 60+i*8])
		l.VelDeviation[i] = float32FromLE(body[76+i*4 : 80+i*4])
	}
	return l, nil
}

const rxStatusEventLen = 44

func parseRxStatusEventLog(body []byte) (Log, error) {
	if len(body) < rxStatusEventLen {
		return nil, ErrGeneric
	}
	return RxStatusEventLog{
		Word:        binary.LittleEndian.Uint32(body[0:4]),
		Bit:         binary.LittleEndian.Uint32(body[4:8]),
		Event:       binary.LittleEndian.Uint32(body[8:12]),
		Description: cstr(body[12:44]),
	}, nil
}

// cstr trims the NUL padding off a fixed-width ASCII field.
func cstr(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}

func float32FromLE(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func float64FromLE(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
