// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package oem6

import (
	"reflect"
	"testing"
)

// A header re-parsed from its own serialized bytes must be identical.
func TestHeaderRoundTrip(t *testing.T) {
	hdr := newHeader(MessageIDBestXYZ, 112)
	hdr.MsgType = responseBit | 0x02
	hdr.PortAddr = 0x20
	hdr.Seq = 3
	hdr.IdleTime = 0x42
	hdr.TimeStatus = 180
	hdr.Week = 2190
	hdr.Ms = -1
	hdr.RxStatus = 0x00400000
	hdr.RxVersion = 0x7E00

	parsed, ok := ParseHeader(hdr.Bytes())
	if !ok {
		t.Fatal("serialized header did not parse")
	}
	if !reflect.DeepEqual(hdr, parsed) {
		t.Errorf("round trip mismatch:\nin:  %+v\nout: %+v", hdr, parsed)
	}
}

// Malformed headers yield no value, never an error.
func TestParseHeaderMalformed(t *testing.T) {
	good := newHeader(MessageIDLog, 32).Bytes()

	badSync := append([]byte{}, good...)
	badSync[0] = 0xAB

	badLen := append([]byte{}, good...)
	badLen[3] = 0x1B

	tables := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"truncated", good[:12]},
		{"bad sync", badSync},
		{"bad header length", badLen},
	}

	for _, table := range tables {
		if _, ok := ParseHeader(table.in); ok {
			t.Errorf("%s: expected parse failure", table.name)
		}
	}
}

func TestHeaderResponseFlag(t *testing.T) {
	hdr := newHeader(MessageIDLog, 6)
	if hdr.isResponse() {
		t.Error("fresh header must not carry the response flag")
	}
	hdr.MsgType |= responseBit
	if !hdr.isResponse() {
		t.Error("response flag not detected")
	}
}
