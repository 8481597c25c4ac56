// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package oem6

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex fixture: %v", err)
	}
	return b
}

// Serialized commands must match the wire format byte for byte. The
// trailing CRC is appended by the sender and is not part of Bytes().
func TestCommandSerialization(t *testing.T) {
	tables := []struct {
		name     string
		msg      Message
		expected string
	}{
		{
			"position on-time 1s",
			NewLogCmd(PortCOM1, MessageIDBestXYZ, TriggerOnTime, 1.0, 0.0, false),
			"aa44121c 0100 00 00 2000 0000 00 00 0000 00000000 00000000 0000 0000" +
				"20000000 f100 00 00 02000000 000000000000f03f 0000000000000000 00000000",
		},
		{
			"version once",
			NewLogCmd(PortCOM1, MessageIDVersion, TriggerOnce, 0.0, 0.0, false),
			"aa44121c 0100 00 00 2000 0000 00 00 0000 00000000 00000000 0000 0000" +
				"20000000 2500 00 00 04000000 0000000000000000 0000000000000000 00000000",
		},
		{
			"errors on-changed held",
			NewLogCmd(PortCOM1, MessageIDRxStatusEvent, TriggerOnChanged, 0.0, 0.0, true),
			"aa44121c 0100 00 00 2000 0000 00 00 0000 00000000 00000000 0000 0000" +
				"20000000 5e00 00 00 01000000 0000000000000000 0000000000000000 01000000",
		},
		{
			"unlog bestxyz",
			NewUnlogCmd(PortCOM1, MessageIDBestXYZ),
			"aa44121c 2400 00 00 0800 0000 00 00 0000 00000000 00000000 0000 0000" +
				"20000000 f100 00 00",
		},
		{
			"unlog-all held",
			NewUnlogAllCmd(PortCOM1, true),
			"aa44121c 2600 00 00 0800 0000 00 00 0000 00000000 00000000 0000 0000" +
				"20000000 01000000",
		},
	}

	for _, table := range tables {
		expected := mustHex(t, table.expected)
		out := table.msg.Bytes()
		if !bytes.Equal(out, expected) {
			t.Errorf("%s:\nexpected: % x\ngot:      % x", table.name, expected, out)
		}
	}
}

// The serialized command re-parses into a header describing its own body.
func TestCommandHeaderConsistency(t *testing.T) {
	raw := NewLogCmd(PortCOM1, MessageIDBestXYZ, TriggerOnTime, 1.0, 0.0, false).Bytes()

	hdr, ok := ParseHeader(raw)
	if !ok {
		t.Fatal("command header did not parse")
	}
	if hdr.MsgID != MessageIDLog {
		t.Errorf("expected message ID %d, got %d", MessageIDLog, hdr.MsgID)
	}
	if int(hdr.MsgLen) != len(raw)-headerLen {
		t.Errorf("header body length %d does not match body size %d", hdr.MsgLen, len(raw)-headerLen)
	}
}
