// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package oem6

import (
	"testing"
)

// Test checksum against the firmware reference algorithm. A single-byte
// input leaves exactly one table entry as the result, so the canonical
// reflected CRC-32 table values double as device test vectors.
func TestCrcKnownVectors(t *testing.T) {
	tables := []struct {
		in       []byte
		expected uint32
	}{
		{nil, 0x00000000},
		{[]byte{0x00}, 0x00000000},
		{[]byte{0x01}, 0x77073096},
		{[]byte{0x02}, 0xEE0E612C},
		{[]byte{0x03}, 0x990951BA},
	}

	for _, table := range tables {
		out := calcCrc(table.in)
		if out != table.expected {
			t.Errorf("% x expected: %#08x, got: %#08x", table.in, table.expected, out)
		}
	}
}

// Flipping any single bit of the input must change the checksum.
func TestCrcBitFlip(t *testing.T) {
	payload := []byte{0xAA, 0x44, 0x12, 0x1C, 0x01, 0x00, 0x20, 0xF1, 0x3F}
	crc := calcCrc(payload)

	for i := range payload {
		for bit := uint(0); bit < 8; bit++ {
			flipped := make([]byte, len(payload))
			copy(flipped, payload)
			flipped[i] ^= 1 << bit

			if calcCrc(flipped) == crc {
				t.Errorf("flipping byte %d bit %d did not change the checksum", i, bit)
			}
		}
	}
}

func TestCrcDeterministic(t *testing.T) {
	payload := []byte("the quick brown fox")
	if calcCrc(payload) != calcCrc(payload) {
		t.Error("checksum is not deterministic")
	}
}
