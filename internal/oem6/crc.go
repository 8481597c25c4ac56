// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package oem6

import "hash/crc32"

// The OEM6 frame checksum is a reflected CRC-32 (polynomial 0xEDB88320)
// with a zero initial value and no final inversion, matching the
// receiver firmware's CalculateBlockCRC32 routine. The per-byte update
// table is the same one hash/crc32 builds for IEEE; only the pre/post
// inversion differs, so the stdlib table is reused with a plain loop.
var crcTable = crc32.MakeTable(crc32.IEEE)

func calcCrc(data []byte) (crc uint32) {
	for _, b := range data {
		crc = crcTable[byte(crc)^b] ^ (crc >> 8)
	}
	return
}
