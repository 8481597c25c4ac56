// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package nmea

import (
	"fmt"
	"math"
	"time"
)

type Sentence struct {
	Type string
	Data []string
}

func checksum(s string) string {
	var sum uint8
	for i := 0; i < len(s); i++ {
		sum ^= s[i]
	}

	return fmt.Sprintf("%02X", sum)
}

func (s Sentence) String() string {
	sentence := s.Type
	for _, d := range s.Data {
		sentence = fmt.Sprintf("%s,%s", sentence, d)
	}

	if len(s.Data) == 0 {
		// always make sure the type is followed by a comma if there is no data
		sentence = fmt.Sprintf("%s,", sentence)
	}

	str := fmt.Sprintf("$%s*%s", sentence, checksum(sentence))
	return str
}

func (s Sentence) Bytes() []byte {
	return []byte(s.String())
}

// GGA builds a GPGGA fix sentence from a geodetic position. Latitude and
// longitude are decimal degrees, altitude is meters above the ellipsoid.
func GGA(t time.Time, lat, lon, alt float64, sats int) Sentence {
	quality := "1"
	if sats == 0 {
		quality = "0"
	}

	return Sentence{
		Type: "GPGGA",
		Data: []string{
			t.Format("150405.000"),
			formatCoord(lat, false),
			hemisphere(lat, "N", "S"),
			formatCoord(lon, true),
			hemisphere(lon, "E", "W"),
			quality,
			fmt.Sprintf("%02d", sats),
			"", // HDOP is not carried in the position log
			fmt.Sprintf("%.1f", alt),
			"M",
			"", // geoid separation unknown
			"M",
			"",
			"",
		},
	}
}

// formatCoord renders decimal degrees as DDMM.MMMMM (latitude) or
// DDDMM.MMMMM (longitude), unsigned; the hemisphere field carries the
// sign.
func formatCoord(deg float64, isLon bool) string {
	deg = math.Abs(deg)
	d := math.Floor(deg)
	m := (deg - d) * 60

	if isLon {
		return fmt.Sprintf("%03.0f%08.5f", d, m)
	}
	return fmt.Sprintf("%02.0f%08.5f", d, m)
}

func hemisphere(v float64, pos string, neg string) string {
	if v < 0 {
		return neg
	}
	return pos
}
