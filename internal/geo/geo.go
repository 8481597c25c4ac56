// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geo converts the receiver's ECEF position solutions into
// geodetic coordinates for broadcasting.
package geo

import "math"

// WGS-84 ellipsoid
const (
	semiMajor  = 6378137.0
	flattening = 1.0 / 298.257223563
)

// ECEFToGeodetic converts earth-centered earth-fixed coordinates (meters)
// to latitude/longitude (degrees) and height above the ellipsoid
// (meters), iterating on the geodetic latitude until it converges.
func ECEFToGeodetic(x, y, z float64) (lat, lon, alt float64) {
	e2 := flattening * (2 - flattening)

	lon = math.Atan2(y, x)
	p := math.Hypot(x, y)

	// start from the reduced-latitude approximation
	lat = math.Atan2(z, p*(1-e2))

	for i := 0; i < 16; i++ {
		sin := math.Sin(lat)
		n := semiMajor / math.Sqrt(1-e2*sin*sin)
		next := math.Atan2(z+e2*n*sin, p)
		if math.Abs(next-lat) < 1e-12 {
			lat = next
			break
		}
		lat = next
	}

	sin := math.Sin(lat)
	n := semiMajor / math.Sqrt(1-e2*sin*sin)
	if cos := math.Cos(lat); math.Abs(cos) > 1e-9 {
		alt = p/cos - n
	} else {
		// at the poles p is zero, measure along the minor axis
		alt = math.Abs(z) - semiMajor*(1-flattening)
	}

	return lat * 180 / math.Pi, lon * 180 / math.Pi, alt
}
