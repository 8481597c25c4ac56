// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestECEFToGeodetic(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float64
		lat     float64
		lon     float64
		alt     float64
	}{
		{"equator prime meridian", 6378137.0, 0, 0, 0, 0, 0},
		{"equator 90E", 0, 6378137.0, 0, 0, 90, 0},
		{"equator 180", -6378137.0, 0, 0, 0, 180, 0},
		{"north pole", 0, 0, 6356752.314245, 90, 0, 0},
		{"south pole", 0, 0, -6356752.314245, -90, 0, 0},
		{"equator 100m up", 6378237.0, 0, 0, 0, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, alt := ECEFToGeodetic(tt.x, tt.y, tt.z)
			assert.InDelta(t, tt.lat, lat, 1e-6)
			assert.InDelta(t, tt.lon, lon, 1e-6)
			assert.InDelta(t, tt.alt, alt, 1e-3)
		})
	}
}
