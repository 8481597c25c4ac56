// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"io/ioutil"

	toml "github.com/pelletier/go-toml"
)

type Config struct {
	Socket     string  `toml:"socket"`
	OwnerGroup string  `toml:"group"`
	DevicePath string  `toml:"device_path"`
	BaudRate   int     `toml:"device_baud_rate"`
	Interval   float64 `toml:"position_interval"`
	Offset     float64 `toml:"position_offset"`
	Hold       bool    `toml:"position_hold"`
}

func Parse(file string) (c *Config, err error) {
	contents, err := ioutil.ReadFile(file)
	if err != nil {
		err = fmt.Errorf("config.Parse(): %w", err)
		return
	}

	// position logs once per second unless configured otherwise
	c = &Config{
		BaudRate: 9600,
		Interval: 1.0,
	}

	if err = toml.Unmarshal(contents, c); err != nil {
		err = fmt.Errorf("config.Parse(): %w", err)
	}

	return
}
