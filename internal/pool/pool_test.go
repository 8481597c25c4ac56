// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package pool

import (
	"testing"
	"time"
)

func TestBroadcast(t *testing.T) {
	p := New()
	go p.Start()

	c := &Client{Send: make(chan []byte, ClientChannelSize)}
	p.Register <- c
	p.Broadcast <- []byte("$GPGGA,123045.000")

	select {
	case msg := <-c.Send:
		if string(msg) != "$GPGGA,123045.000\n" {
			t.Errorf("unexpected message: %q", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestUnregister(t *testing.T) {
	p := New()
	go p.Start()

	c := &Client{Send: make(chan []byte, ClientChannelSize)}
	p.Register <- c
	p.Unregister <- c
	p.Broadcast <- []byte("dropped")

	select {
	case msg := <-c.Send:
		t.Errorf("unregistered client received: %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSlowClientDoesNotBlock(t *testing.T) {
	p := New()
	go p.Start()

	// a client that never drains its channel
	c := &Client{Send: make(chan []byte, 1)}
	p.Register <- c

	done := make(chan bool)
	go func() {
		for i := 0; i < 5; i++ {
			p.Broadcast <- []byte("fix")
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}
}
