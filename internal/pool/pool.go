// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package pool

import (
	"net"

	log "github.com/sirupsen/logrus"
)

// ClientChannelSize bounds each client's send channel. A client that
// stops draining loses sentences rather than stalling the broadcast.
const ClientChannelSize = 8

type Client struct {
	Send chan []byte
	Conn *net.Conn
}

// Pool fans broadcast messages out to every registered client.
type Pool struct {
	Register   chan *Client
	Unregister chan *Client
	Clients    map[*Client]bool
	Broadcast  chan []byte
}

func New() *Pool {
	return &Pool{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
	}
}

func (p *Pool) Start() {
	for {
		select {
		case c := <-p.Register:
			p.Clients[c] = true
		case c := <-p.Unregister:
			delete(p.Clients, c)
		case msg := <-p.Broadcast:
			line := append(msg, byte('\n'))
			for c := range p.Clients {
				select {
				case c.Send <- line:
				default:
					log.Warn("Client not keeping up, dropping message")
				}
			}
		}
	}
}
