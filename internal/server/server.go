// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package server

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"strconv"

	log "github.com/sirupsen/logrus"

	"gitlab.com/gnss-tools/oem6_share/internal/pool"
)

type Server struct {
	socket    string
	sockGroup string
	connPool  *pool.Pool
	sock      net.Listener
	startChan chan<- bool
	stopChan  chan<- bool
}

// New creates a Server. The server sends 'true' to startChan when the
// first client connects, and 'true' to stopChan when the last client
// disconnects. Messages broadcast through connPool are forwarded to all
// connected clients.
func New(socket string, sockGroup string, startChan chan<- bool, stopChan chan<- bool, connPool *pool.Pool) *Server {
	return &Server{
		socket:    socket,
		sockGroup: sockGroup,
		startChan: startChan,
		stopChan:  stopChan,
		connPool:  connPool,
	}
}

func (s *Server) Start() (err error) {
	if err := os.RemoveAll(s.socket); err != nil {
		return fmt.Errorf("server.Start: %w", err)
	}

	s.sock, err = net.Listen("unix", s.socket)
	if err != nil {
		return fmt.Errorf("server.Start: %w", err)
	}
	defer s.sock.Close()

	if err := os.Chmod(s.socket, 0660); err != nil {
		return fmt.Errorf("server.Start: %w", err)
	}

	group, err := user.LookupGroup(s.sockGroup)
	if err != nil {
		return fmt.Errorf("server.Start: %w", err)
	}

	gid, err := strconv.ParseInt(group.Gid, 10, 16)
	if err != nil {
		return fmt.Errorf("server.Start: %w", err)
	}

	if err := os.Chown(s.socket, -1, int(gid)); err != nil {
		return fmt.Errorf("server.Start: %w", err)
	}

	log.Infof("Accepting connections at: %s", s.socket)
	return s.connectionHandler()
}

func (s *Server) connectionHandler() error {
	for {
		conn, err := s.sock.Accept()
		if err != nil {
			return fmt.Errorf("server.connectionHandler: %w", err)
		}

		client := pool.Client{
			Conn: &conn,
			Send: make(chan []byte, pool.ClientChannelSize),
		}

		if len(s.connPool.Clients) == 0 {
			// client is first one in the connPool
			s.startChan <- true
		}

		s.connPool.Register <- &client

		go s.clientConnection(&client)

		log.Info("New client connected")
	}
}

// Routine run for each client connection
func (s *Server) clientConnection(c *pool.Client) {
	defer func() {
		s.connPool.Unregister <- c
		(*c.Conn).Close()
	}()

	for {
		msg := <-c.Send
		if _, err := (*c.Conn).Write(msg); err != nil {
			break
		}
	}

	// client disconnected
	log.Info("Client disconnected")
	if len(s.connPool.Clients) == 1 {
		// client is last one in the pool
		log.Info("No clients connected, stopping position logs")
		s.stopChan <- true
	}
}
