// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package oem6

import (
	"errors"
	"fmt"
)

var (
	// ErrGeneric is the catch-all failure, reserved for test and edge
	// paths that carry no better diagnosis.
	ErrGeneric = errors.New("oem6: generic error")

	// ErrNoResponse means no valid, matching response arrived within the
	// timeout, or the received item failed validation.
	ErrNoResponse = errors.New("oem6: failed to get command response")

	// ErrResponseMismatch means a response arrived but for the wrong
	// message ID.
	ErrResponseMismatch = errors.New("oem6: response message ID mismatch")
)

// CommandError means the receiver explicitly rejected a command.
type CommandError struct {
	ID          ResponseID
	Description string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("oem6: command error (%s): %s", e.ID, e.Description)
}

// UnknownMessageError means a well-formed frame carried a message ID this
// driver does not model.
type UnknownMessageError struct {
	ID uint16
}

func (e *UnknownMessageError) Error() string {
	return fmt.Sprintf("oem6: unknown message received: %#x", e.ID)
}

// TransportError wraps a failure of the underlying serial connection.
// Constructed at the transport boundary; read timeouts are not transport
// errors.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("oem6: transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
