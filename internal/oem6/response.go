// Copyright 2022 oem6_share contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package oem6

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// ResponseID is the result code the receiver returns for a command.
type ResponseID uint32

const (
	ResponseOk                  ResponseID = 1
	ResponseLogInvalid          ResponseID = 2
	ResponseOutOfResources      ResponseID = 3
	ResponsePacketNotVerified   ResponseID = 4
	ResponseCommandFailed       ResponseID = 5
	ResponseInvalidID           ResponseID = 6
	ResponseInvalidField        ResponseID = 7
	ResponseInvalidChecksum     ResponseID = 8
	ResponseMissingField        ResponseID = 9
	ResponseArrayFieldSizeError ResponseID = 10
	ResponseMissingCRC          ResponseID = 11
	ResponseInvalidCRC          ResponseID = 12
)

var responseNames = map[ResponseID]string{
	ResponseOk:                  "OK",
	ResponseLogInvalid:          "log invalid",
	ResponseOutOfResources:      "out of resources",
	ResponsePacketNotVerified:   "packet not verified",
	ResponseCommandFailed:       "command failed",
	ResponseInvalidID:           "invalid message ID",
	ResponseInvalidField:        "invalid message field",
	ResponseInvalidChecksum:     "invalid checksum",
	ResponseMissingField:        "missing field",
	ResponseArrayFieldSizeError: "array field size error",
	ResponseMissingCRC:          "missing CRC",
	ResponseInvalidCRC:          "invalid CRC",
}

func (r ResponseID) String() string {
	if name, ok := responseNames[r]; ok {
		return name
	}
	return fmt.Sprintf("response code %d", uint32(r))
}

// Response is a parsed command acknowledgment: a result code followed by
// a free-text description from the receiver.
type Response struct {
	ID   ResponseID
	Text string
}

// ParseResponse decodes a response-flagged message body. A body too short
// to carry a result code yields no value.
func ParseResponse(body []byte) (Response, bool) {
	if len(body) < 4 {
		return Response{}, false
	}
	return Response{
		ID:   ResponseID(binary.LittleEndian.Uint32(body[0:4])),
		Text: strings.TrimRight(string(body[4:]), "\x00"),
	}, true
}
