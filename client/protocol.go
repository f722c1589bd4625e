package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// recordSeparator terminates every hub message.
const recordSeparator = 0x1e

// Hub message types.
const (
	typeInvocation = 1
	typeCompletion = 3
	typePing       = 6
	typeClose      = 7
)

var handshakeRequest = append([]byte(`{"protocol":"json","version":1}`), recordSeparator)

type message struct {
	Type           int               `json:"type"`
	InvocationID   string            `json:"invocationId,omitempty"`
	Target         string            `json:"target,omitempty"`
	Arguments      []json.RawMessage `json:"arguments,omitempty"`
	Error          string            `json:"error,omitempty"`
	AllowReconnect bool              `json:"allowReconnect,omitempty"`
}

type handshakeResponse struct {
	Error string `json:"error,omitempty"`
}

type negotiateResponse struct {
	ConnectionID    string `json:"connectionId"`
	ConnectionToken string `json:"connectionToken"`
	Error           string `json:"error,omitempty"`
}

// encodeMessage encodes m as a framed hub message.
func encodeMessage(m *message) ([]byte, error) {
	buf, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return append(buf, recordSeparator), nil
}

// invocation returns a framed invocation of target.
func invocation(id string, target string, args ...interface{}) ([]byte, error) {
	m := &message{
		Type:         typeInvocation,
		InvocationID: id,
		Target:       target,
		Arguments:    make([]json.RawMessage, 0, len(args)),
	}
	for _, arg := range args {
		buf, err := json.Marshal(arg)
		if err != nil {
			return nil, fmt.Errorf("encode %s argument: %w", target, err)
		}
		m.Arguments = append(m.Arguments, buf)
	}
	return encodeMessage(m)
}

// splitMessages splits a frame into its hub messages.
func splitMessages(frame []byte) [][]byte {
	var messages [][]byte
	for _, record := range bytes.Split(frame, []byte{recordSeparator}) {
		record = bytes.TrimSpace(record)
		if len(record) == 0 {
			continue
		}
		messages = append(messages, record)
	}
	return messages
}
