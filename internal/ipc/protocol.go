package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType enumerates control socket commands
type CommandType string

const (
	CommandStatus CommandType = "STATUS"
	CommandRedraw CommandType = "REDRAW"
	CommandStop   CommandType = "STOP"
)

// Request is a control request from client to server
type Request struct {
	Command CommandType `json:"command"`
}

// Response is the server's reply
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData is the data returned by STATUS
type StatusData struct {
	Running       bool  `json:"running"`
	Components    int   `json:"components"`
	UptimeSeconds int64 `json:"uptime_seconds"`
	X             int   `json:"x"`
	Y             int   `json:"y"`
	Width         int   `json:"width"`
	Height        int   `json:"height"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
