package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/floatwm/internal/tiling"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetMonitors CommandType = "GET_MONITORS"
	CommandListClients CommandType = "LIST_CLIENTS"
	CommandDispatch    CommandType = "DISPATCH"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	ActiveWorkspace int    `json:"active_workspace"`
	WorkspaceCount  int    `json:"workspace_count"`
	ActiveScreen    int    `json:"active_screen"`
	ClientCount     int    `json:"client_count"`
	Focused         uint32 `json:"focused,omitempty"`
	Drag            string `json:"drag"`
	DragClient      uint32 `json:"drag_client,omitempty"`
	Deferred        int    `json:"deferred"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
	DaemonRunning   bool   `json:"daemon_running"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	X      int         `json:"x"`
	Y      int         `json:"y"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Usable tiling.Rect `json:"usable"`
	Active bool        `json:"active,omitempty"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// ClientInfo describes one managed window in LIST_CLIENTS output.
type ClientInfo struct {
	ID          uint32      `json:"id"`
	Workspace   int         `json:"workspace"`
	Screen      int         `json:"screen"`
	Geometry    tiling.Rect `json:"geometry"`
	State       string      `json:"state"`
	Unkillable  bool        `json:"unkillable,omitempty"`
	AlwaysOnTop bool        `json:"always_on_top,omitempty"`
	Fixed       bool        `json:"fixed,omitempty"`
	Hidden      bool        `json:"hidden,omitempty"`
	Focused     bool        `json:"focused,omitempty"`
	Visible     bool        `json:"visible"`
}

// ClientsData represents the data returned by LIST_CLIENTS
type ClientsData struct {
	Clients []ClientInfo `json:"clients"`
}

// DispatchPayload represents the payload for the DISPATCH command.
// Window selects the target client; zero means the focused one.
type DispatchPayload struct {
	Action string   `json:"action"`
	Args   []string `json:"args,omitempty"`
	Window uint32   `json:"window,omitempty"`
}

// DispatchData reports what a dispatched action did.
type DispatchData struct {
	Action     string   `json:"action"`
	Directives []string `json:"directives,omitempty"`
	Note       string   `json:"note,omitempty"`
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
		Status: StatusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: StatusError,
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("failed to parse request: missing command")
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
