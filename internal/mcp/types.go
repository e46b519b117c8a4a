package mcp

import "github.com/1broseidon/floatwm/internal/ipc"

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	Status ipc.StatusData `json:"status"`
}

// ListClientsInput is the input for the list_clients tool.
type ListClientsInput struct {
	Workspace *int `json:"workspace,omitempty" jsonschema:"Only list clients on this workspace (0-based)"`
	Visible   bool `json:"visible,omitempty" jsonschema:"When true, only list clients visible on the active workspace"`
}

// ListClientsOutput is the output for the list_clients tool.
type ListClientsOutput struct {
	Clients []ipc.ClientInfo `json:"clients"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []ipc.MonitorInfo `json:"monitors"`
}

// DispatchActionInput is the input for the dispatch_action tool.
type DispatchActionInput struct {
	Action string   `json:"action" jsonschema:"Action identifier, e.g. move_step, maximize, change_workspace"`
	Args   []string `json:"args,omitempty" jsonschema:"Action arguments, e.g. [\"left\"] for move_step or [\"2\"] for change_workspace"`
	Window uint32   `json:"window,omitempty" jsonschema:"Managed window id to act on (default: the focused client)"`
}

// DispatchActionOutput is the output for the dispatch_action tool.
type DispatchActionOutput struct {
	Result ipc.DispatchData `json:"result"`
}
