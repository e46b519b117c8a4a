// Package mcp exposes the running window manager as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/floatwm/internal/action"
	"github.com/1broseidon/floatwm/internal/ipc"
)

const (
	ServerName    = "floatwm"
	ServerVersion = "0.1.0"
)

// Daemon is the control surface the tools call. *ipc.Client implements it.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	GetMonitors() (*ipc.MonitorsData, error)
	ListClients() (*ipc.ClientsData, error)
	Dispatch(actionName string, args []string, window uint32) (*ipc.DispatchData, error)
}

// Server is the MCP server for floatwm.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
}

// NewServer creates an MCP server that forwards to daemon.
func NewServer(daemon Daemon) *Server {
	s := &Server{daemon: daemon}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	log.Printf("MCP server %s %s serving on stdio", ServerName, ServerVersion)
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report the window manager state: active workspace and screen, number of managed clients, the focused window and whether a mouse drag is in progress.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_clients",
		Description: "List managed windows with their workspace, screen, geometry, tiling state and flags. Optionally filter by workspace or to the visible ones.",
	}, s.handleListClients)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List screens with their full bounds and the usable area left after the outer margins.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "dispatch_action",
		Description: "Run a window manager action as if its key binding was pressed. Known actions: " + strings.Join(actionNames(), ", ") + ". Returns the directives the action produced, or a note such as no_target when it had no effect.",
	}, s.handleDispatchAction)
}

func actionNames() []string {
	kinds := action.Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		if !k.PointerOnly() {
			names = append(names, string(k))
		}
	}
	return names
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	st, err := s.daemon.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{Status: *st}, nil
}

func (s *Server) handleListClients(_ context.Context, _ *mcpsdk.CallToolRequest, args ListClientsInput) (*mcpsdk.CallToolResult, ListClientsOutput, error) {
	data, err := s.daemon.ListClients()
	if err != nil {
		return nil, ListClientsOutput{}, err
	}

	out := ListClientsOutput{Clients: make([]ipc.ClientInfo, 0, len(data.Clients))}
	for _, c := range data.Clients {
		if args.Workspace != nil && c.Workspace != *args.Workspace {
			continue
		}
		if args.Visible && !c.Visible {
			continue
		}
		out.Clients = append(out.Clients, c)
	}
	return nil, out, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	data, err := s.daemon.GetMonitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}
	return nil, ListMonitorsOutput{Monitors: data.Monitors}, nil
}

func (s *Server) handleDispatchAction(_ context.Context, _ *mcpsdk.CallToolRequest, args DispatchActionInput) (*mcpsdk.CallToolResult, DispatchActionOutput, error) {
	name := strings.TrimSpace(args.Action)
	if name == "" {
		return nil, DispatchActionOutput{}, fmt.Errorf("action is required")
	}
	// Malformed actions never reach the daemon.
	a, err := action.Parse(name, args.Args)
	if err != nil {
		return nil, DispatchActionOutput{}, err
	}
	if a.Kind.PointerOnly() {
		return nil, DispatchActionOutput{}, fmt.Errorf("action %s needs a pointer button binding", a.Kind)
	}

	data, err := s.daemon.Dispatch(name, args.Args, args.Window)
	if err != nil {
		return nil, DispatchActionOutput{}, err
	}
	return nil, DispatchActionOutput{Result: *data}, nil
}
