package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/floatwm/internal/action"
	"github.com/1broseidon/floatwm/internal/engine"
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/registry"
	"github.com/1broseidon/floatwm/internal/runtimepath"
)

// Controller is the daemon side the server forwards commands to. Dispatch
// must apply the resulting directives the same way key bindings do.
type Controller interface {
	Status() engine.Status
	Clients() []registry.Client
	Dispatch(ev engine.Event) (engine.Result, error)
	Reload() error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	ctrl         Controller
	logger       *slog.Logger
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server on the runtime socket path.
func NewServer(ctrl Controller, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, ctrl, logger), nil
}

// NewServerAt creates a server listening on socketPath.
func NewServerAt(socketPath string, ctrl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		ctrl:       ctrl,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection serves one request line and closes the connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC request", "command", string(req.Command))

	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandListClients:
		return s.handleListClients()
	case CommandDispatch:
		return s.handleDispatch(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	if err := s.ctrl.Reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleGetStatus() *Response {
	st := s.ctrl.Status()
	status := StatusData{
		ActiveWorkspace: st.ActiveWorkspace,
		WorkspaceCount:  st.WorkspaceCount,
		ActiveScreen:    st.ActiveScreen,
		ClientCount:     st.Clients,
		Focused:         uint32(st.Focused),
		Drag:            st.Drag.String(),
		DragClient:      uint32(st.DragClient),
		Deferred:        st.Deferred,
		UptimeSeconds:   int64(time.Since(s.startTime).Seconds()),
		DaemonRunning:   true,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleGetMonitors() *Response {
	st := s.ctrl.Status()

	monitorInfos := make([]MonitorInfo, len(st.Screens))
	for i, sc := range st.Screens {
		monitorInfos[i] = MonitorInfo{
			ID:     sc.ID,
			Name:   sc.Name,
			X:      sc.Bounds.X,
			Y:      sc.Bounds.Y,
			Width:  sc.Bounds.Width,
			Height: sc.Bounds.Height,
			Usable: sc.Usable,
			Active: sc.ID == st.ActiveScreen,
		}
	}

	resp, _ := NewOKResponse(MonitorsData{Monitors: monitorInfos})
	return resp
}

func (s *Server) handleListClients() *Response {
	st := s.ctrl.Status()
	clients := s.ctrl.Clients()

	infos := make([]ClientInfo, 0, len(clients))
	for i := range clients {
		c := &clients[i]
		infos = append(infos, ClientInfo{
			ID:          uint32(c.ID),
			Workspace:   c.Workspace,
			Screen:      c.Screen,
			Geometry:    c.Geometry,
			State:       c.Tiling.String(),
			Unkillable:  c.Flags.Unkillable,
			AlwaysOnTop: c.Flags.AlwaysOnTop,
			Fixed:       c.Flags.Fixed,
			Hidden:      c.Flags.Hidden,
			Focused:     st.Focused != 0 && c.ID == st.Focused,
			Visible:     c.Visible(st.ActiveWorkspace),
		})
	}

	resp, _ := NewOKResponse(ClientsData{Clients: infos})
	return resp
}

func (s *Server) handleDispatch(payload json.RawMessage) *Response {
	var req DispatchPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid dispatch payload: %v", err))
	}
	if req.Action == "" {
		return NewErrorResponse("action is required")
	}

	a, err := action.Parse(req.Action, req.Args)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	if a.Kind.PointerOnly() {
		return NewErrorResponse(fmt.Sprintf("action %s needs a pointer button binding", a.Kind))
	}

	res, err := s.ctrl.Dispatch(engine.Event{
		Kind:   engine.EventAction,
		Action: a,
		Target: platform.WindowID(req.Window),
	})
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to dispatch %s: %v", a, err))
	}

	data := DispatchData{Action: a.String(), Note: res.Note.String()}
	for _, d := range res.Directives {
		data.Directives = append(data.Directives, d.String())
	}

	resp, _ := NewOKResponse(data)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
