package mcp

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/1broseidon/floatwm/internal/ipc"
	"github.com/1broseidon/floatwm/internal/tiling"
)

type fakeDaemon struct {
	status     ipc.StatusData
	clients    []ipc.ClientInfo
	monitors   []ipc.MonitorInfo
	err        error
	dispatched []ipc.DispatchPayload
}

func (f *fakeDaemon) GetStatus() (*ipc.StatusData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.status, nil
}

func (f *fakeDaemon) GetMonitors() (*ipc.MonitorsData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.MonitorsData{Monitors: f.monitors}, nil
}

func (f *fakeDaemon) ListClients() (*ipc.ClientsData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.ClientsData{Clients: f.clients}, nil
}

func (f *fakeDaemon) Dispatch(name string, args []string, window uint32) (*ipc.DispatchData, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.dispatched = append(f.dispatched, ipc.DispatchPayload{Action: name, Args: args, Window: window})
	return &ipc.DispatchData{Action: name, Directives: []string{"raise 0x10"}}, nil
}

func TestHandleGetStatus(t *testing.T) {
	d := &fakeDaemon{status: ipc.StatusData{ActiveWorkspace: 2, ClientCount: 3, DaemonRunning: true}}
	s := NewServer(d)

	_, out, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{})
	if err != nil {
		t.Fatalf("handleGetStatus() error: %v", err)
	}
	if out.Status != d.status {
		t.Fatalf("status = %+v, want %+v", out.Status, d.status)
	}

	d.err = errors.New("failed to connect to daemon")
	if _, _, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{}); err == nil {
		t.Fatalf("expected daemon error to surface")
	}
}

func TestHandleListClients_Filters(t *testing.T) {
	d := &fakeDaemon{clients: []ipc.ClientInfo{
		{ID: 1, Workspace: 0, Visible: true},
		{ID: 2, Workspace: 1},
		{ID: 3, Workspace: 1, Fixed: true, Visible: true},
	}}
	s := NewServer(d)
	one := 1

	tests := []struct {
		name string
		in   ListClientsInput
		want []uint32
	}{
		{name: "all", want: []uint32{1, 2, 3}},
		{name: "workspace", in: ListClientsInput{Workspace: &one}, want: []uint32{2, 3}},
		{name: "visible", in: ListClientsInput{Visible: true}, want: []uint32{1, 3}},
		{name: "both", in: ListClientsInput{Workspace: &one, Visible: true}, want: []uint32{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := s.handleListClients(context.Background(), nil, tt.in)
			if err != nil {
				t.Fatalf("handleListClients() error: %v", err)
			}
			got := make([]uint32, 0, len(out.Clients))
			for _, c := range out.Clients {
				got = append(got, c.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandleListMonitors(t *testing.T) {
	d := &fakeDaemon{monitors: []ipc.MonitorInfo{{Name: "primary", Width: 1000, Height: 700, Usable: tiling.Rect{X: 18, Y: 18, Width: 964, Height: 641}}}}
	s := NewServer(d)

	_, out, err := s.handleListMonitors(context.Background(), nil, ListMonitorsInput{})
	if err != nil {
		t.Fatalf("handleListMonitors() error: %v", err)
	}
	if len(out.Monitors) != 1 || out.Monitors[0].Usable.Width != 964 {
		t.Fatalf("monitors = %+v", out.Monitors)
	}
}

func TestHandleDispatchAction(t *testing.T) {
	d := &fakeDaemon{}
	s := NewServer(d)

	_, out, err := s.handleDispatchAction(context.Background(), nil, DispatchActionInput{Action: " move_step ", Args: []string{"left"}, Window: 0x10})
	if err != nil {
		t.Fatalf("handleDispatchAction() error: %v", err)
	}
	if out.Result.Action != "move_step" || len(out.Result.Directives) != 1 {
		t.Fatalf("result = %+v", out.Result)
	}
	want := []ipc.DispatchPayload{{Action: "move_step", Args: []string{"left"}, Window: 0x10}}
	if !reflect.DeepEqual(d.dispatched, want) {
		t.Fatalf("dispatched = %+v, want %+v", d.dispatched, want)
	}
}

func TestHandleDispatchAction_RejectsBeforeDaemon(t *testing.T) {
	d := &fakeDaemon{}
	s := NewServer(d)

	tests := []struct {
		name string
		in   DispatchActionInput
		want string
	}{
		{name: "empty", in: DispatchActionInput{Action: "  "}, want: "action is required"},
		{name: "unknown", in: DispatchActionInput{Action: "levitate"}, want: "unknown action"},
		{name: "bad arg", in: DispatchActionInput{Action: "maximize", Args: []string{"sideways"}}, want: "sideways"},
		{name: "drag", in: DispatchActionInput{Action: "mouse_motion", Args: []string{"move"}}, want: "pointer button"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.handleDispatchAction(context.Background(), nil, tt.in)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
	if len(d.dispatched) != 0 {
		t.Fatalf("invalid actions reached the daemon: %+v", d.dispatched)
	}
}

func TestActionNamesCoverVocabulary(t *testing.T) {
	names := strings.Join(actionNames(), ",")
	for _, want := range []string{"focus_next", "maxhalf", "half_and_centered"} {
		if !strings.Contains(names, want) {
			t.Fatalf("action list %q missing %s", names, want)
		}
	}
	if strings.Contains(names, "mouse_motion") {
		t.Fatalf("action list %q offers a drag", names)
	}
}
