package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/1broseidon/floatwm/internal/ipc"
	"github.com/1broseidon/floatwm/internal/tiling"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(18).Align(lipgloss.Right)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// styled reports whether w gets human output rather than JSON.
func styled(w io.Writer) bool {
	if jsonOutput {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func geometry(r tiling.Rect) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

func renderTable(headers []string, rows [][]string, highlight func(row int) bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case highlight != nil && highlight(row):
				return activeStyle.Padding(0, 1)
			default:
				return cellStyle
			}
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

func renderStatus(st *ipc.StatusData) string {
	focused := "none"
	if st.Focused != 0 {
		focused = fmt.Sprintf("0x%x", st.Focused)
	}
	drag := st.Drag
	if st.DragClient != 0 {
		drag = fmt.Sprintf("%s (0x%x)", st.Drag, st.DragClient)
	}

	lines := []struct{ label, value string }{
		{"workspace", fmt.Sprintf("%d of %d", st.ActiveWorkspace, st.WorkspaceCount)},
		{"screen", fmt.Sprintf("%d", st.ActiveScreen)},
		{"clients", fmt.Sprintf("%d", st.ClientCount)},
		{"focused", focused},
		{"drag", drag},
		{"deferred actions", fmt.Sprintf("%d", st.Deferred)},
		{"uptime", fmt.Sprintf("%ds", st.UptimeSeconds)},
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("floatwm daemon"))
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(labelStyle.Render(l.label))
		b.WriteString("  ")
		b.WriteString(valueStyle.Render(l.value))
		b.WriteString("\n")
	}
	return b.String()
}

func renderClients(clients []ipc.ClientInfo) string {
	if len(clients) == 0 {
		return dimStyle.Render("no managed clients") + "\n"
	}

	rows := make([][]string, len(clients))
	for i, c := range clients {
		rows[i] = []string{
			fmt.Sprintf("0x%x", c.ID),
			fmt.Sprintf("%d", c.Workspace),
			fmt.Sprintf("%d", c.Screen),
			geometry(c.Geometry),
			c.State,
			clientFlags(c),
		}
	}
	focused := func(row int) bool { return row >= 0 && row < len(clients) && clients[row].Focused }
	return renderTable([]string{"ID", "WS", "SCREEN", "GEOMETRY", "STATE", "FLAGS"}, rows, focused) + "\n"
}

func clientFlags(c ipc.ClientInfo) string {
	var flags []string
	if c.Focused {
		flags = append(flags, "focused")
	}
	if c.Hidden {
		flags = append(flags, "hidden")
	}
	if c.Fixed {
		flags = append(flags, "fixed")
	}
	if c.AlwaysOnTop {
		flags = append(flags, "on-top")
	}
	if c.Unkillable {
		flags = append(flags, "unkillable")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func renderMonitors(monitors []ipc.MonitorInfo) string {
	rows := make([][]string, len(monitors))
	for i, m := range monitors {
		rows[i] = []string{
			fmt.Sprintf("%d", m.ID),
			m.Name,
			geometry(tiling.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}),
			geometry(m.Usable),
		}
	}
	active := func(row int) bool { return row >= 0 && row < len(monitors) && monitors[row].Active }
	return renderTable([]string{"ID", "NAME", "BOUNDS", "USABLE"}, rows, active) + "\n"
}
