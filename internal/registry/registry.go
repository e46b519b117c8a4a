package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/tiling"
)

// ErrUnknownClient marks a mutation of an id the registry was never told
// to manage. It means the caller's view of the display is out of sync.
var ErrUnknownClient = errors.New("unknown client")

// UnknownClientError carries the offending id.
type UnknownClientError struct {
	ID platform.WindowID
}

func (e *UnknownClientError) Error() string {
	return fmt.Sprintf("%v: 0x%x", ErrUnknownClient, uint32(e.ID))
}

func (e *UnknownClientError) Is(target error) bool {
	return target == ErrUnknownClient
}

// Registry owns every managed Client record.
// It is not safe for concurrent use; callers serialize access.
type Registry struct {
	clients map[platform.WindowID]*Client
	minSize int
}

// New creates a registry that clamps client extents to minSize.
func New(minSize int) *Registry {
	if minSize < 1 {
		minSize = 1
	}
	return &Registry{
		clients: make(map[platform.WindowID]*Client),
		minSize: minSize,
	}
}

// MinSize returns the minimum width and height of any client.
func (r *Registry) MinSize() int {
	return r.minSize
}

// SetMinSize changes the minimum size for subsequent geometry updates.
func (r *Registry) SetMinSize(minSize int) {
	if minSize < 1 {
		minSize = 1
	}
	r.minSize = minSize
}

// Register starts managing id on the given workspace and screen. Registering
// an id twice returns the existing record unchanged.
func (r *Registry) Register(id platform.WindowID, geom tiling.Rect, workspace, screen int) *Client {
	if c, ok := r.clients[id]; ok {
		return c
	}
	c := &Client{
		ID:        id,
		Geometry:  tiling.ClampSize(geom, r.minSize),
		Workspace: workspace,
		Screen:    screen,
		Tiling:    tiling.StateNormal,
	}
	r.clients[id] = c
	return c
}

// Unregister stops managing id. Unknown ids are ignored.
func (r *Registry) Unregister(id platform.WindowID) {
	delete(r.clients, id)
}

// Get returns the client for id.
func (r *Registry) Get(id platform.WindowID) (*Client, bool) {
	c, ok := r.clients[id]
	return c, ok
}

// Lookup is Get for call paths where id must be managed.
func (r *Registry) Lookup(id platform.WindowID) (*Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, &UnknownClientError{ID: id}
	}
	return c, nil
}

// Len returns the number of managed clients.
func (r *Registry) Len() int {
	return len(r.clients)
}

// All returns every client ordered by id.
func (r *Registry) All() []*Client {
	out := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetGeometry stores a new rect for id, clamped to the minimum size. The
// tiling state is left alone; use Commit to change geometry and state
// together.
func (r *Registry) SetGeometry(id platform.WindowID, rect tiling.Rect) (tiling.Rect, error) {
	c, err := r.Lookup(id)
	if err != nil {
		return tiling.Rect{}, err
	}
	c.Geometry = tiling.ClampSize(rect, r.minSize)
	return c.Geometry, nil
}

// SetFlag sets one boolean flag on id.
func (r *Registry) SetFlag(id platform.WindowID, f Flag, v bool) error {
	c, err := r.Lookup(id)
	if err != nil {
		return err
	}
	c.setFlag(f, v)
	return nil
}

// SetHints records the size increments reported for id.
func (r *Registry) SetHints(id platform.WindowID, hints tiling.Hints) error {
	c, err := r.Lookup(id)
	if err != nil {
		return err
	}
	c.Hints = hints
	return nil
}

// Update is one complete geometry record applied by Commit.
type Update struct {
	Geometry   tiling.Rect
	Tiling     tiling.State
	Saved      *tiling.Rect
	FoldedFrom tiling.State
	Unfolded   *tiling.Rect
	Aspect     float64
}

// Commit replaces geometry, tiling state, saved snapshot and aspect of id in
// one step. A normal state always drops the snapshot; a non-normal state
// without a snapshot is rejected.
func (r *Registry) Commit(id platform.WindowID, u Update) (*Client, error) {
	c, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	if u.Tiling != tiling.StateNormal && u.Saved == nil {
		return nil, fmt.Errorf("client 0x%x: state %v requires a saved geometry", uint32(id), u.Tiling)
	}

	c.Geometry = tiling.ClampSize(u.Geometry, r.minSize)
	c.Tiling = u.Tiling
	c.Aspect = u.Aspect
	c.Unfolded = nil
	if u.Tiling == tiling.StateNormal {
		c.Saved = nil
		c.FoldedFrom = tiling.StateNormal
		return c, nil
	}
	saved := *u.Saved
	c.Saved = &saved
	c.FoldedFrom = u.FoldedFrom
	if u.Tiling.IsFolded() && u.Unfolded != nil {
		unfolded := *u.Unfolded
		c.Unfolded = &unfolded
	}
	return c, nil
}

// MoveTo reassigns the workspace and screen of id.
func (r *Registry) MoveTo(id platform.WindowID, workspace, screen int) error {
	c, err := r.Lookup(id)
	if err != nil {
		return err
	}
	c.Workspace = workspace
	c.Screen = screen
	return nil
}
