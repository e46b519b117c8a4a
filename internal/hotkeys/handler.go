package hotkeys

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/1broseidon/floatwm/internal/action"
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Trigger is one decoded binding activation.
type Trigger struct {
	Action action.Action
	// Window is the top-level window under the pointer for button
	// bindings; zero for key bindings.
	Window platform.WindowID
	RootX  int
	RootY  int
}

// Sink receives decoded input from the handler.
type Sink interface {
	Trigger(t Trigger)
	// BeginDrag reports whether a drag session was started for t.
	BeginDrag(t Trigger) bool
	DragMotion(rootX, rootY int)
	EndDrag(rootX, rootY int)
	AbortDrag()
}

// Handler manages global keyboard and mouse bindings
type Handler struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	sink Sink

	mu      sync.Mutex
	keys    *Table
	buttons *Table
	aborted bool
}

var ignoreModsOnce sync.Once

// NewHandler creates a new binding handler on the root window of conn.
func NewHandler(conn *x11.Connection, sink Sink) *Handler {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(conn.XUtil)
	})

	h := &Handler{
		xu:   conn.XUtil,
		root: conn.Root,
		sink: sink,
	}

	xevent.KeyPressFun(h.onKeyPress).Connect(h.xu, h.root)
	xevent.KeyPressFun(h.onDragKeyPress).Connect(h.xu, h.xu.Dummy())
	xevent.MappingNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MappingNotifyEvent) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.grabKeysLocked()
	}).Connect(h.xu, xevent.NoWindow)

	return h
}

// SetBindings replaces both tables and re-grabs every chord.
func (h *Handler) SetBindings(keys, buttons *Table) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.keys = keys
	h.buttons = buttons
	h.grabKeysLocked()
	return h.grabButtonsLocked()
}

func (h *Handler) grabKeysLocked() {
	conn := h.xu.Conn()
	xproto.UngrabKey(conn, xproto.GrabAny, h.root, xproto.ModMaskAny)

	for _, chord := range h.keys.Chords() {
		codes := h.keycodes(chord.Code)
		if len(codes) == 0 {
			log.Printf("No keycode for %s+%s; binding skipped", chord.Mods, KeysymName(chord.Code))
			continue
		}
		for _, kc := range codes {
			keybind.Grab(h.xu, h.root, uint16(chord.Mods), kc)
		}
	}
}

// keycodes finds every keycode producing keysym in the first column of the
// current keyboard mapping.
func (h *Handler) keycodes(keysym uint32) []xproto.Keycode {
	setup := h.xu.Setup()
	var out []xproto.Keycode
	for kc := int(setup.MinKeycode); kc <= int(setup.MaxKeycode); kc++ {
		if uint32(keybind.KeysymGet(h.xu, xproto.Keycode(kc), 0)) == keysym {
			out = append(out, xproto.Keycode(kc))
		}
	}
	return out
}

func (h *Handler) grabButtonsLocked() error {
	mousebind.Detach(h.xu, h.root)
	xproto.UngrabButton(h.xu.Conn(), xproto.ButtonIndexAny, h.root, xproto.ModMaskAny)

	for _, chord := range h.buttons.Chords() {
		chord := chord
		spec := buttonSpec(chord)
		err := mousebind.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
			h.onButtonPress(chord, ev)
		}).Connect(h.xu, h.root, spec, false, true)
		if err != nil {
			return fmt.Errorf("failed to bind %s: %w", spec, err)
		}
	}
	return nil
}

// buttonSpec renders a chord in the form mousebind.ParseString accepts.
func buttonSpec(c Chord) string {
	var parts []string
	if c.Mods&ModMod != 0 {
		parts = append(parts, "Mod4")
	}
	if c.Mods&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if c.Mods&ModControl != 0 {
		parts = append(parts, "Control")
	}
	if c.Mods&ModAlt != 0 {
		parts = append(parts, "Mod1")
	}
	parts = append(parts, fmt.Sprintf("%d", c.Code))
	return strings.Join(parts, "-")
}

func (h *Handler) onKeyPress(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
	keysym := uint32(keybind.KeysymGet(xu, ev.Detail, 0))

	h.mu.Lock()
	a, ok := h.keys.Lookup(Modifier(ev.State), keysym)
	h.mu.Unlock()
	if !ok {
		return
	}

	h.sink.Trigger(Trigger{Action: a, RootX: int(ev.RootX), RootY: int(ev.RootY)})
}

func (h *Handler) onButtonPress(chord Chord, ev xevent.ButtonPressEvent) {
	h.mu.Lock()
	a, ok := h.buttons.Lookup(chord.Mods, chord.Code)
	h.mu.Unlock()
	if !ok {
		return
	}

	t := Trigger{
		Action: a,
		Window: platform.WindowID(ev.Child),
		RootX:  int(ev.RootX),
		RootY:  int(ev.RootY),
	}
	if a.Kind != action.MouseMotion {
		h.sink.Trigger(t)
		return
	}

	mousebind.DragBegin(h.xu, ev, h.xu.Dummy(), h.root,
		func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) (bool, xproto.Cursor) {
			if !h.sink.BeginDrag(t) {
				return false, 0
			}
			h.grabKeyboard()
			return true, 0
		},
		func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
			h.sink.DragMotion(rootX, rootY)
		},
		func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
			h.ungrabKeyboard()
			h.mu.Lock()
			aborted := h.aborted
			h.aborted = false
			h.mu.Unlock()
			if !aborted {
				h.sink.EndDrag(rootX, rootY)
			}
		})
}

// grabKeyboard routes key presses to the dummy window while a drag is live
// so Escape can abort it.
func (h *Handler) grabKeyboard() {
	reply, err := xproto.GrabKeyboard(
		h.xu.Conn(),
		false,
		h.root,
		xproto.TimeCurrentTime,
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
	).Reply()
	if err != nil || reply.Status != xproto.GrabStatusSuccess {
		log.Printf("Drag: keyboard grab failed; Escape will not abort")
		return
	}
	xevent.RedirectKeyEvents(h.xu, h.xu.Dummy())
}

func (h *Handler) ungrabKeyboard() {
	xproto.UngrabKeyboard(h.xu.Conn(), xproto.TimeCurrentTime)
	xevent.RedirectKeyEvents(h.xu, 0)
}

func (h *Handler) onDragKeyPress(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
	if uint32(keybind.KeysymGet(xu, ev.Detail, 0)) != KeysymEscape {
		return
	}

	h.mu.Lock()
	h.aborted = true
	h.mu.Unlock()

	h.sink.AbortDrag()
	mousebind.DragEnd(xu, xevent.ButtonReleaseEvent{ButtonReleaseEvent: &xproto.ButtonReleaseEvent{
		RootX: ev.RootX,
		RootY: ev.RootY,
	}})
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
