// Package input turns per-frame device snapshots into pressed/held/released
// edges for keys and mouse buttons.
package input

import "github.com/Faultbox/vortex/pkg/math"

// Array sizes for key and mouse button state.
const (
	MaxKeyCodes     = 256
	MaxMouseButtons = 8
)

// Key is a keyboard scancode. Values match SDL scancodes.
type Key int

const (
	KeyA      Key = 4
	KeyD      Key = 7
	KeyE      Key = 8
	KeyL      Key = 15
	KeyO      Key = 18
	KeyP      Key = 19
	KeyQ      Key = 20
	KeyS      Key = 22
	KeyW      Key = 26
	KeyEscape Key = 41
	KeySpace  Key = 44
	KeyRight  Key = 79
	KeyLeft   Key = 80
	KeyDown   Key = 81
	KeyUp     Key = 82
)

// MouseButton is a zero-based mouse button index.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// Snapshot is the raw device state for one frame.
type Snapshot struct {
	Keys    [MaxKeyCodes]bool
	Buttons [MaxMouseButtons]bool
	Cursor  math.Vec2
	// Scroll is the wheel movement since the previous snapshot.
	Scroll float32
	Quit   bool
	// Resized is set when the drawable size changed; Width and Height hold
	// the new size.
	Resized       bool
	Width, Height int
}

// Source produces snapshots. The window implements it.
type Source interface {
	Poll(s *Snapshot)
	WarpCursor(pos math.Vec2)
}

// Input holds the current and previous device state.
type Input struct {
	keys, keysPressed, keysReleased          [MaxKeyCodes]bool
	buttons, buttonsPressed, buttonsReleased [MaxMouseButtons]bool

	cursor        math.Vec2
	lockPosition  math.Vec2
	locked        bool
	scroll        float32
	quit          bool
	resized       bool
	width, height int
}

// New returns an Input with nothing held.
func New() *Input {
	return &Input{}
}

// Update polls src once and recomputes the edges. A locked cursor is
// warped back to its lock position after polling.
func (in *Input) Update(src Source) {
	var s Snapshot
	src.Poll(&s)
	in.Apply(&s)
	if in.locked {
		src.WarpCursor(in.lockPosition)
	}
}

// Apply recomputes the edges from s.
func (in *Input) Apply(s *Snapshot) {
	for i, down := range s.Keys {
		in.keysPressed[i] = down && !in.keys[i]
		in.keysReleased[i] = !down && in.keys[i]
		in.keys[i] = down
	}
	for i, down := range s.Buttons {
		in.buttonsPressed[i] = down && !in.buttons[i]
		in.buttonsReleased[i] = !down && in.buttons[i]
		in.buttons[i] = down
	}
	in.cursor = s.Cursor
	in.scroll = s.Scroll
	in.quit = in.quit || s.Quit
	in.resized = s.Resized
	if s.Resized {
		in.width, in.height = s.Width, s.Height
	}
}

// Key reports whether k is held down.
func (in *Input) Key(k Key) bool {
	return validKey(k) && in.keys[k]
}

// KeyPressed reports whether k went down this frame.
func (in *Input) KeyPressed(k Key) bool {
	return validKey(k) && in.keysPressed[k]
}

// KeyReleased reports whether k went up this frame.
func (in *Input) KeyReleased(k Key) bool {
	return validKey(k) && in.keysReleased[k]
}

// Button reports whether b is held down.
func (in *Input) Button(b MouseButton) bool {
	return validButton(b) && in.buttons[b]
}

// ButtonPressed reports whether b went down this frame.
func (in *Input) ButtonPressed(b MouseButton) bool {
	return validButton(b) && in.buttonsPressed[b]
}

// ButtonReleased reports whether b went up this frame.
func (in *Input) ButtonReleased(b MouseButton) bool {
	return validButton(b) && in.buttonsReleased[b]
}

// Cursor returns the cursor position in window pixels.
func (in *Input) Cursor() math.Vec2 { return in.cursor }

// CursorDelta returns the offset from the lock position. It is zero when
// the cursor is not locked.
func (in *Input) CursorDelta() math.Vec2 {
	if !in.locked {
		return math.Vec2{}
	}
	return in.cursor.Sub(in.lockPosition)
}

// SetCursorLocked pins the cursor to pos on every Update.
func (in *Input) SetCursorLocked(locked bool, pos math.Vec2) {
	in.locked = locked
	in.lockPosition = pos
}

// LockWhileHeld locks the cursor where it is when b goes down and unlocks
// it when b comes up. Call it after Update.
func (in *Input) LockWhileHeld(b MouseButton) {
	switch {
	case in.ButtonPressed(b):
		in.SetCursorLocked(true, in.cursor)
	case in.ButtonReleased(b):
		in.SetCursorLocked(false, math.Vec2{})
	}
}

// CursorLocked reports whether the cursor is pinned.
func (in *Input) CursorLocked() bool { return in.locked }

// ScrollOffset returns the wheel movement of the last poll.
func (in *Input) ScrollOffset() float32 { return in.scroll }

// CloseRequested reports whether the window asked to close. It stays set.
func (in *Input) CloseRequested() bool { return in.quit }

// RequestClose marks the input as closing, for example on Escape.
func (in *Input) RequestClose() { in.quit = true }

// Resized reports whether the last poll saw a resize, with the new size.
func (in *Input) Resized() (bool, int, int) {
	return in.resized, in.width, in.height
}

func validKey(k Key) bool {
	return k >= 0 && k < MaxKeyCodes
}

func validButton(b MouseButton) bool {
	return b >= 0 && b < MaxMouseButtons
}
