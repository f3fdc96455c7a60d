// Package backend provides terminal backend abstraction for the renderer.
package backend

import "github.com/turtleide/turtle/internal/renderer/core"

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// CtrlKey returns the Ctrl+letter key for a letter, or KeyNone.
func CtrlKey(letter rune) Key {
	switch {
	case letter >= 'a' && letter <= 'z':
		return KeyCtrlA + Key(letter-'a')
	case letter >= 'A' && letter <= 'Z':
		return KeyCtrlA + Key(letter-'A')
	default:
		return KeyNone
	}
}

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Backend defines the interface for terminal/display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// GetCell returns the cell at the given position.
	// Returns an empty cell for positions outside the terminal.
	GetCell(x, y int) core.Cell

	// Fill fills a rectangular region with the given cell.
	Fill(rect core.ScreenRect, cell core.Cell)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	// This is a blocking call.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)

	// Beep produces an audible or visual bell.
	Beep()

	// SetTitle sets the terminal window title, where supported.
	SetTitle(title string)
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	shown         int
	beeps         int
	title         string
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.allocate()
	return nil
}

func (b *NullBackend) allocate() {
	b.cells = make([][]core.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = core.EmptyCell(core.DefaultStyle())
		}
	}
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

func (b *NullBackend) GetCell(x, y int) core.Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell(core.DefaultStyle())
}

func (b *NullBackend) Fill(rect core.ScreenRect, cell core.Cell) {
	for y := max(rect.Top, 0); y < rect.Bottom && y < b.height; y++ {
		for x := max(rect.Left, 0); x < rect.Right && x < b.width; x++ {
			b.cells[y][x] = cell
		}
	}
}

func (b *NullBackend) Clear() {
	empty := core.EmptyCell(core.DefaultStyle())
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = empty
		}
	}
}

func (b *NullBackend) Show() { b.shown++ }

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

func (b *NullBackend) Beep() { b.beeps++ }

func (b *NullBackend) SetTitle(title string) { b.title = title }

// Title returns the last title set.
func (b *NullBackend) Title() string {
	return b.title
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// ShowCount returns how many frames were shown.
func (b *NullBackend) ShowCount() int {
	return b.shown
}

// BeepCount returns how many times Beep was called.
func (b *NullBackend) BeepCount() int {
	return b.beeps
}

// RowText returns the runes of row y as a string, skipping the
// placeholder cells that follow wide runes.
func (b *NullBackend) RowText(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	runes := make([]rune, 0, b.width)
	for _, c := range b.cells[y] {
		if c.Rune != 0 {
			runes = append(runes, c.Rune)
		}
	}
	return string(runes)
}

// Resize simulates a terminal resize for testing.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.allocate()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
