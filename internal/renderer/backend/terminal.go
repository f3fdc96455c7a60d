package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/turtleide/turtle/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a simulation
// screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	// Clicks reposition the insertion point; the wheel scrolls.
	t.screen.EnableMouse()

	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

func (t *Terminal) GetCell(x, y int) core.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return core.Cell{
		Rune:  mainc,
		Width: core.RuneWidth(mainc),
		Style: convertTcellStyle(style),
	}
}

func (t *Terminal) Fill(rect core.ScreenRect, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := convertStyle(cell.Style)
	width, height := t.screen.Size()

	for y := max(rect.Top, 0); y < rect.Bottom && y < height; y++ {
		for x := max(rect.Left, 0); x < rect.Right && x < width; x++ {
			t.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) SetTitle(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetTitle(title)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventInterrupt}
	}
	return convertEvent(ev)
}

func (t *Terminal) PostEvent(event Event) {
	switch event.Type {
	case EventKey:
		tcellEv := tcell.NewEventKey(convertToTcellKey(event.Key), event.Rune, convertToTcellMod(event.Mod))
		_ = t.screen.PostEvent(tcellEv) // best-effort; event queue may be full
	case EventInterrupt:
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(tcell.NewRGBColor(int32(s.Foreground.R), int32(s.Foreground.G), int32(s.Foreground.B)))
	}
	if !s.Background.IsDefault() {
		style = style.Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
	}

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}

	return style
}

// convertTcellStyle converts tcell.Style back to our Style.
func convertTcellStyle(ts tcell.Style) core.Style {
	fg, bg, attrs := ts.Decompose()

	s := core.Style{
		Foreground: convertTcellColor(fg),
		Background: convertTcellColor(bg),
		Attributes: core.AttrNone,
	}

	if attrs&tcell.AttrBold != 0 {
		s.Attributes |= core.AttrBold
	}
	if attrs&tcell.AttrDim != 0 {
		s.Attributes |= core.AttrDim
	}
	if attrs&tcell.AttrItalic != 0 {
		s.Attributes |= core.AttrItalic
	}
	if attrs&tcell.AttrUnderline != 0 {
		s.Attributes |= core.AttrUnderline
	}
	if attrs&tcell.AttrReverse != 0 {
		s.Attributes |= core.AttrReverse
	}

	return s
}

// convertTcellColor converts tcell.Color to our Color.
func convertTcellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorDefault
	}
	r, g, b := tc.RGB()
	if r < 0 {
		return core.ColorDefault
	}
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		key, mod := convertKey(e.Key()), convertMod(e.Modifiers())
		// Some terminals report Ctrl+letter as a rune with a modifier.
		if key == KeyRune && mod.Has(ModCtrl) {
			if ctrl := CtrlKey(e.Rune()); ctrl != KeyNone {
				key = ctrl
			}
		}
		return Event{
			Type: EventKey,
			Key:  key,
			Rune: e.Rune(),
			Mod:  mod,
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: convertMouseButton(e.Buttons()),
			Mod:         convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}

	default:
		return Event{Type: EventNone}
	}
}

// namedKeys maps tcell keys that are not Ctrl+letter chords.
var namedKeys = map[tcell.Key]Key{
	tcell.KeyRune:       KeyRune,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
}

// convertKey converts tcell key to our Key type. Named keys win over the
// Ctrl+letter codes they share (Tab is Ctrl+I, Enter is Ctrl+M).
func convertKey(k tcell.Key) Key {
	if key, ok := namedKeys[k]; ok {
		return key
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyCtrlA + Key(k-tcell.KeyCtrlA)
	}
	return KeyNone
}

// convertToTcellKey converts our Key to tcell.Key.
func convertToTcellKey(k Key) tcell.Key {
	if k >= KeyCtrlA && k <= KeyCtrlZ {
		return tcell.KeyCtrlA + tcell.Key(k-KeyCtrlA)
	}
	for tk, key := range namedKeys {
		if key == k && tk != tcell.KeyBackspace {
			return tk
		}
	}
	return tcell.KeyRune
}

// convertMod converts tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}

// convertToTcellMod converts our ModMask to tcell.ModMask.
func convertToTcellMod(m ModMask) tcell.ModMask {
	var result tcell.ModMask
	if m&ModShift != 0 {
		result |= tcell.ModShift
	}
	if m&ModCtrl != 0 {
		result |= tcell.ModCtrl
	}
	if m&ModAlt != 0 {
		result |= tcell.ModAlt
	}
	if m&ModMeta != 0 {
		result |= tcell.ModMeta
	}
	return result
}

// convertMouseButton converts tcell button mask to our MouseButton.
func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseMiddle
	case b&tcell.Button3 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	default:
		return MouseNone
	}
}
