// Package renderer paints an editor frame onto a backend.
//
// A frame is the document text with its syntax highlighting, the line
// number gutter, the most recent search match, and the status bar:
//
//	┌─────┬───────────────────────────────┐
//	│   1 │ def foo():                    │
//	│   2 │     return 1  # done          │
//	│ ... │                               │
//	├─────┴───────────────────────────────┤
//	│ Ready        Python | Ln 1, Col 0 | …│
//	└─────────────────────────────────────┘
//
// The renderer reads everything it draws from the Frame it is given and
// keeps no document state of its own.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.Render(frame)
package renderer
