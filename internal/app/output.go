package app

import (
	"github.com/turtleide/turtle/internal/engine/buffer"
	"github.com/turtleide/turtle/internal/integration/process"
	"github.com/turtleide/turtle/internal/renderer/gutter"
	"github.com/turtleide/turtle/internal/renderer/statusline"
	"github.com/turtleide/turtle/internal/renderer/viewport"
)

// outputPane shows the transcript of a finished run in place of the
// document until it is dismissed.
type outputPane struct {
	result process.Result
	doc    *buffer.Buffer
	view   *viewport.Viewport
	gutter *gutter.Gutter
	status *statusline.StatusLine
}

func newOutputPane(res process.Result, name string, width, height int) *outputPane {
	p := &outputPane{
		result: res,
		doc:    buffer.NewBufferFromString(res.Transcript()),
		view:   viewport.NewViewport(width, height),
		gutter: gutter.New(gutter.Config{ShowLineNumbers: false}),
		status: statusline.New(),
	}
	p.view.SetLineCount(p.doc.LineCount())
	p.gutter.Sync(p.doc.LineCount(), p.view.Fraction())
	p.status.SetMessage("Output: "+name+"  (Esc to close)", statusline.MessageInfo)
	return p
}

func (p *outputPane) scroll(delta int) {
	p.view.ScrollBy(delta)
	p.gutter.Sync(p.doc.LineCount(), p.view.Fraction())
}

func (p *outputPane) resize(width, height int) {
	p.view.Resize(width, height)
	p.gutter.Sync(p.doc.LineCount(), p.view.Fraction())
}
