// Package view implements View (the compositor and cursor engine,
// §4.7): it drives the filter pipeline against a Buffer from a starting
// offset, owns a Screen, manages marks and the selection, and schedules
// scroll/center actions through a pre-compose queue.
package view

import (
	"github.com/google/uuid"

	"textcore/buffer"
	"textcore/filter"
	"textcore/mark"
	"textcore/screen"
)

// Pass selects which stages of a compositing run execute, mirroring
// run_compositing_stage_direct's `pass` parameter.
type Pass int

const (
	Content Pass = iota
	ScreenOverlay
	ContentAndScreenOverlay
)

// prevAction tracks whether the last input action moved marks or edited
// the document, driving the "tag before an edit that follows a move"
// policy (§4.7 "Tagging policy").
type prevAction int

const (
	prevActionNone prevAction = iota
	prevActionMarksMove
	prevActionDocumentModification
)

// View is a single on-screen pane over a Buffer.
type View struct {
	ID uuid.UUID

	Buffer *buffer.Buffer
	Screen *screen.Screen
	Codec  mark.TextCodec

	StartOffset int64
	Width       int
	Height      int

	Marks         []*mark.Mark
	MainMarkIndex int

	SelectionAnchor int64
	SelectionActive bool

	Options filter.Options
	Ruler   *filter.RulerOverlayFilter

	copyBuffer  [][]byte
	prevAction  prevAction
	actionQueue []Action
}

// New creates a View over buf starting at startOffset, with width*height
// dimensions and a single mark at startOffset (§6 "View::new").
func New(buf *buffer.Buffer, startOffset int64, width, height int) *View {
	v := &View{
		ID:            uuid.New(),
		Buffer:        buf,
		Screen:        screen.New(width, height),
		Codec:         mark.Utf8Codec{},
		StartOffset:   startOffset,
		Width:         width,
		Height:        height,
		Marks:         []*mark.Mark{mark.New(startOffset)},
		MainMarkIndex: 0,
	}
	v.Options.TabWidth = 8
	return v
}

// MainMark returns the view's primary cursor.
func (v *View) MainMark() *mark.Mark {
	return v.Marks[v.MainMarkIndex]
}

// Resize reallocates the view's screen for new dimensions.
func (v *View) Resize(width, height int) {
	v.Width, v.Height = width, height
	v.Screen.Resize(width, height)
}
