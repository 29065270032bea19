// Package filter implements the compositing pipeline (§4.6): an ordered
// chain of Filter stages that turns raw Buffer bytes into Screen cells,
// plus the screen-overlay filters (marks, selection, ruler) layered on
// top of a composed Screen.
package filter

import "textcore/screen"

// DataKind distinguishes what an IO item carries.
type DataKind int

const (
	ByteArray DataKind = iota
	UnicodeArray
	TextInfo
	EndOfStream
	StreamLimitReached
	CustomLimitReached
)

// IO is one item flowing through the pipeline. The fixed invariant
// `Metadata == true <=> Size == 0` holds for every item a filter emits.
type IO struct {
	Kind     DataKind
	Metadata bool
	Style    screen.Style

	HasOffset bool
	Offset    int64
	Size      int

	Bytes []byte
	Runes []rune

	RealCP      rune
	DisplayedCP rune
}

// metaIO builds a zero-size metadata continuation item of the given
// kind, reused by several filters to emit the "rest of an expansion"
// entries the invariant requires.
func metaIO(kind DataKind, style screen.Style) IO {
	return IO{Kind: kind, Metadata: true, Size: 0, Style: style}
}

// Env is the per-compose-cycle environment threaded through
// Setup/Run/Finish: target dimensions, configuration knobs the filters
// consult, and the quit flag a sink sets when it can't accept more.
type Env struct {
	Width, Height int
	TabWidth      int
	MaxBytes      int

	CharMap  map[rune]string
	ColorMap map[rune]string

	Lang string // source language hint for HighlightFilter

	Quit bool
}

// DefaultEnv returns an Env with the conventional defaults (8-column
// tabs, a 4-bytes-per-cell read budget).
func DefaultEnv(width, height int) *Env {
	return &Env{
		Width:    width,
		Height:   height,
		TabWidth: 8,
		MaxBytes: width * height * 4,
	}
}

// Filter is one pipeline stage (§4.6): `{setup(view, env); run(in_io[])
// -> out_io[]; finish()}`.
type Filter interface {
	Setup(env *Env)
	Run(in []IO) []IO
	Finish()
}
