package view

import "fmt"

// SplitDirection is the axis a Split's two children are arranged along,
// generalized from the teacher's LayoutNode.Direction (tui/layout.go).
type SplitDirection int

const (
	SplitRow SplitDirection = iota
	SplitColumn
)

// SizeKind selects how a split pane's share of its axis is computed,
// adapted from the teacher's SizeFixed/SizeAuto/SizeFlex (tui/layout.go).
// Only Fixed and Flex exist here; there is no auto-sized kind.
type SizeKind int

const (
	SizeFixed SizeKind = iota
	SizeFlex
)

// PaneSize configures one child of a Split.
type PaneSize struct {
	Kind  SizeKind
	Value int // fixed column/row count, or flex weight
}

// Split is a binary tree of Views (§ "Horizontal/vertical view
// splitting", supplementing hsplit_mode.rs/vsplit_mode.rs): either a
// leaf wrapping a single *View, or an interior node dividing its
// rectangle between two children along Direction.
type Split struct {
	Direction SplitDirection

	Leaf *View

	First, Second     *Split
	FirstSize, SecondSize PaneSize

	x, y, width, height int
}

// NewLeaf wraps an existing View as a Split leaf.
func NewLeaf(v *View) *Split {
	return &Split{Leaf: v}
}

// NewSplit divides into First/Second along direction, sized per
// firstSize/secondSize (one side is typically Fixed, the other Flex).
func NewSplit(direction SplitDirection, first, second *Split, firstSize, secondSize PaneSize) *Split {
	return &Split{
		Direction:   direction,
		First:       first,
		Second:      second,
		FirstSize:   firstSize,
		SecondSize:  secondSize,
	}
}

// Layout assigns (x, y, width, height) to every node in the tree and
// resizes each leaf's View screen to match, mirroring LayoutNode.Measure
// + Draw's two-pass shape collapsed into one pass since Split has no
// auto-sizing content to measure bottom-up.
func (s *Split) Layout(x, y, width, height int) {
	s.x, s.y, s.width, s.height = x, y, width, height

	if s.Leaf != nil {
		s.Leaf.Resize(width, height)
		return
	}
	if s.First == nil || s.Second == nil {
		return
	}

	axis := width
	if s.Direction == SplitColumn {
		axis = height
	}
	firstShare := paneShare(s.FirstSize, s.SecondSize, axis)
	secondShare := axis - firstShare

	if s.Direction == SplitRow {
		s.First.Layout(x, y, firstShare, height)
		s.Second.Layout(x+firstShare, y, secondShare, height)
	} else {
		s.First.Layout(x, y, width, firstShare)
		s.Second.Layout(x, y+firstShare, width, secondShare)
	}
}

func paneShare(first, second PaneSize, axis int) int {
	if first.Kind == SizeFixed {
		share := first.Value
		if share > axis {
			share = axis
		}
		return share
	}
	if second.Kind == SizeFixed {
		share := axis - second.Value
		if share < 0 {
			share = 0
		}
		return share
	}
	// Both flex: split proportionally to weight.
	total := first.Value + second.Value
	if total <= 0 {
		return axis / 2
	}
	return axis * first.Value / total
}

// Leaves returns every View in the tree in left-to-right / top-to-bottom order.
func (s *Split) Leaves() []*View {
	if s == nil {
		return nil
	}
	if s.Leaf != nil {
		return []*View{s.Leaf}
	}
	return append(s.First.Leaves(), s.Second.Leaves()...)
}

// TextModeContext is the small read-only snapshot a Decorator renders
// from: buffer identity/state plus the main mark's line:col, fed by the
// View the decorator is attached to (supplementing tab_bar_mode.rs /
// status_line_mode.rs / title_bar_mode.rs).
type TextModeContext struct {
	BufferName string
	Changed    bool
	IsSyncing  bool
	Line, Col  int
}

// Decorator renders one synthetic line (a tab bar, status line, or
// title bar) above or below a View's composed screen from a
// TextModeContext, without itself holding a Buffer.
type Decorator func(ctx TextModeContext, width int) string

// StatusLineDecorator renders "name [+] [syncing] line:col" ("[+]" only
// when changed, "[syncing]" only while syncing), padded or cut to width,
// adapted from status_line_mode.rs's field set.
func StatusLineDecorator(ctx TextModeContext, width int) string {
	line := ctx.BufferName
	if ctx.Changed {
		line += " [+]"
	}
	if ctx.IsSyncing {
		line += " [syncing]"
	}
	line += fmt.Sprintf(" %d:%d", ctx.Line, ctx.Col)
	pos := runeRepeatPad(line, width)
	return pos
}

func runeRepeatPad(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	pad := make([]rune, width-len(r))
	for i := range pad {
		pad[i] = ' '
	}
	return s + string(pad)
}

// Context builds this view's TextModeContext, suitable for a Decorator.
func (v *View) Context(name string, changed, syncing bool) TextModeContext {
	line, col := v.mainMarkLineCol()
	return TextModeContext{BufferName: name, Changed: changed, IsSyncing: syncing, Line: line, Col: col}
}

// mainMarkLineCol walks backward from the main mark counting newlines,
// then the column within that line.
func (v *View) mainMarkLineCol() (line, col int) {
	off := v.MainMark().Offset
	startOfLine := v.MainMark().Clone()
	startOfLine.MoveToStartOfLine(v.Buffer, v.Codec)
	col = int(off - startOfLine.Offset)

	const window = 64 * 1024
	buf := make([]byte, window)
	var pos int64
	for pos < startOfLine.Offset {
		n := window
		if remain := startOfLine.Offset - pos; int64(n) > remain {
			n = int(remain)
		}
		got := v.Buffer.Read(pos, n, buf[:n])
		for _, b := range buf[:got] {
			if b == '\n' {
				line++
			}
		}
		pos += int64(got)
		if got == 0 {
			break
		}
	}
	return line, col
}
