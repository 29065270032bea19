package termui

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/dustin/go-humanize"

	"textcore/inputmap"
	"textcore/screen"
)

// Driver renders a screen.Screen to the terminal via a front/back
// cell-diff, adapted from the teacher's tui/screen.go Screen type:
// the same double-buffer diff-and-flush render loop, generalized from
// a basement.Style terminal cell to screen.CodepointInfo.
type Driver struct {
	mu sync.Mutex

	front, back *screen.Screen
	out         *bufio.Writer

	oldState *rawState
	doneCh   chan struct{}
	resizeCh chan os.Signal
	OnResize func(w, h int)

	posBuf []byte
}

// Open enables raw mode, sizes a Driver to the current terminal, and
// starts its SIGWINCH listener.
func Open() *Driver {
	w, h := Size()
	d := &Driver{
		front:  screen.New(w, h),
		back:   screen.New(w, h),
		out:    bufio.NewWriterSize(os.Stdout, 64*1024),
		doneCh: make(chan struct{}),
		posBuf: make([]byte, 0, 32),
	}
	if old, err := enableRawMode(os.Stdin); err == nil {
		d.oldState = old
	} else {
		fmt.Fprintf(os.Stderr, "warning: failed to enable raw mode: %v\n", err)
	}

	d.resizeCh = make(chan os.Signal, 1)
	signal.Notify(d.resizeCh, syscall.SIGWINCH)
	go d.handleResize()

	d.out.WriteString("\x1b[?25l")
	d.out.Flush()
	return d
}

// Close restores terminal state and stops the resize listener.
func (d *Driver) Close() {
	signal.Stop(d.resizeCh)
	d.mu.Lock()
	defer d.mu.Unlock()
	close(d.doneCh)
	d.out.WriteString("\x1b[?25h")
	fmt.Fprintf(d.out, "\x1b[%dH", d.back.Height+1)
	d.out.Flush()
	if d.oldState != nil {
		disableRawMode(os.Stdin, d.oldState)
	}
}

// Input starts decoding stdin into KeyEvents, stopping when Close runs.
func (d *Driver) Input() <-chan inputmap.KeyEvent {
	return inputmap.NewReader(os.Stdin, d.doneCh).Events()
}

func (d *Driver) handleResize() {
	for {
		select {
		case <-d.doneCh:
			return
		case <-d.resizeCh:
			w, h := Size()
			d.mu.Lock()
			d.front.Resize(w, h)
			d.back.Resize(w, h)
			d.mu.Unlock()
			if d.OnResize != nil {
				d.OnResize(w, h)
			}
		}
	}
}

// Frame hands the caller the back buffer to compose into under a
// single lock, then diffs it against the front buffer and flushes.
func (d *Driver) Frame(draw func(back *screen.Screen)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.back.Clear()
	draw(d.back)
	d.render()
}

func (d *Driver) render() {
	w, h := d.back.Width, d.back.Height
	curX, curY := -1, -1
	var lastStyle screen.Style
	styleActive := false

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			back := d.back.Get(x, y)
			front := d.front.Get(x, y)
			if back == front {
				continue
			}
			if curX != x || curY != y {
				d.writeCursorPos(y+1, x+1)
				curX, curY = x, y
			}
			if !styleActive || back.Info.Style != lastStyle {
				if styleActive {
					d.out.WriteString("\x1b[0m")
				}
				d.writeStyle(back.Info.Style)
				lastStyle = back.Info.Style
				styleActive = true
			}
			ch := back.Info.DisplayedCP
			if ch == 0 {
				ch = ' '
			}
			d.out.WriteRune(ch)
			curX++
		}
	}
	if styleActive {
		d.out.WriteString("\x1b[0m")
	}
	d.out.Flush()
	d.front, d.back = d.back, d.front
}

func (d *Driver) writeCursorPos(row, col int) {
	d.posBuf = d.posBuf[:0]
	d.posBuf = append(d.posBuf, '\x1b', '[')
	d.posBuf = strconv.AppendInt(d.posBuf, int64(row), 10)
	d.posBuf = append(d.posBuf, ';')
	d.posBuf = strconv.AppendInt(d.posBuf, int64(col), 10)
	d.posBuf = append(d.posBuf, 'H')
	d.out.Write(d.posBuf)
}

func (d *Driver) writeStyle(st screen.Style) {
	if st.Bold {
		d.out.WriteString("\x1b[1m")
	}
	if st.Dim {
		d.out.WriteString("\x1b[2m")
	}
	if st.Italic {
		d.out.WriteString("\x1b[3m")
	}
	if st.Underline {
		d.out.WriteString("\x1b[4m")
	}
	if st.Strike {
		d.out.WriteString("\x1b[9m")
	}
	if st.Reverse {
		d.out.WriteString("\x1b[7m")
	}
	if st.Blink {
		d.out.WriteString("\x1b[5m")
	}
	if st.Color != "" {
		d.out.WriteString(st.Color)
	}
	if st.BgColor != "" {
		d.out.WriteString(st.BgColor)
	}
}

// TitleBar formats the §7 "title bar reflects changed" line: name,
// a modified marker, and a human-readable byte size.
func TitleBar(name string, changed bool, size int64) string {
	marker := ""
	if changed {
		marker = " [+]"
	}
	return fmt.Sprintf("%s%s — %s", name, marker, humanize.Bytes(uint64(size)))
}
