// Command edit is the core engine's terminal front end (§7 "cmd/edit"):
// it opens a file into a Buffer, builds a single View over it, and runs
// the input-decode / dispatch / compose / render loop, with the syncer
// and indexer background workers attached.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"textcore/buffer"
	"textcore/config"
	"textcore/filter"
	"textcore/inputmap"
	"textcore/internal/indexer"
	"textcore/internal/syncer"
	"textcore/mode"
	"textcore/screen"
	"textcore/termui"
	"textcore/view"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML mode config")
	syncSpec := flag.String("sync-every", "@every 5s", "cron spec for the background disk sync")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: edit [-config path] [-sync-every spec] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	logger := zap.NewNop().Sugar()
	if os.Getenv("EDIT_DEBUG_LOG") != "" {
		if l, err := zap.NewProduction(); err == nil {
			logger = l.Sugar()
			defer l.Sync()
		}
	}

	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "edit: loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	buf, err := buffer.BufferBuilder{
		Name:   path,
		Path:   path,
		Mode:   buffer.ReadWrite,
		UseLog: true,
		Logger: logger,
	}.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "edit: opening %s: %v\n", path, err)
		os.Exit(1)
	}
	defer buf.Close()

	driver := termui.Open()
	defer driver.Close()

	w, h := termui.Size()
	v := view.New(buf, 0, w, h-1) // bottom row is reserved for the status line
	applyConfig(v, cfg)

	syncWorker, err := syncer.New(*syncSpec, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "edit: bad -sync-every spec: %v\n", err)
		os.Exit(1)
	}
	syncWorker.Register(buf.Name(), &syncer.Target{Buffer: buf, TmpPath: path + ".edit.tmp", FinalPath: path})
	syncWorker.Start()
	defer syncWorker.Stop()

	lastInput := time.Now()
	abortIndex := make(chan struct{})
	defer close(abortIndex)
	go func() {
		recentActivity := func() bool { return time.Since(lastInput) < time.Second }
		for {
			select {
			case <-abortIndex:
				return
			default:
			}
			if _, fresh := buf.LineCount(); !fresh {
				indexer.Run(buf, abortIndex, recentActivity, logger)
			}
			time.Sleep(250 * time.Millisecond)
		}
	}()

	walker := inputmap.DefaultMap().NewWalker()
	dispatcher := mode.New(v)

	driver.OnResize = func(w, h int) { v.Resize(w, h-1) }

	draw(driver, v, buf)

	for ev := range driver.Input() {
		lastInput = time.Now()

		if ev.Key == inputmap.KeyChar && ev.Rune == 'c' && ev.Mod == inputmap.ModCtrl {
			return
		}
		if ev.Key == inputmap.KeyEsc {
			walker.Reset()
			v.Enqueue(view.Action{Kind: view.ActionCancelSelection})
			continue
		}

		action, matched, pending := walker.Step(ev)
		switch {
		case pending:
			continue
		case matched:
			_ = dispatcher.Run(action, "")
		case ev.Key == inputmap.KeyChar && ev.Rune != 0:
			_ = dispatcher.Run(mode.InsertChar, string(ev.Rune))
		default:
			continue
		}

		v.Enqueue(view.Action{Kind: view.ActionCenterAroundMainMarkIfOffScreen})
		draw(driver, v, buf)
	}
}

// applyConfig maps the loaded text-mode config onto the view's filter
// options. display-end-of-line has no dedicated end-of-line glyph
// filter in this pipeline, so it is adapted onto ShowTrailingSpaces,
// the closest existing "make line-ending whitespace visible" stage.
func applyConfig(v *view.View, cfg *config.Config) {
	v.Options.CharMap = cfg.TextMode.CharMapRunes()
	v.Options.ColorMap = cfg.TextMode.ColorMapRunes()
	v.Options.WordWrap = cfg.TextMode.DisplayWordWrap
	v.Options.ShowTrailingSpaces = cfg.TextMode.DisplayEndOfLine
	if len(cfg.TextMode.Ruler) > 0 {
		v.Ruler = &filter.RulerOverlayFilter{Column: cfg.TextMode.Ruler[0]}
	}
}

// draw composes the view and flushes it to the terminal, with a status
// line synthesized from the view's current TextModeContext (§
// "Supplemented features: tab-bar/status-line/title-bar modes").
func draw(driver *termui.Driver, v *view.View, buf *buffer.Buffer) {
	v.Compose(view.ContentAndScreenOverlay)
	ctx := v.Context(buf.Name(), buf.Changed(), false)
	status := view.StatusLineDecorator(ctx, v.Width)

	driver.Frame(func(back *screen.Screen) {
		copyRows(back, v.Screen)
		writeStatusRow(back, v.Height, status)
	})
}

// copyRows blits src's cells onto dst at row 0, assuming dst is at
// least as tall as src (the caller-reserved status row keeps this
// true).
func copyRows(dst, src *screen.Screen) {
	for y := 0; y < src.Height && y < dst.Height; y++ {
		for x := 0; x < src.Width && x < dst.Width; x++ {
			dst.Cells[y*dst.Width+x] = src.Get(x, y)
		}
	}
}

func writeStatusRow(dst *screen.Screen, y int, text string) {
	if y < 0 || y >= dst.Height {
		return
	}
	x := 0
	for _, r := range text {
		if x >= dst.Width {
			break
		}
		dst.Cells[y*dst.Width+x] = screen.ScreenCell{Info: screen.CodepointInfo{Used: true, DisplayedCP: r}}
		x++
	}
}
