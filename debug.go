package gridcanvas

import (
	"log/slog"
	"time"
)

// debugLogEvery is how many frames pass between debug stat lines.
const debugLogEvery = 120

// debugStats accumulates per-frame metrics while Options.Debug is set.
type debugStats struct {
	frames     int
	updateTime time.Duration
	drawTime   time.Duration
	widgets    int
	redraws    int // at the previous report
}

// SetDebug toggles the overlay and periodic stat logging.
func (g *Grid) SetDebug(on bool) {
	g.opts.Debug = on
	g.stats = debugStats{redraws: g.renderer.redraws}
}

// Debug reports whether debug mode is on.
func (g *Grid) Debug() bool { return g.opts.Debug }

// recordFrame adds one frame's timings and logs a summary every
// debugLogEvery frames.
func (g *Grid) recordFrame(update, draw time.Duration) {
	if !g.opts.Debug {
		return
	}
	s := &g.stats
	s.frames++
	s.updateTime += update
	s.drawTime += draw
	s.widgets = len(g.placeBuf)
	if s.frames < debugLogEvery {
		return
	}
	n := time.Duration(s.frames)
	g.log.Debug("frame stats",
		slog.Duration("update", s.updateTime/n),
		slog.Duration("draw", s.drawTime/n),
		slog.Int("widgets", s.widgets),
		slog.Int("grid_redraws", g.renderer.redraws-s.redraws),
		slog.Float64("scale", g.cam.scale),
	)
	g.stats = debugStats{redraws: g.renderer.redraws}
}
