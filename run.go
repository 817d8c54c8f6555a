package gridcanvas

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Overlay is host UI drawn on top of the grid, such as a side panel. Its
// Update runs before the grid's so it can consume clicks first.
type Overlay interface {
	Update() error
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Overlay       Overlay
	// Done, when set, ends the loop once it returns true.
	Done func() bool
}

// game adapts a Grid to ebiten.Game.
type game struct {
	grid    *Grid
	overlay Overlay
	done    func() bool
}

// Update checks done before stepping so the previous frame, and any
// screenshot it queued, has been drawn.
func (g *game) Update() error {
	if g.done != nil && g.done() {
		return ebiten.Termination
	}
	if g.overlay != nil {
		if err := g.overlay.Update(); err != nil {
			return err
		}
	}
	g.grid.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.grid.Draw(screen)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *game) Layout(w, h int) (int, int) {
	g.grid.Resize(w, h)
	if g.overlay != nil {
		g.overlay.Layout(w, h)
	}
	return w, h
}

// Run opens a resizable window and runs the grid until the window closes or
// cfg.Done reports true.
func Run(grid *Grid, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "gridcanvas"
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	grid.log.Info("starting", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	if err := ebiten.RunGame(&game{grid: grid, overlay: cfg.Overlay, done: cfg.Done}); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
