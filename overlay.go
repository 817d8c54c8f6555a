package gridcanvas

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debugText is the camera summary shown by the debug overlay.
func (g *Grid) debugText() string {
	drag := "idle"
	switch {
	case g.wdrag.active():
		drag = fmt.Sprintf("widget %d", g.wdrag.state.Index)
	case g.cam.dragging:
		drag = "camera"
	}
	return fmt.Sprintf("pos: %.1f, %.1f\nscale: %.2f\ndrag: %s\nanim: %d  redraws: %d\nFPS: %.1f  TPS: %.1f",
		g.cam.position.X, g.cam.position.Y, g.cam.scale, drag,
		g.anim.active(), g.renderer.redraws,
		ebiten.ActualFPS(), ebiten.ActualTPS())
}

// drawOverlay prints debugText in the top-left corner of the surface.
func (g *Grid) drawOverlay(surface *ebiten.Image) {
	b := surface.Bounds()
	vector.FillRect(surface, float32(b.Min.X), float32(b.Min.Y), 180, 80, color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrintAt(surface, g.debugText(), b.Min.X+4, b.Min.Y+2)
}
