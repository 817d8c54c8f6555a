// Package gridcanvas is an infinite, pannable, zoomable grid surface for
// [Ebitengine] that hosts freely positioned widgets.
//
// A [Grid] owns a camera (position and scale) and routes every pointer and
// wheel event to one of three interaction machines: camera drag, widget
// drag, or the wheel controller. Widget positions belong to the host and are
// read through a [WidgetSource]; the grid reports drag results through
// [Options.OnWidgetDrag] and never writes positions itself.
//
// # Coordinates
//
// Widgets live in logical space. A point maps to the surface as
//
//	physical = position + logical*scale
//
// and back with logical = (physical - position)/scale. See [ToPhysical] and
// [ToLogical]. Scale is always clamped to [[MinScale], [MaxScale]].
//
// # Quick start
//
//	grid := gridcanvas.New(gridcanvas.Options{
//		Widgets:      tables,
//		Drawer:       tables,
//		OnWidgetDrag: tables.Move,
//	})
//	gridcanvas.Run(grid, gridcanvas.RunConfig{Title: "Tables"})
//
// For full control, implement [ebiten.Game] yourself and call [Grid.Update],
// [Grid.Draw] and [Grid.Resize] from Update, Draw and Layout.
//
// # Input
//
//   - Left press on empty surface pans the camera until release.
//   - Left press on a widget drags only that widget; the camera stays put.
//   - Ctrl+wheel zooms by [Options.ZoomStep] per event.
//   - Shift+wheel pans horizontally; plain wheel pans both axes.
//
// While a drag is active the grid holds a pointer capture so moves outside
// the surface keep following the pointer. It is released on pointer up.
//
// # Animation
//
// [Grid.CenterOnPoint] eases the camera so a logical point lands in the
// middle of the surface over [Options.CenterDuration] with an out-cubic curve.
// [Options.Overlap] decides whether a new centering cancels a running one.
//
// # Testing
//
// [Grid.Step] advances one frame at an explicit time, and the Inject methods
// queue synthetic pointer and wheel events that travel the same path as real
// input. [LoadTestScript] plays a JSON script of those events.
//
// [Ebitengine]: https://ebitengine.org
package gridcanvas
