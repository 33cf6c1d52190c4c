// Package canvas is a small retained drawing layer for 1-bit displays.
//
// A Canvas owns a monochrome pixel buffer and exposes the drawing primitives
// status widgets need: background fill, rectangles, arcs, polylines, text,
// indexed images and a rotate/composite transform. Every primitive clips to
// the canvas and never fails.
//
// Canvases are placed inside an Object tree; Object.Render composites the
// tree onto any drivers.Displayer (a framebuffer, a panel driver, or another
// canvas).
package canvas
