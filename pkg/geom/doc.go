// Package geom provides the planar geometry primitives used by the
// placement engine: points, line segments, and axis-aligned rectangles
// with overlap tests.
//
// All coordinates are in output pixel space with the y-axis pointing up.
// Rectangles are closed intervals on both axes, so two rectangles that
// merely touch along an edge still count as intersecting. This matters
// for label placement: visually touching labels read as a collision.
//
// Rotated footprints are approximated by their enclosing axis-aligned
// rectangle (see [RotatedAABB]); the engine never tests rotated boxes
// exactly.
package geom
