// Package geometry provides pure viewport and coordinate math for the
// workflow canvas.
//
// All functions are stateless and allocation-free. Coordinates live in two
// spaces: model space (where nodes are positioned) and screen space (what the
// renderer draws). The viewport transform between them is
//
//	screen = model*zoom + pan
//
// Every function guards against non-finite inputs (NaN, ±Inf) and degrades
// to a no-op rather than propagating garbage into node positions or the
// viewport.
package geometry

import "math"

// Node footprint used for bounding-box and overlap calculations.
// These match the rendered node card dimensions.
const (
	NodeWidth  = 220.0
	NodeHeight = 68.0
)

// Zoom limits for interactive zooming.
const (
	MinZoom = 0.1
	MaxZoom = 5.0
)

// Fit-view scale limits. Fitting never zooms in past 1.5x or out past 0.15x,
// regardless of graph extent.
const (
	minFitScale = 0.15
	maxFitScale = 1.5
)

// overlapTolerance is the half-width of the box around an existing node
// center within which a candidate position counts as overlapping.
const overlapTolerance = 10.0

// positionBound clamps node coordinates to a sane range so a runaway drag
// can never push a node beyond recovery.
const positionBound = 100000.0

// Point is a position in model or screen space.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned box given as min/max corners.
type Rect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Center returns the midpoint of the rect.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Size returns the width and height of the rect.
func (r Rect) Size() (width, height float64) {
	return r.MaxX - r.MinX, r.MaxY - r.MinY
}

// ZoomDelta applies a relative zoom delta to the current zoom factor and
// clamps the result to [MinZoom, MaxZoom].
//
// A non-finite delta leaves the zoom unchanged (clamped). A non-finite or
// non-positive current zoom resets to 1.0, since such a viewport is already
// corrupt and 1.0 is the only safe recovery point.
func ZoomDelta(delta, currentZoom float64) float64 {
	if !isFinite(delta) {
		return clamp(currentZoom, MinZoom, MaxZoom)
	}
	if !isFinite(currentZoom) || currentZoom <= 0 {
		return 1.0
	}
	return clamp(currentZoom*(1+delta), MinZoom, MaxZoom)
}

// PanOffset computes the viewport offset that keeps the screen point
// (centerX, centerY) fixed while the zoom changes from oldZoom to newZoom.
// This is what makes zoom-under-cursor feel anchored.
//
// If any input is non-finite, or oldZoom is non-positive, the current offset
// is returned unchanged.
func PanOffset(viewportX, viewportY, centerX, centerY, oldZoom, newZoom float64) (float64, float64) {
	if !isFinite(viewportX) || !isFinite(viewportY) ||
		!isFinite(centerX) || !isFinite(centerY) ||
		!isFinite(oldZoom) || !isFinite(newZoom) || oldZoom <= 0 {
		return viewportX, viewportY
	}

	factor := newZoom / oldZoom
	if !isFinite(factor) {
		return viewportX, viewportY
	}

	newX := centerX - (centerX-viewportX)*factor
	newY := centerY - (centerY-viewportY)*factor
	if !isFinite(newX) || !isFinite(newY) {
		return viewportX, viewportY
	}
	return newX, newY
}

// FitView computes a viewport (offset + zoom) that frames all node positions
// within a viewport of the given dimensions, leaving padding pixels of slack.
//
// The bounding box is expanded by the node footprint (NodeWidth × NodeHeight)
// so the full card of every node fits, not just its anchor point. The scale
// is clamped to [0.15, 1.5] and the box midpoint is centered in the viewport.
//
// Returns ok=false when there is nothing to fit or the inputs are unusable:
// zero nodes, non-positive viewport dimensions, negative padding, or any
// non-finite value. Callers should leave the viewport untouched in that case.
func FitView(positions []Point, viewportWidth, viewportHeight, padding float64) (offsetX, offsetY, zoom float64, ok bool) {
	if len(positions) == 0 {
		return 0, 0, 0, false
	}
	if !isFinite(viewportWidth) || !isFinite(viewportHeight) || !isFinite(padding) ||
		viewportWidth <= 0 || viewportHeight <= 0 || padding < 0 {
		return 0, 0, 0, false
	}

	bbox := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range positions {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return 0, 0, 0, false
		}
		bbox.MinX = math.Min(bbox.MinX, p.X)
		bbox.MinY = math.Min(bbox.MinY, p.Y)
		bbox.MaxX = math.Max(bbox.MaxX, p.X+NodeWidth)
		bbox.MaxY = math.Max(bbox.MaxY, p.Y+NodeHeight)
	}

	width, height := bbox.Size()
	scaleX := (viewportWidth - padding) / math.Max(width, 1)
	scaleY := (viewportHeight - padding) / math.Max(height, 1)
	zoom = clamp(math.Min(scaleX, scaleY), minFitScale, maxFitScale)

	center := bbox.Center()
	offsetX = viewportWidth/2 - center.X*zoom
	offsetY = viewportHeight/2 - center.Y*zoom
	return offsetX, offsetY, zoom, true
}

// FindSafePosition nudges (desiredX, desiredY) by +step on both axes until
// no existing position lies within a 10-unit tolerance box of the candidate.
// With a positive step this always terminates: each nudge moves the candidate
// diagonally past the finite set of occupied centers.
func FindSafePosition(existing []Point, desiredX, desiredY, step float64) (float64, float64) {
	x, y := desiredX, desiredY
	for occupied(existing, x, y) {
		x += step
		y += step
	}
	return x, y
}

func occupied(existing []Point, x, y float64) bool {
	for _, p := range existing {
		if math.Abs(p.X-x) < overlapTolerance && math.Abs(p.Y-y) < overlapTolerance {
			return true
		}
	}
	return false
}

// UpdateNodePosition applies a drag delta to a node position with snapping
// and bounds. The delta is scaled down by 10 before snapping, then each axis
// is rounded and expanded back onto the 10-unit grid:
//
//	new = round(current + delta/10) * 10
//
// If any of the four inputs is non-finite the position is returned unchanged;
// a single NaN from an input device must never corrupt stored coordinates.
// Results are clamped to ±100000 on both axes.
func UpdateNodePosition(currentX, currentY, dx, dy float64) (float64, float64) {
	if !isFinite(dx) || !isFinite(dy) || !isFinite(currentX) || !isFinite(currentY) {
		return currentX, currentY
	}

	newX := math.Round(currentX+dx/10) * 10
	newY := math.Round(currentY+dy/10) * 10

	newX = clamp(newX, -positionBound, positionBound)
	newY = clamp(newY, -positionBound, positionBound)
	return newX, newY
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
