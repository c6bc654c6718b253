// Package output tracks the compositor's outputs and their placement
// in the global layout space.
package output

import "sync"

// Box is a rectangle in some coordinate space (global layout space or
// output-local space, depending on context).
type Box struct {
	X, Y          int32
	Width, Height int32
}

// Intersects reports whether the two boxes overlap.
func (b Box) Intersects(o Box) bool {
	return b.X < o.X+o.Width && o.X < b.X+b.Width &&
		b.Y < o.Y+o.Height && o.Y < b.Y+b.Height
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(x, y int32) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Translate returns the box shifted by (dx, dy).
func (b Box) Translate(dx, dy int32) Box {
	return Box{X: b.X + dx, Y: b.Y + dy, Width: b.Width, Height: b.Height}
}

// Empty reports whether the box has no area.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// DamageSink accepts output-local damage for inclusion in the next
// frame. It is the boundary to the renderer, which is outside this
// subsystem.
type DamageSink interface {
	Damage(local Box)
}

// Output represents one display with its own origin within the global
// layout space.
type Output struct {
	name     string
	geometry Box
	sink     DamageSink
}

// New creates an output with the given layout-space geometry.
func New(name string, geometry Box, sink DamageSink) *Output {
	return &Output{
		name:     name,
		geometry: geometry,
		sink:     sink,
	}
}

// Name returns the output's connector name (e.g. "DP-1").
func (o *Output) Name() string {
	return o.name
}

// LayoutGeometry returns the output's geometry in global layout space.
func (o *Output) LayoutGeometry() Box {
	return o.geometry
}

// Damage submits an output-local region to the output's renderer.
func (o *Output) Damage(local Box) {
	if o.sink != nil && !local.Empty() {
		o.sink.Damage(local)
	}
}

// Layout is the set of all current outputs.
type Layout struct {
	mu      sync.RWMutex
	outputs []*Output
}

// NewLayout creates an empty layout.
func NewLayout() *Layout {
	return &Layout{}
}

// Add inserts an output into the layout. Adding an output twice is a
// no-op.
func (l *Layout) Add(o *Output) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.outputs {
		if existing == o {
			return
		}
	}
	l.outputs = append(l.outputs, o)
}

// Remove takes an output out of the layout.
func (l *Layout) Remove(o *Output) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, existing := range l.outputs {
		if existing == o {
			l.outputs = append(l.outputs[:i], l.outputs[i+1:]...)
			return
		}
	}
}

// ForEach calls fn for every output in the layout.
func (l *Layout) ForEach(fn func(*Output)) {
	l.mu.RLock()
	snapshot := make([]*Output, len(l.outputs))
	copy(snapshot, l.outputs)
	l.mu.RUnlock()

	for _, o := range snapshot {
		fn(o)
	}
}

// At returns the output whose geometry contains the given global
// point, or nil if the point is outside every output.
func (l *Layout) At(x, y int32) *Output {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, o := range l.outputs {
		if o.geometry.Contains(x, y) {
			return o
		}
	}
	return nil
}

// Outputs returns a snapshot of all outputs.
func (l *Layout) Outputs() []*Output {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Output, len(l.outputs))
	copy(out, l.outputs)
	return out
}
