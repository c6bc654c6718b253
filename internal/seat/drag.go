package seat

import (
	"github.com/driftwm/drift/internal/output"
	"github.com/driftwm/drift/internal/signal"
)

// DragIcon is the visual surface that follows the pointer or touch
// point during a drag. It exists from the granted drag start until the
// icon surface's destroy event, which clears the bridge's drag slot
// and announces SignalDragStopped. The icon surface's storage is owned
// exclusively by this wrapper for that whole interval, so destruction
// needs no reference counting.
type DragIcon struct {
	bridge *Bridge
	drag   Drag
	icon   IconSurface

	// out is the output the icon was last attached to. It only
	// affects the coordinate space of OutputPosition; the anchor
	// itself is always re-read from the position source.
	out *output.Output

	// lastBox is the icon's previous global extents, damaged on the
	// next move so the old location repaints.
	lastBox output.Box

	subs     []*signal.Subscription
	finished bool
}

// newDragIcon wraps the drag's icon surface and subscribes to its
// lifecycle events. A drag without an icon still produces a DragIcon
// so the slot and stop signal behave uniformly; it just never maps.
// The drag's own destroy event terminates the operation either way, so
// an iconless drag cannot wedge the slot.
func newDragIcon(b *Bridge, d Drag) *DragIcon {
	di := &DragIcon{
		bridge: b,
		drag:   d,
		icon:   d.Icon(),
	}

	di.subs = append(di.subs,
		d.Events().Subscribe(DragEventDestroy, func(interface{}) { di.handleDestroy() }),
	)

	if di.icon != nil {
		events := di.icon.Events()
		di.subs = append(di.subs,
			events.Subscribe(IconEventMap, func(interface{}) { di.handleMap() }),
			events.Subscribe(IconEventUnmap, func(interface{}) { di.handleUnmap() }),
			events.Subscribe(IconEventDestroy, func(interface{}) { di.handleDestroy() }),
		)
	}

	return di
}

// Mapped reports whether the icon surface is currently mapped.
func (di *DragIcon) Mapped() bool {
	return di.icon != nil && di.icon.Mapped()
}

// Output returns the output the icon is currently attached to, or nil.
func (di *DragIcon) Output() *output.Output {
	return di.out
}

// SetOutput attaches the icon to an output. OutputPosition then
// reports coordinates local to that output.
func (di *DragIcon) SetOutput(o *output.Output) {
	di.out = o
}

// OutputPosition returns the icon's position. The anchor is the live
// touch position for touch-based drags and the live pointer position
// otherwise; the icon's surface-local offset is added while mapped,
// and the attached output's layout origin is subtracted to yield
// output-local coordinates. Recomputed on every call because the
// anchor moves continuously.
func (di *DragIcon) OutputPosition() (int32, int32) {
	x, y := di.globalPosition()

	if di.out != nil {
		og := di.out.LayoutGeometry()
		x -= og.X
		y -= og.Y
	}

	return x, y
}

// globalPosition returns the icon's position in global layout space.
func (di *DragIcon) globalPosition() (int32, int32) {
	var fx, fy float64
	if di.drag.GrabKind() == GrabTouch {
		fx, fy = di.bridge.pos.TouchPosition(di.drag.TouchID())
	} else {
		fx, fy = di.bridge.pos.CursorPosition()
	}

	x, y := int32(fx), int32(fy)
	if di.Mapped() {
		sx, sy := di.icon.Offset()
		x += sx
		y += sy
	}

	return x, y
}

// Damage submits the given global-space box to every output it
// overlaps, translated into each output's local space. A no-op while
// the icon is unmapped. The walk is per-output because the icon can
// span or cross output boundaries.
func (di *DragIcon) Damage(box output.Box) {
	if !di.Mapped() {
		return
	}

	di.bridge.outputs.ForEach(func(o *output.Output) {
		og := o.LayoutGeometry()
		if og.Intersects(box) {
			o.Damage(box.Translate(-og.X, -og.Y))
		}
	})
}

// updatePosition re-derives the icon's output from the anchor point
// and damages the old and new extents.
func (di *DragIcon) updatePosition() {
	x, y := di.globalPosition()
	w, h := di.icon.Size()
	box := output.Box{X: x, Y: y, Width: w, Height: h}

	if !di.lastBox.Empty() && di.lastBox != box {
		di.Damage(di.lastBox)
	}

	di.out = di.bridge.outputs.At(x, y)
	di.Damage(box)
	di.lastBox = box
}

func (di *DragIcon) handleMap() {
	di.updatePosition()
}

func (di *DragIcon) handleUnmap() {
	// Repaint the area the icon occupied. Damage itself is gated on
	// the mapped state, so go to the outputs directly.
	if !di.lastBox.Empty() {
		box := di.lastBox
		di.bridge.outputs.ForEach(func(o *output.Output) {
			og := o.LayoutGeometry()
			if og.Intersects(box) {
				o.Damage(box.Translate(-og.X, -og.Y))
			}
		})
		di.lastBox = output.Box{}
	}
}

// handleDestroy is the terminal transition: cancel all subscriptions,
// clear the bridge's drag slot and announce the stop. The stop signal
// fires unconditionally, mapped or not. Reached from the icon's
// destroy event or the drag's own, whichever comes first; the second
// one is a no-op.
func (di *DragIcon) handleDestroy() {
	if di.finished {
		return
	}
	di.finished = true

	for _, sub := range di.subs {
		sub.Cancel()
	}
	di.subs = nil

	di.bridge.drag = nil
	di.bridge.bus.Emit(SignalDragStopped, nil)
}
