package seat

import (
	"github.com/driftwm/drift/internal/logger"
	"github.com/driftwm/drift/internal/output"
	"github.com/driftwm/drift/internal/signal"
)

// Bridge validates and forwards seat requests and owns the single
// active drag operation. All handlers run on the compositor's event
// loop; none of them block.
type Bridge struct {
	seat    Seat
	cursor  CursorController
	bus     *signal.Bus
	pos     PositionSource
	outputs *output.Layout

	// drag is the one active drag operation, or nil. Written only on
	// a granted drag start and cleared only from the icon's destroy
	// event.
	drag *DragIcon

	subs []*signal.Subscription
}

// NewBridge wires a bridge to the seat's request events.
func NewBridge(seat Seat, cursor CursorController, bus *signal.Bus, pos PositionSource, outputs *output.Layout) *Bridge {
	b := &Bridge{
		seat:    seat,
		cursor:  cursor,
		bus:     bus,
		pos:     pos,
		outputs: outputs,
	}

	events := seat.Events()
	b.subs = append(b.subs,
		events.Subscribe(EventRequestSetCursor, func(data interface{}) {
			if ev, ok := data.(SetCursorEvent); ok {
				b.HandleSetCursor(ev)
			}
		}),
		events.Subscribe(EventRequestStartDrag, func(data interface{}) {
			if ev, ok := data.(StartDragRequest); ok {
				b.HandleStartDragRequest(ev)
			}
		}),
		events.Subscribe(EventStartDrag, func(data interface{}) {
			if d, ok := data.(Drag); ok {
				b.HandleDragStarted(d)
			}
		}),
		events.Subscribe(EventRequestSetSelection, func(data interface{}) {
			if ev, ok := data.(SelectionRequest); ok {
				b.HandleSetSelection(ev)
			}
		}),
		events.Subscribe(EventRequestSetPrimarySelection, func(data interface{}) {
			if ev, ok := data.(SelectionRequest); ok {
				b.HandleSetPrimarySelection(ev)
			}
		}),
	)

	return b
}

// Close unsubscribes the bridge from the seat. The active drag, if
// any, stays alive until its icon's destroy event.
func (b *Bridge) Close() {
	for _, sub := range b.subs {
		sub.Cancel()
	}
	b.subs = nil
}

// HandleSetCursor forwards a cursor image request unchanged. Cursor
// image requests carry no grab semantics, so no serial validation.
func (b *Bridge) HandleSetCursor(ev SetCursorEvent) {
	b.cursor.SetCursor(ev)
}

// HandleStartDragRequest validates a drag request against the seat's
// outstanding pointer grab, then its touch grab. An invalid serial is
// a logged rejection: the data source is destroyed so the client side
// does not leak it, and no drag state is created. A request arriving
// while a drag is already active is rejected the same way.
func (b *Bridge) HandleStartDragRequest(ev StartDragRequest) {
	if b.drag != nil {
		logger.Debugf("rejecting start_drag request: a drag is already active")
		destroySource(ev.Drag)
		return
	}

	if b.seat.ValidatePointerGrabSerial(ev.Serial) {
		b.seat.StartPointerDrag(ev.Drag, ev.Serial)
		return
	}

	if point, ok := b.seat.ValidateTouchGrabSerial(ev.Serial); ok {
		b.seat.StartTouchDrag(ev.Drag, ev.Serial, point)
		return
	}

	logger.Debugf("ignoring start_drag request: could not validate pointer or touch serial %d", ev.Serial)
	destroySource(ev.Drag)
}

// HandleDragStarted runs once the seat has granted a drag. It takes
// ownership of the drag icon and announces the drag.
func (b *Bridge) HandleDragStarted(d Drag) {
	b.drag = newDragIcon(b, d)
	b.bus.Emit(SignalDragStarted, nil)
}

// HandleSetSelection forwards a selection change. The seat primitive
// does its own serial bookkeeping.
func (b *Bridge) HandleSetSelection(ev SelectionRequest) {
	b.seat.SetSelection(ev.Source, ev.Serial)
}

// HandleSetPrimarySelection forwards a primary-selection change.
func (b *Bridge) HandleSetPrimarySelection(ev SelectionRequest) {
	b.seat.SetPrimarySelection(ev.Source, ev.Serial)
}

// DragIcon returns the active drag operation, or nil.
func (b *Bridge) DragIcon() *DragIcon {
	return b.drag
}

// UpdateDragIcon repositions the active drag icon after pointer or
// touch motion: it re-derives the output under the anchor point and
// damages the icon's old and new extents.
func (b *Bridge) UpdateDragIcon() {
	if b.drag != nil && b.drag.Mapped() {
		b.drag.updatePosition()
	}
}

func destroySource(d Drag) {
	if d == nil {
		return
	}
	if src := d.Source(); src != nil {
		src.Destroy()
	}
}
