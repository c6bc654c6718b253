// Package seat bridges seat-level protocol requests (cursor image,
// drag-and-drop, selections) into compositor state. It validates
// security-sensitive requests against the seat's grab serials and owns
// the single active drag-and-drop operation, including the drag icon's
// positioning and damage across outputs.
package seat

import "github.com/driftwm/drift/internal/signal"

// Event names delivered on the seat's event bus.
const (
	// EventRequestSetCursor carries a SetCursorEvent.
	EventRequestSetCursor = "request-set-cursor"

	// EventRequestStartDrag carries a StartDragRequest.
	EventRequestStartDrag = "request-start-drag"

	// EventStartDrag fires once a drag has actually been granted and
	// carries the Drag.
	EventStartDrag = "start-drag"

	// EventRequestSetSelection and EventRequestSetPrimarySelection
	// carry a SelectionRequest.
	EventRequestSetSelection        = "request-set-selection"
	EventRequestSetPrimarySelection = "request-set-primary-selection"
)

// Signals published on the compositor bus. Neither carries a payload.
const (
	SignalDragStarted = "drag-started"
	SignalDragStopped = "drag-stopped"
)

// Icon surface event names.
const (
	IconEventMap     = "map"
	IconEventUnmap   = "unmap"
	IconEventDestroy = "destroy"
)

// Drag event names.
const (
	// DragEventDestroy fires when the protocol drag object ends, with
	// or without an icon. No payload.
	DragEventDestroy = "destroy"
)

// GrabKind distinguishes pointer-based from touch-based drags.
type GrabKind int

const (
	GrabPointer GrabKind = iota
	GrabTouch
)

// DataSource is the client-side source of a drag or selection. Destroy
// releases its resources; the bridge calls it when a drag request is
// rejected so the client does not leak the source.
type DataSource interface {
	Destroy()
}

// TouchPoint identifies one active touch point on the seat.
type TouchPoint interface {
	ID() int32
}

// IconSurface is the protocol surface rendered as the drag icon. Its
// storage is owned by the drag for the drag's whole duration; the
// destroy event frees it.
type IconSurface interface {
	// Mapped reports the surface's current visual state. Queried
	// live, never cached.
	Mapped() bool

	// Offset returns the surface-local offset to add to the anchor
	// point while the icon is mapped.
	Offset() (x, y int32)

	// Size returns the surface's current extents.
	Size() (w, h int32)

	// Events returns the surface's event source (IconEventMap,
	// IconEventUnmap, IconEventDestroy).
	Events() *signal.Bus
}

// Drag is one in-flight drag-and-drop operation as exposed by the
// protocol layer. GrabKind and TouchID become meaningful once the seat
// has granted the drag.
type Drag interface {
	Source() DataSource
	Icon() IconSurface
	GrabKind() GrabKind
	TouchID() int32

	// Events returns the drag's event source (DragEventDestroy).
	Events() *signal.Bus
}

// Seat is the protocol-level seat this subsystem drives. Grab serial
// validation and the selection primitives keep their own bookkeeping;
// the bridge only sequences them.
type Seat interface {
	// ValidatePointerGrabSerial reports whether serial matches the
	// currently outstanding pointer grab.
	ValidatePointerGrabSerial(serial uint32) bool

	// ValidateTouchGrabSerial reports whether serial matches the
	// currently outstanding touch grab and, if so, which touch point
	// it belongs to.
	ValidateTouchGrabSerial(serial uint32) (TouchPoint, bool)

	// StartPointerDrag and StartTouchDrag grant a validated drag.
	// The seat fires EventStartDrag once the drag is live.
	StartPointerDrag(d Drag, serial uint32)
	StartTouchDrag(d Drag, serial uint32, point TouchPoint)

	// SetSelection and SetPrimarySelection forward selection
	// ownership changes.
	SetSelection(source DataSource, serial uint32)
	SetPrimarySelection(source DataSource, serial uint32)

	// Events returns the seat's request event source.
	Events() *signal.Bus
}

// SetCursorEvent is a client request to change the cursor image. The
// surface is passed through to the cursor controller untouched.
type SetCursorEvent struct {
	Surface  interface{}
	HotspotX int32
	HotspotY int32
}

// StartDragRequest is a client request to begin a drag.
type StartDragRequest struct {
	Drag   Drag
	Serial uint32
}

// SelectionRequest is a client request to take selection ownership.
type SelectionRequest struct {
	Source DataSource
	Serial uint32
}

// CursorController applies cursor image changes. It lives outside this
// subsystem.
type CursorController interface {
	SetCursor(ev SetCursorEvent)
}

// PositionSource supplies the live pointer and touch positions in
// global layout coordinates.
type PositionSource interface {
	CursorPosition() (x, y float64)
	TouchPosition(id int32) (x, y float64)
}
