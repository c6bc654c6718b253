// Package input owns the lifecycle of physical input devices: it wraps
// every device announced by the hardware backend, applies the input
// configuration to it, translates switch toggles into compositor
// signals and tears the wrapper down when the hardware goes away.
package input

import (
	"github.com/driftwm/drift/internal/signal"
)

// Event names emitted on a device handle's event bus.
const (
	// EventDestroy fires when the backend is about to invalidate the
	// handle. No payload.
	EventDestroy = "destroy"

	// EventToggle fires on switch-capable devices with a ToggleEvent
	// payload.
	EventToggle = "toggle"
)

// Signals published on the compositor bus for switch devices. The
// payload is a SwitchSignal.
const (
	SignalTabletMode = "tablet-mode"
	SignalLidState   = "lid-state"
)

// DeviceType is the backend's coarse classification of a handle.
type DeviceType int

const (
	DeviceTypePointer DeviceType = iota
	DeviceTypeKeyboard
	DeviceTypeTouch
	DeviceTypeSwitch
	DeviceTypeTablet
)

// Handle is a native input device exposed by the hardware backend.
// The backend owns the handle's lifetime; it announces invalidation
// through the EventDestroy event, after which the handle must not be
// used.
type Handle interface {
	// Name returns the device's human-readable name.
	Name() string

	// Type returns the backend's device classification.
	Type() DeviceType

	// Events returns the handle's event source (EventDestroy, and
	// EventToggle for switch devices).
	Events() *signal.Bus
}

// ClickMethod selects how physical clicks are generated on a touchpad.
type ClickMethod int

const (
	ClickMethodNone ClickMethod = iota
	ClickMethodButtonAreas
	ClickMethodClickfinger
)

// ScrollMethod selects how scrolling is generated on a touchpad.
type ScrollMethod int

const (
	ScrollMethodNone ScrollMethod = iota
	ScrollMethodTwoFinger
	ScrollMethodEdge
	ScrollMethodOnButtonDown
)

// SendEventsMode controls whether a device delivers events at all.
type SendEventsMode int

const (
	SendEventsEnabled SendEventsMode = iota
	SendEventsDisabled
	SendEventsDisabledOnExternalMouse
)

// Configurable is implemented by handles of the libinput device class.
// Handles that do not implement it cannot be configured or toggled;
// they always report enabled.
type Configurable interface {
	Handle

	// TapFingerCount returns the number of fingers the device
	// supports for tap-to-click. A positive count identifies a
	// touchpad.
	TapFingerCount() int

	SetAccelSpeed(speed float64)
	SetTapEnabled(enabled bool)

	DefaultClickMethod() ClickMethod
	SetClickMethod(method ClickMethod)

	DefaultScrollMethod() ScrollMethod
	SetScrollMethod(method ScrollMethod)

	SetDisableWhileTyping(enabled bool)

	SendEventsMode() SendEventsMode
	SetSendEventsMode(mode SendEventsMode)

	// HasNaturalScroll reports whether the device supports natural
	// scrolling at all.
	HasNaturalScroll() bool
	SetNaturalScroll(enabled bool)
}

// SwitchType identifies the kind of hardware switch that toggled.
type SwitchType int

const (
	SwitchTypeTabletMode SwitchType = iota
	SwitchTypeLid
)

// ToggleEvent is the payload of EventToggle.
type ToggleEvent struct {
	Type SwitchType
	On   bool
}

// SwitchSignal is the payload of SignalTabletMode and SignalLidState.
type SwitchSignal struct {
	Device *Device
	On     bool
}

// Class is the capability class of a device, determined once at
// registration time.
type Class int

const (
	ClassPointer Class = iota
	ClassTouchpad
	ClassKeyboard
	ClassTouch
	ClassSwitch
	ClassTablet
)

func (c Class) String() string {
	switch c {
	case ClassPointer:
		return "pointer"
	case ClassTouchpad:
		return "touchpad"
	case ClassKeyboard:
		return "keyboard"
	case ClassTouch:
		return "touch"
	case ClassSwitch:
		return "switch"
	case ClassTablet:
		return "tablet"
	default:
		return "unknown"
	}
}

// Device wraps one registered handle. The wrapper never outlives its
// handle: the registry releases it from the handle's destroy event,
// cancelling all subscriptions before the wrapper is dropped.
type Device struct {
	handle Handle
	class  Class
	subs   []*signal.Subscription
}

// Handle returns the wrapped native handle.
func (d *Device) Handle() Handle {
	return d.handle
}

// Name returns the device's human-readable name.
func (d *Device) Name() string {
	return d.handle.Name()
}

// Class returns the capability class determined at registration.
func (d *Device) Class() Class {
	return d.class
}

// classify determines the capability class once, at registration.
// A touchpad is recognized by a positive tap finger count; everything
// else follows the backend's type tag.
func classify(h Handle) Class {
	if cfg, ok := h.(Configurable); ok && cfg.TapFingerCount() > 0 {
		return ClassTouchpad
	}

	switch h.Type() {
	case DeviceTypeKeyboard:
		return ClassKeyboard
	case DeviceTypeTouch:
		return ClassTouch
	case DeviceTypeSwitch:
		return ClassSwitch
	case DeviceTypeTablet:
		return ClassTablet
	default:
		return ClassPointer
	}
}
