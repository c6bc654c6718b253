package input

import (
	"fmt"
	"sync"

	"github.com/driftwm/drift/internal/config"
	"github.com/driftwm/drift/internal/logger"
	"github.com/driftwm/drift/internal/signal"
)

// Registry owns one Device wrapper per connected input device. It is
// driven by the backend's announce/destroy events: Register wraps a
// newly announced handle, and the handle's destroy event deregisters
// it again before the backend invalidates the handle.
type Registry struct {
	mu      sync.RWMutex
	devices map[Handle]*Device
	bus     *signal.Bus
	input   config.InputConfig
}

// NewRegistry creates a registry publishing switch signals on bus and
// configuring devices from the given snapshot.
func NewRegistry(bus *signal.Bus, input config.InputConfig) *Registry {
	return &Registry{
		devices: make(map[Handle]*Device),
		bus:     bus,
		input:   input,
	}
}

// Register wraps a newly announced handle: the capability class is
// determined once, the current configuration is applied, and the
// registry subscribes to the handle's destroy event (plus its toggle
// event for switch devices). Registering a handle twice is a caller
// error and panics.
func (r *Registry) Register(h Handle) *Device {
	r.mu.Lock()
	if _, ok := r.devices[h]; ok {
		r.mu.Unlock()
		panic(fmt.Sprintf("input: device %q registered twice", h.Name()))
	}

	d := &Device{
		handle: h,
		class:  classify(h),
	}
	r.devices[h] = d
	r.mu.Unlock()

	r.ApplyConfig(d)

	d.subs = append(d.subs, h.Events().Subscribe(EventDestroy, func(interface{}) {
		r.deregister(h)
	}))

	if d.class == ClassSwitch {
		d.subs = append(d.subs, h.Events().Subscribe(EventToggle, func(data interface{}) {
			if ev, ok := data.(ToggleEvent); ok {
				r.handleToggle(d, ev)
			}
		}))
	}

	logger.Debugf("registered input device %q (%s)", h.Name(), d.class)
	return d
}

// deregister runs from the handle's destroy event. Subscriptions are
// cancelled before anything else so no handler can touch the handle
// once the backend starts invalidating it.
func (r *Registry) deregister(h Handle) {
	r.mu.Lock()
	d, ok := r.devices[h]
	if !ok {
		r.mu.Unlock()
		panic(fmt.Sprintf("input: deregistering unknown device %q", h.Name()))
	}
	delete(r.devices, h)
	r.mu.Unlock()

	for _, sub := range d.subs {
		sub.Cancel()
	}
	d.subs = nil

	logger.Debugf("deregistered input device %q", d.Name())
}

// Get returns the wrapper for a registered handle, or nil.
func (r *Registry) Get(h Handle) *Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.devices[h]
}

// Devices returns a snapshot of all registered devices.
func (r *Registry) Devices() []*Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Device, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, d)
	}
	return out
}

// SetEnabled switches event delivery for the device on or off. It
// returns false for devices that do not support enable/disable
// (currently every non-libinput device). Setting the already-current
// state is a successful no-op.
func (r *Registry) SetEnabled(d *Device, enabled bool) bool {
	if enabled == r.IsEnabled(d) {
		return true
	}

	cfgDev, ok := d.handle.(Configurable)
	if !ok {
		return false
	}

	mode := SendEventsDisabled
	if enabled {
		mode = SendEventsEnabled
	}
	cfgDev.SetSendEventsMode(mode)
	return true
}

// IsEnabled reports whether the device currently delivers events. The
// backend is queried live each time so out-of-band changes are never
// masked by a stale cache. Devices without enable/disable support
// always report enabled.
func (r *Registry) IsEnabled(d *Device) bool {
	cfgDev, ok := d.handle.(Configurable)
	if !ok {
		// No support for enabling/disabling non-libinput devices
		return true
	}
	return cfgDev.SendEventsMode() == SendEventsEnabled
}

// ApplyConfig pushes the current input configuration to the device.
// Settings are fire-and-forget against the backend; individual setters
// have no failure path.
func (r *Registry) ApplyConfig(d *Device) {
	cfgDev, ok := d.handle.(Configurable)
	if !ok {
		// Options are only supported for libinput devices
		return
	}

	r.mu.RLock()
	opts := r.input
	r.mu.RUnlock()

	if cfgDev.TapFingerCount() > 0 {
		r.applyTouchpadConfig(cfgDev, opts)
		return
	}

	cfgDev.SetAccelSpeed(opts.MouseCursorSpeed)
}

func (r *Registry) applyTouchpadConfig(dev Configurable, opts config.InputConfig) {
	dev.SetAccelSpeed(opts.TouchpadCursorSpeed)
	dev.SetTapEnabled(opts.TapToClick)

	switch opts.ClickMethod {
	case "default":
		dev.SetClickMethod(dev.DefaultClickMethod())
	case "none":
		dev.SetClickMethod(ClickMethodNone)
	case "button-areas":
		dev.SetClickMethod(ClickMethodButtonAreas)
	case "clickfinger":
		dev.SetClickMethod(ClickMethodClickfinger)
	default:
		// Unrecognized value: leave the current method unchanged.
		logger.Debugf("ignoring unknown click_method %q", opts.ClickMethod)
	}

	switch opts.ScrollMethod {
	case "default":
		dev.SetScrollMethod(dev.DefaultScrollMethod())
	case "none":
		dev.SetScrollMethod(ScrollMethodNone)
	case "two-finger":
		dev.SetScrollMethod(ScrollMethodTwoFinger)
	case "edge":
		dev.SetScrollMethod(ScrollMethodEdge)
	case "on-button-down":
		dev.SetScrollMethod(ScrollMethodOnButtonDown)
	default:
		logger.Debugf("ignoring unknown scroll_method %q", opts.ScrollMethod)
	}

	dev.SetDisableWhileTyping(opts.DisableWhileTyping)

	if opts.DisableTouchpadWhileMouse {
		dev.SetSendEventsMode(SendEventsDisabledOnExternalMouse)
	} else {
		dev.SetSendEventsMode(SendEventsEnabled)
	}

	if dev.HasNaturalScroll() {
		dev.SetNaturalScroll(opts.NaturalScroll)
	}
}

// SetInputConfig replaces the configuration snapshot and re-applies it
// to every registered device exactly once. Wired to config.OnReload by
// the caller that owns both.
func (r *Registry) SetInputConfig(input config.InputConfig) {
	r.mu.Lock()
	r.input = input
	devices := make([]*Device, 0, len(r.devices))
	for _, d := range r.devices {
		devices = append(devices, d)
	}
	r.mu.Unlock()

	for _, d := range devices {
		r.ApplyConfig(d)
	}
	logger.Debugf("re-applied input configuration to %d device(s)", len(devices))
}

// BindReload re-applies the input section to every device after each
// configuration reload.
func (r *Registry) BindReload() {
	config.OnReload(func(c *config.Config) {
		r.SetInputConfig(c.Input)
	})
}

// handleToggle translates a hardware switch toggle into the matching
// compositor signal. Switch kinds without a signal name are dropped.
func (r *Registry) handleToggle(d *Device, ev ToggleEvent) {
	var name string
	switch ev.Type {
	case SwitchTypeTabletMode:
		name = SignalTabletMode
	case SwitchTypeLid:
		name = SignalLidState
	default:
		logger.Debugf("ignoring toggle from %q: unknown switch type %d", d.Name(), ev.Type)
		return
	}

	r.bus.Emit(name, SwitchSignal{Device: d, On: ev.On})
}
