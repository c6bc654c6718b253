package seat

import (
	"testing"

	"github.com/driftwm/drift/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startPointerDrag runs a validated pointer drag through the fixture
// and returns the active icon.
func startPointerDrag(t *testing.T, f *fixture, drag *fakeDrag) *DragIcon {
	t.Helper()
	f.seat.pointerSerial = 10
	f.seat.Events().Emit(EventRequestStartDrag, StartDragRequest{Drag: drag, Serial: 10})
	di := f.bridge.DragIcon()
	require.NotNil(t, di)
	return di
}

func TestOutputPosition(t *testing.T) {
	t.Run("pointer anchor plus offset minus output origin", func(t *testing.T) {
		f := newFixture()
		f.pos.cursorX, f.pos.cursorY = 150, 40

		drag := newFakeDrag(newFakeIcon())
		drag.icon.mapped = true
		drag.icon.sx, drag.icon.sy = 5, 5
		di := startPointerDrag(t, f, drag)

		out := output.New("DP-1", output.Box{X: 100, Y: 0, Width: 800, Height: 600}, nil)
		di.SetOutput(out)

		x, y := di.OutputPosition()
		assert.Equal(t, int32(55), x)
		assert.Equal(t, int32(45), y)
	})

	t.Run("offset is skipped while unmapped", func(t *testing.T) {
		f := newFixture()
		f.pos.cursorX, f.pos.cursorY = 150, 40

		drag := newFakeDrag(newFakeIcon())
		drag.icon.sx, drag.icon.sy = 5, 5
		di := startPointerDrag(t, f, drag)

		x, y := di.OutputPosition()
		assert.Equal(t, int32(150), x)
		assert.Equal(t, int32(40), y)
	})

	t.Run("touch drags anchor on the touch point", func(t *testing.T) {
		f := newFixture()
		f.pos.cursorX, f.pos.cursorY = 999, 999
		f.pos.touches[3] = [2]float64{200, 100}
		f.seat.touchSerial = 20
		f.seat.touchPoint = &fakeTouchPoint{id: 3}

		drag := newFakeDrag(newFakeIcon())
		f.seat.Events().Emit(EventRequestStartDrag, StartDragRequest{Drag: drag, Serial: 20})
		di := f.bridge.DragIcon()
		require.NotNil(t, di)

		x, y := di.OutputPosition()
		assert.Equal(t, int32(200), x)
		assert.Equal(t, int32(100), y)
	})

	t.Run("position tracks pointer motion without caching", func(t *testing.T) {
		f := newFixture()
		f.pos.cursorX, f.pos.cursorY = 10, 10

		drag := newFakeDrag(newFakeIcon())
		di := startPointerDrag(t, f, drag)

		x, _ := di.OutputPosition()
		assert.Equal(t, int32(10), x)

		f.pos.cursorX = 300
		x, _ = di.OutputPosition()
		assert.Equal(t, int32(300), x)
	})
}

func TestDamage(t *testing.T) {
	t.Run("translates into each intersecting output", func(t *testing.T) {
		f := newFixture()
		sink1 := &damageSink{}
		sink2 := &damageSink{}
		f.outputs.Add(output.New("DP-1", output.Box{X: 100, Y: 0, Width: 800, Height: 600}, sink1))
		f.outputs.Add(output.New("DP-2", output.Box{X: 900, Y: 0, Width: 800, Height: 600}, sink2))

		drag := newFakeDrag(newFakeIcon())
		drag.icon.mapped = true
		di := startPointerDrag(t, f, drag)

		di.Damage(output.Box{X: 155, Y: 45, Width: 32, Height: 32})

		require.Len(t, sink1.boxes, 1)
		assert.Equal(t, output.Box{X: 55, Y: 45, Width: 32, Height: 32}, sink1.boxes[0])
		assert.Empty(t, sink2.boxes, "non-overlapping output must receive no damage")
	})

	t.Run("spans multiple outputs", func(t *testing.T) {
		f := newFixture()
		sink1 := &damageSink{}
		sink2 := &damageSink{}
		f.outputs.Add(output.New("DP-1", output.Box{X: 0, Y: 0, Width: 800, Height: 600}, sink1))
		f.outputs.Add(output.New("DP-2", output.Box{X: 800, Y: 0, Width: 800, Height: 600}, sink2))

		drag := newFakeDrag(newFakeIcon())
		drag.icon.mapped = true
		di := startPointerDrag(t, f, drag)

		// Straddles the boundary between the two outputs.
		di.Damage(output.Box{X: 784, Y: 100, Width: 32, Height: 32})

		require.Len(t, sink1.boxes, 1)
		assert.Equal(t, output.Box{X: 784, Y: 100, Width: 32, Height: 32}, sink1.boxes[0])
		require.Len(t, sink2.boxes, 1)
		assert.Equal(t, output.Box{X: -16, Y: 100, Width: 32, Height: 32}, sink2.boxes[0])
	})

	t.Run("no-op while unmapped", func(t *testing.T) {
		f := newFixture()
		sink := &damageSink{}
		f.outputs.Add(output.New("DP-1", output.Box{X: 0, Y: 0, Width: 800, Height: 600}, sink))

		drag := newFakeDrag(newFakeIcon())
		di := startPointerDrag(t, f, drag)

		di.Damage(output.Box{X: 10, Y: 10, Width: 32, Height: 32})
		assert.Empty(t, sink.boxes)
	})
}

func TestUpdateDragIcon(t *testing.T) {
	t.Run("attaches to the output under the anchor and damages both extents", func(t *testing.T) {
		f := newFixture()
		sink1 := &damageSink{}
		sink2 := &damageSink{}
		out1 := output.New("DP-1", output.Box{X: 0, Y: 0, Width: 800, Height: 600}, sink1)
		out2 := output.New("DP-2", output.Box{X: 800, Y: 0, Width: 800, Height: 600}, sink2)
		f.outputs.Add(out1)
		f.outputs.Add(out2)

		f.pos.cursorX, f.pos.cursorY = 100, 100
		drag := newFakeDrag(newFakeIcon())
		drag.icon.mapped = true
		di := startPointerDrag(t, f, drag)

		f.bridge.UpdateDragIcon()
		assert.Same(t, out1, di.Output())
		require.Len(t, sink1.boxes, 1)
		assert.Equal(t, output.Box{X: 100, Y: 100, Width: 32, Height: 32}, sink1.boxes[0])

		// Move onto the second output: the old extents repaint on the
		// first output, the new extents land on the second.
		f.pos.cursorX = 900
		f.bridge.UpdateDragIcon()
		assert.Same(t, out2, di.Output())
		require.Len(t, sink1.boxes, 2)
		assert.Equal(t, output.Box{X: 100, Y: 100, Width: 32, Height: 32}, sink1.boxes[1])
		require.Len(t, sink2.boxes, 1)
		assert.Equal(t, output.Box{X: 100, Y: 100, Width: 32, Height: 32}, sink2.boxes[0])
	})

	t.Run("does nothing while unmapped", func(t *testing.T) {
		f := newFixture()
		sink := &damageSink{}
		f.outputs.Add(output.New("DP-1", output.Box{X: 0, Y: 0, Width: 800, Height: 600}, sink))

		drag := newFakeDrag(newFakeIcon())
		startPointerDrag(t, f, drag)

		f.bridge.UpdateDragIcon()
		assert.Empty(t, sink.boxes)
	})

	t.Run("does nothing without an active drag", func(t *testing.T) {
		f := newFixture()
		f.bridge.UpdateDragIcon() // must not panic
	})
}

func TestUnmapRepaintsOldExtents(t *testing.T) {
	f := newFixture()
	sink := &damageSink{}
	f.outputs.Add(output.New("DP-1", output.Box{X: 0, Y: 0, Width: 800, Height: 600}, sink))

	f.pos.cursorX, f.pos.cursorY = 50, 50
	drag := newFakeDrag(newFakeIcon())
	drag.icon.mapped = true
	di := startPointerDrag(t, f, drag)

	f.bridge.UpdateDragIcon()
	require.Len(t, sink.boxes, 1)

	drag.icon.mapped = false
	drag.icon.Events().Emit(IconEventUnmap, nil)

	require.Len(t, sink.boxes, 2)
	assert.Equal(t, output.Box{X: 50, Y: 50, Width: 32, Height: 32}, sink.boxes[1])
	assert.False(t, di.Mapped())
}
