package signal

import "testing"

func TestBus(t *testing.T) {
	t.Run("delivers to subscribers in order", func(t *testing.T) {
		bus := NewBus()
		var got []int

		bus.Subscribe("ev", func(interface{}) { got = append(got, 1) })
		bus.Subscribe("ev", func(interface{}) { got = append(got, 2) })
		bus.Emit("ev", nil)

		if len(got) != 2 || got[0] != 1 || got[1] != 2 {
			t.Errorf("expected delivery order [1 2], got %v", got)
		}
	})

	t.Run("passes the payload through", func(t *testing.T) {
		bus := NewBus()
		var got interface{}

		bus.Subscribe("ev", func(data interface{}) { got = data })
		bus.Emit("ev", 42)

		if got != 42 {
			t.Errorf("expected payload 42, got %v", got)
		}
	})

	t.Run("does not deliver to other event names", func(t *testing.T) {
		bus := NewBus()
		fired := false

		bus.Subscribe("a", func(interface{}) { fired = true })
		bus.Emit("b", nil)

		if fired {
			t.Error("subscriber for a fired on b")
		}
	})

	t.Run("cancel stops delivery", func(t *testing.T) {
		bus := NewBus()
		count := 0

		sub := bus.Subscribe("ev", func(interface{}) { count++ })
		bus.Emit("ev", nil)
		sub.Cancel()
		bus.Emit("ev", nil)

		if count != 1 {
			t.Errorf("expected 1 delivery, got %d", count)
		}
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		bus := NewBus()
		sub := bus.Subscribe("ev", func(interface{}) {})
		sub.Cancel()
		sub.Cancel() // must not panic
	})

	t.Run("handler can cancel its own subscription during delivery", func(t *testing.T) {
		bus := NewBus()
		count := 0

		var sub *Subscription
		sub = bus.Subscribe("ev", func(interface{}) {
			count++
			sub.Cancel()
		})
		bus.Emit("ev", nil)
		bus.Emit("ev", nil)

		if count != 1 {
			t.Errorf("expected 1 delivery, got %d", count)
		}
	})

	t.Run("handler can cancel a later subscription during delivery", func(t *testing.T) {
		bus := NewBus()
		fired := false

		var second *Subscription
		bus.Subscribe("ev", func(interface{}) { second.Cancel() })
		second = bus.Subscribe("ev", func(interface{}) { fired = true })
		bus.Emit("ev", nil)

		if fired {
			t.Error("cancelled subscription still fired")
		}
	})
}
