package events

import (
	"testing"
	"time"
)

func TestPublishReachesSubscribers(t *testing.T) {
	hub := NewHub(nil)
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(Event{Entity: "property", Action: "created", ID: "p1"})

	select {
	case ev := <-ch:
		if ev.Entity != "property" || ev.Action != "created" || ev.ID != "p1" {
			t.Errorf("unexpected event %+v", ev)
		}
		if ev.At.IsZero() {
			t.Errorf("timestamp should be stamped on publish")
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub(nil)
	_, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// Overflow the subscriber buffer; Publish must never block.
		for i := 0; i < 100; i++ {
			hub.Publish(Event{Entity: "receipt", Action: "created"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	hub := NewHub(nil)
	ch, cancel := hub.Subscribe()
	cancel()
	cancel() // safe to call twice

	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after cancel")
	}

	// Publishing after cancel must not panic.
	hub.Publish(Event{Entity: "rental", Action: "deleted", ID: "r1"})
}
