package feed

import (
	"encoding/json"
	"testing"

	"nationsim/internal/domain/nation"
)

func TestPublishFansOut(t *testing.T) {
	h := NewHub()
	c1 := &client{send: make(chan []byte, 4)}
	c2 := &client{send: make(chan []byte, 4)}
	h.register(c1)
	h.register(c2)

	h.Publish(nation.WorldEvent{ID: "e1", Type: nation.EventEpochEnd, Message: "tick"})

	for _, c := range []*client{c1, c2} {
		payload := <-c.send
		var evt nation.WorldEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if evt.ID != "e1" {
			t.Fatalf("unexpected event: %+v", evt)
		}
	}
}

func TestPublishDropsSlowSubscribers(t *testing.T) {
	h := NewHub()
	slow := &client{send: make(chan []byte, 1)}
	h.register(slow)

	h.Publish(nation.WorldEvent{ID: "e1"})
	h.Publish(nation.WorldEvent{ID: "e2"})

	if got := h.Subscribers(); got != 0 {
		t.Fatalf("expected the stalled subscriber dropped, got %d", got)
	}
	if _, open := <-slow.send; !open {
		t.Fatalf("expected the buffered event before close")
	}
	if _, open := <-slow.send; open {
		t.Fatalf("expected channel closed after drop")
	}
}

func TestUnregisterIsIdempotent(t *testing.T) {
	h := NewHub()
	c := &client{send: make(chan []byte, 1)}
	h.register(c)
	h.unregister(c)
	h.unregister(c)
	if got := h.Subscribers(); got != 0 {
		t.Fatalf("expected no subscribers, got %d", got)
	}
}
