package events

import (
	"testing"
	"time"
)

func TestBusPublishToSubscribers(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe()
	b := bus.Subscribe()

	bus.Publish(Event{Type: EventSessionReset, Timestamp: time.Now()})

	for name, ch := range map[string]<-chan Event{"a": a, "b": b} {
		select {
		case evt := <-ch:
			if evt.Type != EventSessionReset {
				t.Errorf("%s: type = %q", name, evt.Type)
			}
		default:
			t.Errorf("%s: no event delivered", name)
		}
	}
}

func TestBusCloseClosesChannels(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()
	bus.Close()

	if _, ok := <-ch; ok {
		t.Error("channel should be closed")
	}
	// Close 后的 Publish/Close 都是空操作。
	bus.Publish(Event{Type: EventSessionReset})
	bus.Close()

	if _, ok := <-bus.Subscribe(); ok {
		t.Error("subscribing after close should return a closed channel")
	}
}

func TestBusDropsWhenSubscriberFull(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()
	for i := 0; i < 200; i++ {
		bus.Publish(Event{Type: EventCellOutput})
	}
	// 不阻塞即通过；缓冲之外的事件被丢弃。
	if len(ch) != cap(ch) {
		t.Errorf("buffered = %d, want full buffer %d", len(ch), cap(ch))
	}
}
