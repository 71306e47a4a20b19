package events

import "sync"

// Bus 是内核会话事件的简单发布/订阅通道。
// 订阅者消费不及时时事件被丢弃而不是阻塞发布方（UI 整体重绘，
// 丢失中间帧无害）。
type Bus struct {
	mu     sync.Mutex
	subs   []chan Event
	closed bool
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe 返回一个事件通道；Bus 关闭后返回已关闭的通道。
func (b *Bus) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}
	ch := make(chan Event, 64)
	b.subs = append(b.subs, ch)
	return ch
}

// Publish 向所有订阅者广播事件，满载的订阅者被跳过。
func (b *Bus) Publish(evt Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Close 关闭所有订阅通道，后续 Publish 为空操作。
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		close(ch)
	}
	b.closed = true
}
