// Package bus is the process-global topic pub/sub carrying game events to
// subscribers. Publishers never block: each subscriber owns a bounded buffer
// and the oldest queued events are dropped on overflow. Tick payloads carry
// monotonic tick numbers, so a dropped event shows up as a detectable gap.
package bus

import (
	"context"
	"sync"
)

// DefaultBufferSize is the per-subscriber queue depth.
const DefaultBufferSize = 64

// Bus fans messages out per topic.
type Bus[T any] struct {
	mu      sync.RWMutex
	subs    map[string][]*subscriber[T]
	bufSize int
}

type subscriber[T any] struct {
	ch chan T
}

// New returns a bus with the given per-subscriber buffer size; sizes below 1
// fall back to DefaultBufferSize.
func New[T any](bufSize int) *Bus[T] {
	if bufSize < 1 {
		bufSize = DefaultBufferSize
	}
	return &Bus[T]{
		subs:    make(map[string][]*subscriber[T]),
		bufSize: bufSize,
	}
}

// Publish delivers msg to every current subscriber of topic without ever
// blocking. A full subscriber queue sheds its oldest entry to make room.
func (b *Bus[T]) Publish(topic string, msg T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs[topic] {
		for {
			select {
			case sub.ch <- msg:
			default:
				select {
				case <-sub.ch:
				default:
				}
				continue
			}
			break
		}
	}
}

// Subscribe registers a consumer on topic. The returned channel yields
// messages in publish order until ctx fires, then closes. Messages published
// before the call are not replayed.
func (b *Bus[T]) Subscribe(ctx context.Context, topic string) <-chan T {
	sub := &subscriber[T]{ch: make(chan T, b.bufSize)}

	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], sub)
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.remove(topic, sub)
		// Removal under the write lock means no publisher still holds a
		// reference; closing here cannot race a send.
		close(sub.ch)
	}()

	return sub.ch
}

// SubscriberCount reports the current consumer count on a topic.
func (b *Bus[T]) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

func (b *Bus[T]) remove(topic string, sub *subscriber[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[topic]
	for i, s := range list {
		if s == sub {
			b.subs[topic] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}
