package bus

import (
	"context"
	"testing"
	"time"
)

func TestPublishSubscribeOrder(t *testing.T) {
	b := New[int](8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx, "t")
	for i := 1; i <= 5; i++ {
		b.Publish("t", i)
	}

	for want := 1; want <= 5; want++ {
		select {
		case got := <-ch:
			if got != want {
				t.Fatalf("received %d, want %d", got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %d", want)
		}
	}
}

func TestNoReplayBeforeSubscribe(t *testing.T) {
	b := New[string](4)
	b.Publish("t", "early")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.Subscribe(ctx, "t")
	b.Publish("t", "late")

	select {
	case got := <-ch:
		if got != "late" {
			t.Fatalf("received %q, want %q", got, "late")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out")
	}
}

func TestTopicIsolation(t *testing.T) {
	b := New[int](4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := b.Subscribe(ctx, "a")
	b.Publish("b", 1)
	b.Publish("a", 2)

	select {
	case got := <-a:
		if got != 2 {
			t.Fatalf("received %d from the wrong topic", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out")
	}
}

// A slow subscriber loses the oldest messages, never the newest, and never
// blocks the publisher.
func TestOverflowDropsOldest(t *testing.T) {
	b := New[int](2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx, "t")
	for i := 1; i <= 4; i++ {
		b.Publish("t", i)
	}

	got := []int{<-ch, <-ch}
	if got[0] != 3 || got[1] != 4 {
		t.Errorf("received %v, want [3 4]", got)
	}
}

func TestFanOut(t *testing.T) {
	b := New[int](4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	one := b.Subscribe(ctx, "t")
	two := b.Subscribe(ctx, "t")
	if n := b.SubscriberCount("t"); n != 2 {
		t.Fatalf("subscribers = %d, want 2", n)
	}

	b.Publish("t", 7)
	for _, ch := range []<-chan int{one, two} {
		select {
		case got := <-ch:
			if got != 7 {
				t.Fatalf("received %d, want 7", got)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out")
		}
	}
}

func TestCancelClosesChannel(t *testing.T) {
	b := New[int](4)
	ctx, cancel := context.WithCancel(context.Background())

	ch := b.Subscribe(ctx, "t")
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("received a value after cancel, want close")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}

	// Publishing after the subscriber left must not panic or block.
	b.Publish("t", 1)
	deadline := time.After(time.Second)
	for b.SubscriberCount("t") != 0 {
		select {
		case <-deadline:
			t.Fatal("subscriber not removed")
		case <-time.After(time.Millisecond):
		}
	}
}
