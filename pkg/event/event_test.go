package event_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/maison/pkg/event"
)

func TestFireSynchronous(t *testing.T) {
	defer event.Flush()

	var got atomic.Int32
	event.Listen("stock.changed", func(payload interface{}) {
		if payload == "p1" {
			got.Add(1)
		}
	})
	event.Listen("stock.changed", func(interface{}) { got.Add(1) })

	event.Fire("stock.changed", "p1")
	if got.Load() != 2 {
		t.Fatalf("expected both listeners to run, got %d", got.Load())
	}
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	defer event.Flush()
	event.Fire("nobody.listens", nil)
}

func TestFireAsync(t *testing.T) {
	defer event.Flush()

	var wg sync.WaitGroup
	wg.Add(1)
	event.Listen("order.placed", func(interface{}) { wg.Done() })

	event.FireAsync("order.placed", nil)

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("async listener never ran")
	}
}

func TestFlushRemovesListeners(t *testing.T) {
	var called atomic.Bool
	event.Listen("stock.changed", func(interface{}) { called.Store(true) })
	event.Flush()

	event.Fire("stock.changed", nil)
	if called.Load() {
		t.Fatal("listener survived Flush")
	}
}
