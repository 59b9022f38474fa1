package ecs

import (
	"sync"
	"testing"
)

func TestEventQueueDrainIsFIFO(t *testing.T) {
	var q EventQueue
	for _, typ := range []string{"a", "b", "c"} {
		q.Push(Event{Type: typ})
	}
	if q.Len() != 3 {
		t.Fatalf("expected 3 queued, got %d", q.Len())
	}
	got := q.Drain()
	if len(got) != 3 || got[0].Type != "a" || got[2].Type != "c" {
		t.Fatalf("unexpected drain order %v", got)
	}
	if q.Len() != 0 || len(q.Drain()) != 0 {
		t.Fatal("queue not empty after drain")
	}
}

func TestEventQueueConcurrentPush(t *testing.T) {
	var q EventQueue
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(Event{Type: "tick"})
			}
		}()
	}
	wg.Wait()
	if n := len(q.Drain()); n != 800 {
		t.Fatalf("expected 800 events, got %d", n)
	}
}
