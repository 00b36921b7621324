package containers

import (
	"errors"
	"testing"
)

func TestRingQueueWrapsAround(t *testing.T) {
	rq := NewRingQueue[int](3)
	for i := 1; i <= 3; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	if err := rq.Enqueue(4); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}

	if v, _ := rq.Dequeue(); v != 1 {
		t.Errorf("expected 1, got %d", v)
	}
	if err := rq.Enqueue(4); err != nil {
		t.Fatalf("expected room after a dequeue, got %v", err)
	}

	for _, want := range []int{2, 3, 4} {
		if v, _ := rq.Peek(); v != want {
			t.Errorf("expected peek %d, got %d", want, v)
		}
		v, err := rq.Dequeue()
		if err != nil || v != want {
			t.Errorf("expected %d, got %d (%v)", want, v, err)
		}
	}
	if !rq.IsEmpty() || rq.Len() != 0 {
		t.Errorf("expected an empty queue, got %d elements", rq.Len())
	}
}

func TestRingQueueEmpty(t *testing.T) {
	rq := NewRingQueue[string](1)
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("expected ErrQueueEmpty, got %v", err)
	}
	if _, err := rq.Peek(); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("expected ErrQueueEmpty, got %v", err)
	}
}
