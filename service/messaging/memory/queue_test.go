package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type TestPayload struct {
	ID    string
	Count int
}

func TestQueue(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx := context.Background()

	assert.True(t, queue.IsEmpty())
	assert.Equal(t, 5, queue.Capacity())

	for i := 0; i < 3; i++ {
		err := queue.Publish(ctx, &TestPayload{ID: fmt.Sprintf("m%d", i), Count: i})
		assert.NoError(t, err)
	}
	assert.Equal(t, 3, queue.Size())
	assert.False(t, queue.IsEmpty())

	for i := 0; i < 3; i++ {
		message, err := queue.Consume(ctx)
		assert.NoError(t, err)
		if assert.NotNil(t, message) {
			assert.Equal(t, i, message.Count, "messages are consumed in insertion order")
		}
	}
	assert.True(t, queue.IsEmpty())
}

func TestQueue_DefaultCapacity(t *testing.T) {
	var testCases = []struct {
		name     string
		config   Config
		expected int
	}{
		{name: "zero", config: Config{}, expected: 5},
		{name: "negative", config: Config{Capacity: -3}, expected: 5},
		{name: "explicit", config: Config{Capacity: 1}, expected: 1},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, NewQueue[int](testCase.config).Capacity())
		})
	}
}

func TestQueue_WrapAround(t *testing.T) {
	queue := NewQueue[int](Config{Capacity: 2})
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		v := i
		assert.NoError(t, queue.Publish(ctx, &v))
		got, err := queue.Consume(ctx)
		assert.NoError(t, err)
		assert.Equal(t, i, *got)
	}
	assert.Equal(t, 0, queue.Size())
}

func TestQueue_PublishBlocksWhenFull(t *testing.T) {
	queue := NewQueue[int](Config{Capacity: 1})
	ctx := context.Background()
	first, second := 1, 2
	assert.NoError(t, queue.Publish(ctx, &first))

	var published int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = queue.Publish(ctx, &second)
		atomic.StoreInt32(&published, 1)
	}()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&published), "second publish must wait for a free slot")
	assert.Equal(t, 1, queue.Size())

	got, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, *got)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish did not resume after consume")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&published))

	got, err = queue.Consume(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, *got)
}

func TestQueueConcurrency(t *testing.T) {
	queue := NewQueue[TestPayload](Config{Capacity: 3})
	ctx := context.Background()
	producers := 4
	messagesPerProducer := 25

	var wg sync.WaitGroup
	seen := make(map[string]bool)
	var seenMu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < producers*messagesPerProducer; i++ {
			message, err := queue.Consume(ctx)
			if err != nil {
				t.Errorf("Error consuming: %v", err)
				return
			}
			seenMu.Lock()
			seen[message.ID] = true
			seenMu.Unlock()
		}
	}()

	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(producerID int) {
			defer wg.Done()
			for j := 0; j < messagesPerProducer; j++ {
				payload := TestPayload{ID: fmt.Sprintf("p%d-m%d", producerID, j), Count: j}
				if err := queue.Publish(ctx, &payload); err != nil {
					t.Errorf("Error publishing: %v", err)
				}
				if size := queue.Size(); size > queue.Capacity() {
					t.Errorf("size %d exceeds capacity", size)
				}
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out")
	}

	assert.Len(t, seen, producers*messagesPerProducer)
	assert.Equal(t, 0, queue.Size())
}

func TestQueueContextCancellation(t *testing.T) {
	queue := NewQueue[TestPayload](Config{Capacity: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	payload := TestPayload{ID: "test"}
	assert.Error(t, queue.Publish(ctx, &payload))
	assert.Equal(t, 0, queue.Size())

	timeoutCtx, cancelTimeout := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelTimeout()
	_, err := queue.Consume(timeoutCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// a full queue rejects a timed out publish without losing the queued item
	assert.NoError(t, queue.Publish(context.Background(), &payload))
	fullCtx, cancelFull := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelFull()
	assert.Error(t, queue.Publish(fullCtx, &TestPayload{ID: "overflow"}))
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "test", message.ID)
}
