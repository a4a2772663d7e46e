package observe

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishInSubscriptionOrder(t *testing.T) {
	h := NewHub[int]()
	var got []string

	h.Subscribe(func(v int) { got = append(got, "first") })
	h.Subscribe(func(v int) { got = append(got, "second") })
	h.Subscribe(func(v int) { got = append(got, "third") })

	h.Publish(1)
	assert.Equal(t, []string{"first", "second", "third"}, got)
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	h := NewHub[string]()
	calls := 0
	unsub := h.Subscribe(func(string) { calls++ })

	h.Publish("a")
	unsub()
	unsub()
	h.Publish("b")

	assert.Equal(t, 1, calls)
	assert.Zero(t, h.Len())
}

func TestHub_SubscriberMayUnsubscribeDuringPublish(t *testing.T) {
	h := NewHub[int]()
	calls := 0

	var unsub func()
	unsub = h.Subscribe(func(int) {
		calls++
		unsub()
	})

	require.NotPanics(t, func() { h.Publish(1) })
	h.Publish(2)
	assert.Equal(t, 1, calls)
}

func TestHub_Close(t *testing.T) {
	h := NewHub[int]()
	h.Subscribe(func(int) { t.Fatalf("must not be called after Close") })
	h.Close()
	h.Publish(1)
	assert.Zero(t, h.Len())
}

func TestHub_ConcurrentSubscribePublish(t *testing.T) {
	h := NewHub[int]()
	var wg sync.WaitGroup
	var mu sync.Mutex
	total := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := h.Subscribe(func(v int) {
				mu.Lock()
				total += v
				mu.Unlock()
			})
			h.Publish(1)
			unsub()
		}()
	}
	wg.Wait()

	assert.Zero(t, h.Len())
	assert.GreaterOrEqual(t, total, 20)
}
