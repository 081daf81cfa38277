package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestUserRoom(t *testing.T) {
	assert.Equal(t, "user_42", UserRoom("42"))
}

func TestHub_PublishToRoom(t *testing.T) {
	hub := NewHub(nil)
	a := hub.Subscribe(UserRoom("alice"))
	b := hub.Subscribe(UserRoom("bob"))
	defer a.Close()
	defer b.Close()

	delivered := hub.Publish(UserRoom("alice"), "chatbot_response", map[string]string{"message": "hi"})
	assert.Equal(t, 1, delivered)

	event := <-a.Events()
	assert.Equal(t, "chatbot_response", event.Type)
	assert.Equal(t, map[string]string{"message": "hi"}, event.Data)
	assert.False(t, event.Timestamp.IsZero())

	select {
	case e := <-b.Events():
		t.Fatalf("bob received an event for alice: %+v", e)
	default:
	}
}

func TestHub_PublishToUserReachesEverySubscription(t *testing.T) {
	hub := NewHub(nil)
	first := hub.Subscribe(UserRoom("alice"))
	second := hub.Subscribe(UserRoom("alice"))
	defer first.Close()
	defer second.Close()
	require.Equal(t, 2, hub.Subscribers(UserRoom("alice")))

	hub.PublishToUser("alice", "analysis_completed", 87)

	assert.Equal(t, 87, (<-first.Events()).Data)
	assert.Equal(t, 87, (<-second.Events()).Data)
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	hub := NewHub(nil)
	assert.Zero(t, hub.Publish("user_nobody", "x", nil))
}

func TestHub_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	hub := NewHub(zap.New(core))
	sub := hub.Subscribe("room")
	defer sub.Close()

	for i := 0; i < subscriberBuffer+3; i++ {
		hub.Publish("room", "tick", i)
	}

	assert.Equal(t, int64(3), hub.Dropped())
	assert.Equal(t, 3, logs.FilterMessage("subscriber queue full, event dropped").Len())
	assert.Len(t, sub.Events(), subscriberBuffer)
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	hub := NewHub(nil)
	sub := hub.Subscribe("room")

	sub.Close()
	sub.Close()

	_, open := <-sub.Events()
	assert.False(t, open)
	assert.Zero(t, hub.Subscribers("room"))
	assert.Zero(t, hub.Publish("room", "x", nil))
}

func TestHub_ConcurrentPublishAndClose(t *testing.T) {
	hub := NewHub(nil)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		sub := hub.Subscribe("room")
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				hub.Publish("room", "tick", j)
			}
		}()
		go func() {
			defer wg.Done()
			sub.Close()
		}()
	}
	wg.Wait()
	assert.Zero(t, hub.Subscribers("room"))
}
