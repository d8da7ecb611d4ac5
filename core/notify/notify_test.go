package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("log publisher without url", func(t *testing.T) {
		pub, err := New(Config{}, nil)
		require.NoError(t, err)
		assert.IsType(t, &LogPublisher{}, pub)
		assert.NoError(t, pub.Close())
	})

	t.Run("redis publisher with url", func(t *testing.T) {
		mr := miniredis.RunT(t)
		pub, err := New(Config{RedisURL: fmt.Sprintf("redis://%s", mr.Addr())}, nil)
		require.NoError(t, err)
		defer pub.Close()

		rp, ok := pub.(*RedisPublisher)
		require.True(t, ok)
		assert.Equal(t, "trolley.recompute", rp.Channel())
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := New(Config{RedisURL: "invalid://url"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse Redis URL")
	})

	t.Run("connection failure", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := New(Config{RedisURL: fmt.Sprintf("redis://%s", addr), TimeoutSeconds: 1}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to Redis")
	})
}

func TestRedisPublisher_Publish(t *testing.T) {
	mr := miniredis.RunT(t)
	pub, err := NewRedisPublisher(Config{RedisURL: fmt.Sprintf("redis://%s", mr.Addr()), Channel: "events"}, zap.NewNop())
	require.NoError(t, err)
	defer pub.Close()

	sub := pub.client.Subscribe(context.Background(), "events")
	defer sub.Close()
	_, err = sub.Receive(context.Background())
	require.NoError(t, err)

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, pub.Publish(context.Background(), Event{Key: "a", Name: "Item A", Result: 2000, Status: StatusCompleted, At: at}))

	select {
	case msg := <-sub.Channel():
		var got Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, "a", got.Key)
		assert.Equal(t, 2000, got.Result)
		assert.Equal(t, StatusCompleted, got.Status)
		assert.True(t, at.Equal(got.At))
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	pub := NewLogPublisher(zap.New(core))

	require.NoError(t, pub.Publish(context.Background(), Event{Key: "a", Status: StatusFailed, Error: "boom"}))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Recompute event", entry.Message)
	assert.Equal(t, "boom", entry.ContextMap()["error"])
}
