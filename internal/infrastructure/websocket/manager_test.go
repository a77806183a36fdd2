package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendToUserDeliversEvent(t *testing.T) {
	m := NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	client := &Client{UserID: "user-1", Send: make(chan []byte, 8)}
	m.Register <- client

	// Registration completes on the manager goroutine.
	require.Eventually(t, func() bool {
		m.SendToUser("user-1", Event{Type: "new_message", ChatID: "chat-1"})
		select {
		case raw := <-client.Send:
			var got Event
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, "new_message", got.Type)
			assert.Equal(t, "chat-1", got.ChatID)
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestSendToUnknownUserIsDropped(t *testing.T) {
	m := NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	m.SendToUser("nobody", Event{Type: "new_message"})
}

func TestSendDuringReconnectStorm(t *testing.T) {
	m := NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	// Each registration replaces the previous connection and closes its
	// send channel. Concurrent sends must never hit a closed channel.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			m.Register <- &Client{UserID: "user-1", Send: make(chan []byte, 1)}
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
			m.SendToUser("user-1", Event{Type: "new_message", ChatID: "chat-1"})
		}
	}
}
