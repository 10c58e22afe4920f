package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(nopLogger{})
	go hub.Run()

	first := &ChatSession{}
	second := &ChatSession{}

	hub.register <- first
	hub.register <- second
	require.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 5*time.Millisecond)

	hub.unregister <- first
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	// Unregistering an absent session is a no-op.
	hub.unregister <- first
	hub.unregister <- second
	require.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 0, hub.Count())
}
