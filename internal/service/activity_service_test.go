package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"pdf-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	nopLogger
	mu      sync.Mutex
	entries []map[string]interface{}
}

func (l *recordingLogger) Info(_, _ string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, details)
}

func (l *recordingLogger) snapshot() []map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]map[string]interface{}, len(l.entries))
	copy(out, l.entries)
	return out
}

func TestActivityEventsReachTheConsumer(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	log := &recordingLogger{}

	consumer := NewActivityService(pubSub, "TEST_ACTIVITY", log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("TEST_ACTIVITY", pubSub)
	require.NoError(t, publisher.Publish(ctx, events.NewChatMessageCreated("chat-1", "msg-1")))

	require.Eventually(t, func() bool {
		return len(log.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	entry := log.snapshot()[0]
	assert.Equal(t, events.TypeChatMessageCreated, entry["event"])
	assert.Equal(t, "chat-1", entry["chat_id"])
	assert.Equal(t, "msg-1", entry["message_id"])
}

func TestActivityConsumerFlattensEventData(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	log := &recordingLogger{}

	consumer := NewActivityService(pubSub, "TEST_ACTIVITY", log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("TEST_ACTIVITY", pubSub)
	require.NoError(t, publisher.Publish(ctx, events.NewFilesUploaded("chat-1", 2, 1024)))

	require.Eventually(t, func() bool {
		return len(log.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	entry := log.snapshot()[0]
	assert.Equal(t, events.TypeFilesUploaded, entry["event"])
	assert.Equal(t, float64(2), entry["count"])
	assert.Equal(t, float64(1024), entry["total_bytes"])
}

func TestPublishedPayloadShape(t *testing.T) {
	event := events.NewSessionReset("", true)

	payload, err := json.Marshal(map[string]interface{}{
		"type":        event.EventType(),
		"data":        event.Payload(),
		"occurred_at": event.Timestamp(),
	})
	require.NoError(t, err)

	var decoded struct {
		Type string                 `json:"type"`
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, events.TypeSessionReset, decoded.Type)
	assert.Equal(t, true, decoded.Data["full"])
	_, hasChatId := decoded.Data["chat_id"]
	assert.False(t, hasChatId, "a full reset carries no chat_id")
}
