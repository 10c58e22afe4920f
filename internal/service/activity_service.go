package service

import (
	"context"
	"encoding/json"
	"time"

	"pdf-chat-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IActivityService consumes chat activity events in the background and writes
// them to the isolated activity log.
type IActivityService interface {
	Consume(ctx context.Context) error
}

type activityService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewActivityService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IActivityService {
	return &activityService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

func (s *activityService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *activityService) processMessage(msg *message.Message) {
	var payload struct {
		Type       string                 `json:"type"`
		Data       map[string]interface{} `json:"data"`
		OccurredAt time.Time              `json:"occurred_at"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("Activity", "Failed to unmarshal activity event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	details := map[string]interface{}{
		"event":       payload.Type,
		"occurred_at": payload.OccurredAt,
	}
	for k, v := range payload.Data {
		details[k] = v
	}
	s.logger.Info("Activity", "Chat activity", details)

	msg.Ack()
}
