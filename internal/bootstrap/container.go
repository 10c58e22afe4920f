package bootstrap

import (
	"time"

	"pdf-chat-be/internal/config"
	"pdf-chat-be/internal/controller"
	"pdf-chat-be/internal/handler"
	"pdf-chat-be/internal/mapper"
	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/internal/repository/memory"
	"pdf-chat-be/internal/service"
	"pdf-chat-be/internal/websocket"
	"pdf-chat-be/pkg/qa"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	ChatController   controller.IChatController
	FileController   controller.IFileController
	SystemController controller.ISystemController

	// WebSocket
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub

	// Background Services (Exposed for main.go to run)
	ActivityService service.IActivityService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	streamLogger := logger.NewIsolatedLogger(cfg.App.StreamLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Storage & Collaborators
	sessionRepo := memory.NewSessionRepository()
	answerer := qa.NewMockProvider(time.Duration(cfg.Chat.AnswerDelayMs) * time.Millisecond)
	chatMapper := mapper.NewChatMapper()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Chat.ActivityTopic, pubSub)
	activityService := service.NewActivityService(pubSub, cfg.Chat.ActivityTopic, streamLogger)

	chatService := service.NewChatService(sessionRepo, answerer, chatMapper, publisherService, sysLogger)
	fileService := service.NewFileService(sessionRepo, chatMapper, publisherService, sysLogger)

	// 5. WebSocket Hub
	wsHub := websocket.NewHub(streamLogger)
	go wsHub.Run()

	streamHandler := handler.NewStreamHandler(
		wsHub,
		chatService,
		streamLogger,
		cfg.Chat.StreamChunkSize,
		time.Duration(cfg.Chat.StreamDelayMs)*time.Millisecond,
	)

	// 6. Controllers
	return &Container{
		ChatController:   controller.NewChatController(chatService),
		FileController:   controller.NewFileController(fileService),
		SystemController: controller.NewSystemController(chatService),

		StreamHandler: streamHandler,
		WebSocketHub:  wsHub,

		ActivityService: activityService,
	}
}
