package controller

import (
	"pdf-chat-be/internal/dto"
	"pdf-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISystemController interface {
	RegisterRoutes(app fiber.Router, api fiber.Router)
	Root(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type systemController struct {
	chatService service.IChatService
}

func NewSystemController(chatService service.IChatService) ISystemController {
	return &systemController{
		chatService: chatService,
	}
}

// RegisterRoutes puts the liveness endpoints at the app root and the status
// snapshot under /api with everything else.
func (c *systemController) RegisterRoutes(app fiber.Router, api fiber.Router) {
	app.Get("/", c.Root)
	app.Get("/health", c.Health)
	api.Get("/status", c.Status)
}

func (c *systemController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.RootResponse{
		Message: "Backend API",
		Version: "1.0.0",
	})
}

func (c *systemController) Status(ctx *fiber.Ctx) error {
	res, err := c.chatService.Status(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *systemController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.chatService.Health(ctx.Context()))
}
