package controller

import (
	"pdf-chat-be/internal/dto"
	"pdf-chat-be/internal/pkg/serverutils"
	"pdf-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Send)
	r.Post("/chat/create", c.Create)
	r.Get("/chat", c.List)
	r.Get("/chat/:chat_id", c.History)
	r.Post("/reset", c.Reset)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	res, err := c.chatService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	chatId := ctx.Params("chat_id")

	res, err := c.chatService.GetHistory(ctx.Context(), chatId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) List(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetAllChats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) Reset(ctx *fiber.Ctx) error {
	// An empty body means a full reset; only parse when one was sent.
	var req dto.ResetRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	res, err := c.chatService.Reset(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
