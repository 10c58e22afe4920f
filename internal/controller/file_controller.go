package controller

import (
	"pdf-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type fileController struct {
	fileService service.IFileService
}

func NewFileController(fileService service.IFileService) IFileController {
	return &fileController{
		fileService: fileService,
	}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", c.Upload)
	r.Get("/files", c.List)
	r.Delete("/files/:file_id", c.Delete)
	r.Delete("/files", c.Clear)
}

func (c *fileController) Upload(ctx *fiber.Ctx) error {
	chatId := ctx.Query("chat_id")
	if chatId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "chat_id is required")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No files provided")
	}

	res, err := c.fileService.Upload(ctx.Context(), chatId, form.File["files"])
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *fileController) List(ctx *fiber.Ctx) error {
	chatId := ctx.Query("chat_id")
	if chatId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "chat_id is required")
	}

	res, err := c.fileService.GetFiles(ctx.Context(), chatId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *fileController) Delete(ctx *fiber.Ctx) error {
	chatId := ctx.Query("chat_id")
	if chatId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "chat_id is required")
	}

	res, err := c.fileService.DeleteFile(ctx.Context(), chatId, ctx.Params("file_id"))
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *fileController) Clear(ctx *fiber.Ctx) error {
	chatId := ctx.Query("chat_id")
	if chatId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "chat_id is required")
	}

	res, err := c.fileService.ClearFiles(ctx.Context(), chatId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
