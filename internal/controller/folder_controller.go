package controller

import (
	"notesync-be/internal/pkg/serverutils"
	"notesync-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFolderController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type folderController struct {
	noteService service.INoteService
}

func NewFolderController(noteService service.INoteService) IFolderController {
	return &folderController{noteService: noteService}
}

func (c *folderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/folder/v1")
	h.Get("", c.List)
}

func (c *folderController) List(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list folders", c.noteService.Folders()))
}
