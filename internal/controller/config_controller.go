package controller

import (
	"notesync-be/internal/dto"
	"notesync-be/internal/pkg/serverutils"
	"notesync-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConfigController interface {
	RegisterRoutes(r fiber.Router)
	Connect(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type configController struct {
	configService service.IConfigService
}

func NewConfigController(configService service.IConfigService) IConfigController {
	return &configController{configService: configService}
}

func (c *configController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/config/v1")
	h.Post("remote", c.Connect)
	h.Get("status", c.Status)
}

func (c *configController) Connect(ctx *fiber.Ctx) error {
	var req dto.ConnectRemoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.configService.Connect(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Remote store connected", c.configService.Status()))
}

func (c *configController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get status", c.configService.Status()))
}
