package controller

import (
	"companion-chat-be/internal/pkg/serverutils"
	"companion-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMasteryController interface {
	RegisterRoutes(r fiber.Router)
	GetMine(ctx *fiber.Ctx) error
}

type masteryController struct {
	masteryService service.IMasteryService
}

func NewMasteryController(masteryService service.IMasteryService) IMasteryController {
	return &masteryController{
		masteryService: masteryService,
	}
}

func (c *masteryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mastery/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("me", c.GetMine)
}

func (c *masteryController) GetMine(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.masteryService.GetUserMastery(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get mastery", res))
}
