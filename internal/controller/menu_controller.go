package controller

import (
	"sushi-ordering-be/internal/dto"
	"sushi-ordering-be/internal/pkg/serverutils"
	"sushi-ordering-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMenuController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Replace(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
}

type menuController struct {
	menuService service.IMenuService
}

func NewMenuController(menuService service.IMenuService) IMenuController {
	return &menuController{
		menuService: menuService,
	}
}

func (c *menuController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/menu/v1")
	h.Get("", c.List)
	// Writes are staff-only
	h.Put("", serverutils.JwtMiddleware, c.Replace)
	h.Post("reindex", serverutils.JwtMiddleware, c.Reindex)
}

func (c *menuController) List(ctx *fiber.Ctx) error {
	res, err := c.menuService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list menu", res))
}

func (c *menuController) Replace(ctx *fiber.Ctx) error {
	var req dto.ReplaceMenuRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.menuService.Replace(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success replace menu", res))
}

func (c *menuController) Reindex(ctx *fiber.Ctx) error {
	res, err := c.menuService.Reindex(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reindex menu", res))
}
