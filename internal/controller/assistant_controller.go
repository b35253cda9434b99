package controller

import (
	"strconv"

	"sushi-ordering-be/internal/dto"
	"sushi-ordering-be/internal/pkg/serverutils"
	"sushi-ordering-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("chat", c.Chat)
	h.Post("ask", c.Ask)
	h.Get("search", c.Search)
	h.Get("status", c.Status)
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ask", res))
}

func (c *assistantController) Search(ctx *fiber.Ctx) error {
	q := ctx.Query("q", "")
	limit, _ := strconv.Atoi(ctx.Query("limit", "5"))
	minSimilarity, _ := strconv.ParseFloat(ctx.Query("min_similarity", "0"), 64)

	res, err := c.assistantService.Search(ctx.Context(), q, limit, minSimilarity)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search menu", res))
}

func (c *assistantController) Status(ctx *fiber.Ctx) error {
	res, err := c.assistantService.Status(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success assistant status", res))
}
