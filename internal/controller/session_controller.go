package controller

import (
	"notedeck-be/internal/dto"
	"notedeck-be/internal/pkg/serverutils"
	"notedeck-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Load(ctx *fiber.Ctx) error
	View(ctx *fiber.Ctx) error
	Select(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	StartEditing(ctx *fiber.Ctx) error
	StopEditing(ctx *fiber.Ctx) error
}

type sessionController struct {
	collectionService service.ICollectionService
}

func NewSessionController(collectionService service.ICollectionService) ISessionController {
	return &sessionController{
		collectionService: collectionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("load", c.Load)
	h.Get("view", c.View)
	h.Post("select", c.Select)
	h.Put("search", c.Search)
	h.Post("editing/start", c.StartEditing)
	h.Post("editing/stop", c.StopEditing)
}

func (c *sessionController) Load(ctx *fiber.Ctx) error {
	ownerId := ownerFromCtx(ctx)

	res, err := c.collectionService.Load(ctx.Context(), ownerId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success load notes", res))
}

func (c *sessionController) View(ctx *fiber.Ctx) error {
	ownerId := ownerFromCtx(ctx)
	return ctx.JSON(serverutils.SuccessResponse("Success get view", c.collectionService.View(ownerId)))
}

func (c *sessionController) Select(ctx *fiber.Ctx) error {
	ownerId := ownerFromCtx(ctx)

	var req dto.SelectNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.collectionService.Select(ownerId, req.Id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success select note", nil))
}

func (c *sessionController) Search(ctx *fiber.Ctx) error {
	ownerId := ownerFromCtx(ctx)

	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	c.collectionService.SetSearchTerm(ownerId, req.Term)
	return ctx.JSON(serverutils.SuccessResponse[any]("Success set search term", nil))
}

func (c *sessionController) StartEditing(ctx *fiber.Ctx) error {
	ownerId := ownerFromCtx(ctx)

	if err := c.collectionService.StartEditing(ownerId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success start editing", nil))
}

func (c *sessionController) StopEditing(ctx *fiber.Ctx) error {
	ownerId := ownerFromCtx(ctx)

	c.collectionService.StopEditing(ownerId)
	return ctx.JSON(serverutils.SuccessResponse[any]("Success stop editing", nil))
}
