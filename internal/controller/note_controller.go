package controller

import (
	"notedeck-be/internal/dto"
	"notedeck-be/internal/pkg/serverutils"
	"notedeck-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	collectionService service.ICollectionService
}

func NewNoteController(collectionService service.ICollectionService) INoteController {
	return &noteController{
		collectionService: collectionService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func ownerFromCtx(ctx *fiber.Ctx) uuid.UUID {
	ownerStr, _ := ctx.Locals("user_id").(string)
	ownerId, _ := uuid.Parse(ownerStr)
	return ownerId
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	ownerId := ownerFromCtx(ctx)

	var req dto.CreateNoteRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	res, err := c.collectionService.Create(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	ownerId := ownerFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid note id")
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.collectionService.Update(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	ownerId := ownerFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid note id")
	}

	// Destructive-action gate: the client passes confirm=true only after
	// the user accepted the confirmation prompt.
	confirmed := ctx.QueryBool("confirm", false)

	if err := c.collectionService.Delete(ctx.Context(), ownerId, id, confirmed); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}
