package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"famick/internal/http/middleware"
	"famick/internal/model"
	"famick/internal/service"
)

type createListRequest struct {
	Name string `json:"name"`
}

type setDoneRequest struct {
	Done bool `json:"done"`
}

type startSessionRequest struct {
	ListID   string `json:"list_id"`
	DeviceID string `json:"device_id"`
}

type syncRequest struct {
	SessionID  string                   `json:"session_id"`
	Operations []model.OfflineOperation `json:"operations"`
}

// CreateShoppingList stores a new shopping list.
func CreateShoppingList(svc service.ShoppingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createListRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		list, err := svc.CreateList(c.UserContext(), middleware.TenantFromCtx(c), req.Name)
		if err != nil {
			if errors.Is(err, service.ErrNameRequired) {
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(list)
	}
}

// ListShoppingLists returns the tenant's shopping lists.
func ListShoppingLists(svc service.ShoppingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lists, err := svc.Lists(c.UserContext(), middleware.TenantFromCtx(c))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": lists})
	}
}

// AddShoppingItem puts an item on a list.
func AddShoppingItem(svc service.ShoppingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item model.ShoppingListItem
		if err := c.BodyParser(&item); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		item.ListID = c.Params("id")

		stored, err := svc.AddItem(c.UserContext(), middleware.TenantFromCtx(c), &item)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "shopping list not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(stored)
	}
}

// ListShoppingItems returns the items on a list.
func ListShoppingItems(svc service.ShoppingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Items(c.UserContext(), middleware.TenantFromCtx(c), c.Params("id"))
		if err != nil {
			if errors.Is(err, service.ErrIDRequired) {
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// SetShoppingItemDone flips the done flag on one item.
func SetShoppingItemDone(svc service.ShoppingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req setDoneRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		err := svc.SetItemDone(c.UserContext(), middleware.TenantFromCtx(c), c.Params("id"), req.Done)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "item not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// StartShoppingSession opens a Shopping Mode session for a device.
func StartShoppingSession(svc service.ShoppingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req startSessionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		sess, err := svc.StartSession(c.UserContext(), middleware.TenantFromCtx(c), req.ListID, req.DeviceID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "shopping list not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(sess)
	}
}

// GetShoppingSession returns one session.
func GetShoppingSession(svc service.ShoppingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := svc.Session(c.UserContext(), middleware.TenantFromCtx(c), c.Params("id"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "session not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(sess)
	}
}

// SyncShoppingSession replays a device's queued offline operations.
func SyncShoppingSession(svc service.ShoppingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req syncRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.Sync(c.UserContext(), middleware.TenantFromCtx(c), req.SessionID, req.Operations)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "session not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(res)
	}
}

// WidgetItems returns the compact open-item feed for the home screen widget.
func WidgetItems(svc service.ShoppingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "5"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}

		items, err := svc.WidgetItems(c.UserContext(), middleware.TenantFromCtx(c), limit)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": items})
	}
}
