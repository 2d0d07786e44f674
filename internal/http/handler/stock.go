package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"famick/internal/http/middleware"
	"famick/internal/model"
	"famick/internal/service"
)

type consumeRequest struct {
	ProductID string  `json:"product_id"`
	Amount    float64 `json:"amount"`
}

// AddStock stores a new stock entry.
func AddStock(svc service.StockService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var e model.StockEntry
		if err := c.BodyParser(&e); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		stored, err := svc.Add(c.UserContext(), middleware.TenantFromCtx(c), &e)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrAmountInvalid):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(stored)
	}
}

// ListStock returns all stock entries in first-expired-first-out order.
func ListStock(svc service.StockService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		views, err := svc.List(c.UserContext(), middleware.TenantFromCtx(c))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": views})
	}
}

// ConsumeStock takes an amount of a product out of stock, earliest expiry first.
func ConsumeStock(svc service.StockService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req consumeRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.Consume(c.UserContext(), middleware.TenantFromCtx(c), req.ProductID, req.Amount)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrAmountInvalid):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			case errors.Is(err, service.ErrOutOfStock):
				return writeError(c, fiber.StatusConflict, "OUT_OF_STOCK", "no stock to consume")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(res)
	}
}

// ExpiringStock returns entries expired or expiring within the next seven days.
func ExpiringStock(svc service.StockService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		views, err := svc.Expiring(c.UserContext(), middleware.TenantFromCtx(c))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": views})
	}
}

// RemoveStock deletes one stock entry by ID.
func RemoveStock(svc service.StockService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Remove(c.UserContext(), middleware.TenantFromCtx(c), id); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
