package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"famick/internal/http/middleware"
	"famick/internal/service"
)

// CreateTransfer snapshots the tenant's data into a new transfer session.
func CreateTransfer(svc service.TransferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := svc.Create(c.UserContext(), middleware.TenantFromCtx(c))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(sess)
	}
}

// RunTransfer pushes every pending item of a session to the cloud.
func RunTransfer(svc service.TransferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		status, err := svc.Run(c.UserContext(), middleware.TenantFromCtx(c), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "transfer session not found")
			case errors.Is(err, service.ErrSessionNotRunnable):
				return writeError(c, fiber.StatusConflict, "NOT_RUNNABLE", "transfer session is not runnable")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(status)
	}
}

// GetTransferStatus returns a session together with its item logs.
func GetTransferStatus(svc service.TransferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		status, err := svc.Status(c.UserContext(), middleware.TenantFromCtx(c), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "transfer session not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(status)
	}
}
