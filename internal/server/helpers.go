// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"

	"daybook/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed skip/limit query parameters.
type Pagination struct {
	Skip  int
	Limit int
}

const (
	maxPaginationLimit = 100
)

// parsePagination extracts skip and limit query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	skip := c.QueryInt("skip", 0)
	if skip < 0 {
		skip = 0
	}

	return Pagination{
		Skip:  skip,
		Limit: limit,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// mapServiceError translates an error from the service or repository layer
// into the HTTP status the standard error envelope should carry.
func mapServiceError(err error) int {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound
	}

	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}

	switch appErr.Code {
	case models.CodeValidation, models.CodeWeakPassword, models.CodeImmutableField:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized, models.CodeInvalidCredentials:
		return fiber.StatusUnauthorized
	case models.CodeForbidden:
		return fiber.StatusForbidden
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeUsernameTaken, models.CodeEmailTaken:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
