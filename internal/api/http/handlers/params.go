package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/gift-registry/pkg/util"
)

// queryInt reads a required integer query parameter.
func queryInt(c *fiber.Ctx, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, apperrors.NewValidationError(name + " is required")
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid " + name)
	}
	return val, nil
}

// paramInt reads an integer path parameter.
func paramInt(c *fiber.Ctx, name string) (int, error) {
	val, err := strconv.Atoi(c.Params(name))
	if err != nil {
		return 0, apperrors.NewValidationError("invalid " + name)
	}
	return val, nil
}
