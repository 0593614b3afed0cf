package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger checks connectivity of the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness/readiness endpoints.
type HealthHandler struct {
	serviceName string
	version     string
	store       Pinger
}

// NewHealthHandler returns a new handler instance. A nil pinger (memory
// backend) is always considered ready.
func NewHealthHandler(serviceName, version string, store Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, store: store}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking the blob store backend.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "blob store unavailable: " + err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{"status": "ready"})
}
