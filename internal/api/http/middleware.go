package http

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/spec-kit/gift-registry/internal/config"
	"github.com/spec-kit/gift-registry/internal/observability"
	apperrors "github.com/spec-kit/gift-registry/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as CORS, error
// handling and request logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration, corsCfg config.CORSConfig) {
	app.Use(corsMiddleware(corsCfg))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func corsMiddleware(cfg config.CORSConfig) fiber.Handler {
	return cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return originAllowed(origin, cfg.AllowedOrigins)
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type, Authorization",
		AllowCredentials: true,
	})
}

// originAllowed matches an origin against the configured list, where a
// leading "*." in the host matches any subdomain.
func originAllowed(origin string, allowed []string) bool {
	for _, pattern := range allowed {
		if !strings.Contains(pattern, "*") {
			if origin == pattern {
				return true
			}
			continue
		}
		scheme, host, found := strings.Cut(pattern, "://")
		if !found {
			continue
		}
		suffix, found := strings.CutPrefix(host, "*.")
		if !found {
			continue
		}
		if strings.HasPrefix(origin, scheme+"://") && strings.HasSuffix(origin, "."+suffix) {
			return true
		}
	}
	return false
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				if metrics != nil {
					metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(fiber.Map{"error": domainErr.Message})
				err = nil
			}
		}()
		return c.Next()
	}
}
