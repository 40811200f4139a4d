package handler

import (
	"errors"

	"github.com/fekuna/ammodeals-service/pkg/logger"
	"github.com/fekuna/ammodeals-service/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewFiberApp builds the HTTP server with recovery, access logging and the
// listing routes mounted.
func NewFiberApp(h *ListingHandler, log logger.ZapLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "ammodeals",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))

	h.RegisterRoutes(app)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	kind := "internal_error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
		if code == fiber.StatusNotFound {
			kind = "not_found"
		}
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   kind,
		Message: message,
	})
}
