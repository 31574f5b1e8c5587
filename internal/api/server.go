package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// NewApp builds the fiber application serving h.
func NewApp(h *Handler, bodyLimitMB int) *fiber.App {
	if bodyLimitMB <= 0 {
		bodyLimitMB = 32
	}

	app := fiber.New(fiber.Config{
		AppName:               "abo-parser",
		BodyLimit:             bodyLimitMB << 20,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	// Recover from any panics to prevent server crash
	app.Use(recover.New())
	app.Use(requestLogger(h.logger()))

	h.RegisterRoutes(app)
	return app
}

// errorHandler renders every error as the JSON error envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return writeError(c, code, err.Error())
}

func requestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.WithFields(logrus.Fields{
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).String(),
		}).Info("request")
		return nil
	}
}
