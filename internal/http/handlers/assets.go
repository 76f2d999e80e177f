package handlers

import (
	"github.com/gofiber/fiber/v2"

	"web2pdf/internal/web"
)

// HandleAsset serves one embedded form file with the MIME type for ext.
func HandleAsset(name, ext string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := web.File(name)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Not Found")
		}
		c.Type(ext, "utf-8")
		return c.Send(data)
	}
}
