package http

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed docs/openapi.json
var openAPISpec []byte

func serveAPIDocs(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(openAPISpec)
}
