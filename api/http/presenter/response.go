package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the single-message error body: {"mensaje": "..."}.
type ErrorResponse struct {
	Mensaje string `json:"mensaje"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, mensaje string) error {
	return JSON(c, status, ErrorResponse{Mensaje: mensaje})
}

// Fields reports request-shape validation failures as a field→message map.
func Fields(c *fiber.Ctx, status int, errors map[string]string) error {
	return JSON(c, status, errors)
}
