package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetQRCode handles GET /api/qrcode/:type for the two mobile pages. The
// encoded URL is built from the request's Host header so the code works on
// whatever address the venue serves from.
func (s *Server) GetQRCode(c *fiber.Ctx) error {
	host := c.Hostname()
	if host == "" {
		host = "localhost:" + s.config.Port
	}

	code, err := s.qrService.Generate(host, c.Params("type"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"qrcode":  code.DataURL,
		"url":     code.URL,
	})
}
