package server

import (
	"fmt"
	"io"

	"menuboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/upload. The multipart field is named "file";
// content sniffing, the size cap and atomic persistence live in the service.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	// Cheap pre-check on the declared size before buffering the body.
	if fileHeader.Size > s.imageService.MaxBytes() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(fmt.Sprintf("File exceeds the %dMB upload limit",
				s.imageService.MaxBytes()/(1024*1024))))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	stored, err := s.imageService.Save(c.UserContext(), content)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(stored)
}
