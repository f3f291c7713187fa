package server

import (
	"errors"

	"menuboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Admin endpoints return storage-shaped rows; only the public display views
// use the legacy field aliases.

// GetAdminConfig handles GET /api/admin/config
func (s *Server) GetAdminConfig(c *fiber.Ctx) error {
	cfg, err := s.configRepo.Get(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"success": true, "config": cfg})
}

type updateConfigRequest struct {
	Title        string  `json:"title"`
	DateLocation *string `json:"date_location"`
	AutoDate     bool    `json:"auto_date"`
}

// UpdateAdminConfig handles POST /api/admin/config. The update replaces all
// three settable fields; the singleton row itself is never created or deleted
// here.
func (s *Server) UpdateAdminConfig(c *fiber.Ctx) error {
	var req updateConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}

	if err := s.configRepo.Update(c.UserContext(), req.Title, req.DateLocation, req.AutoDate); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetAdminDishes handles GET /api/admin/dishes
func (s *Server) GetAdminDishes(c *fiber.Ctx) error {
	dishes, err := s.dishRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"success": true, "dishes": dishes})
}

type dishRequest struct {
	Name      string `json:"name"`
	Chef      string `json:"chef"`
	UpVotes   int    `json:"up_votes"`
	DownVotes int    `json:"down_votes"`
}

// CreateAdminDish handles POST /api/admin/dishes
func (s *Server) CreateAdminDish(c *fiber.Ctx) error {
	var req dishRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" || req.Chef == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name and chef are required"))
	}

	dish := &models.Dish{
		Name:      req.Name,
		Chef:      req.Chef,
		UpVotes:   models.ApplyDelta(0, req.UpVotes),
		DownVotes: models.ApplyDelta(0, req.DownVotes),
	}
	if err := s.dishRepo.Create(c.UserContext(), dish); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"success": true, "id": dish.ID})
}

// UpdateAdminDish handles PUT /api/admin/dishes/:id as a full replace.
func (s *Server) UpdateAdminDish(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req dishRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" || req.Chef == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name and chef are required"))
	}

	dish, err := s.dishRepo.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondServiceError(c, models.NewNotFoundError("Dish", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	dish.Name = req.Name
	dish.Chef = req.Chef
	dish.UpVotes = models.ApplyDelta(0, req.UpVotes)
	dish.DownVotes = models.ApplyDelta(0, req.DownVotes)

	if err := s.dishRepo.Update(c.UserContext(), dish); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeleteAdminDish handles DELETE /api/admin/dishes/:id. Deleting an absent
// dish is a no-op so retries stay idempotent.
func (s *Server) DeleteAdminDish(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.dishRepo.Delete(c.UserContext(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetAdminChefs handles GET /api/admin/chefs
func (s *Server) GetAdminChefs(c *fiber.Ctx) error {
	chefs, err := s.chefRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"success": true, "chefs": chefs})
}

type chefRequest struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Photo        string `json:"photo"`
	Description  string `json:"description"`
	DailyRank    int    `json:"daily_rank"`
	MonthlyRank  int    `json:"monthly_rank"`
	MonthlyVotes int    `json:"monthly_votes"`
}

// CreateAdminChef handles POST /api/admin/chefs. Missing photo and ranks get
// the repository defaults.
func (s *Server) CreateAdminChef(c *fiber.Ctx) error {
	var req chefRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" || req.Role == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name and role are required"))
	}

	chef := &models.Chef{
		Name:         req.Name,
		Role:         req.Role,
		Photo:        req.Photo,
		Description:  req.Description,
		DailyRank:    req.DailyRank,
		MonthlyRank:  req.MonthlyRank,
		MonthlyVotes: models.ApplyDelta(0, req.MonthlyVotes),
	}
	if err := s.chefRepo.Create(c.UserContext(), chef); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"success": true, "id": chef.ID})
}

// UpdateAdminChef handles PUT /api/admin/chefs/:id as a full replace.
func (s *Server) UpdateAdminChef(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req chefRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" || req.Role == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name and role are required"))
	}

	chef, err := s.chefRepo.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondServiceError(c, models.NewNotFoundError("Chef", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	chef.Name = req.Name
	chef.Role = req.Role
	chef.Photo = req.Photo
	chef.Description = req.Description
	chef.DailyRank = req.DailyRank
	chef.MonthlyRank = req.MonthlyRank
	chef.MonthlyVotes = models.ApplyDelta(0, req.MonthlyVotes)

	if err := s.chefRepo.Update(c.UserContext(), chef); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeleteAdminChef handles DELETE /api/admin/chefs/:id
func (s *Server) DeleteAdminChef(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.chefRepo.Delete(c.UserContext(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"success": true})
}
