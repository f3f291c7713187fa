package server

import (
	"menuboard/internal/models"
	"menuboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// boardLogoURL is served by the static frontend bundle; the display shows it
// next to the title.
const boardLogoURL = "static/logo.png"

// The display frontend predates this service and keys on these exact field
// names, so the views below are the wire contract, not the storage shape.

type dishView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Chef string `json:"chef"`
	Up   int    `json:"up"`
	Down int    `json:"down"`
}

type chefView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Photo        string `json:"photo"`
	Desc         string `json:"desc"`
	DailyRank    int    `json:"daily_rank"`
	MonthlyRank  int    `json:"monthly_rank"`
	MonthlyVotes int    `json:"monthly_votes"`
}

type boardConfigView struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	LogoURL string `json:"logo_url,omitempty"`
	QRURL   string `json:"qr_url,omitempty"`
}

type boardView struct {
	Config boardConfigView `json:"config"`
	Dishes []dishView      `json:"dishes"`
	Chefs  []chefView      `json:"chefs"`
}

type voteResponse struct {
	Success bool      `json:"success"`
	NewData boardView `json:"newData"`
}

func newBoardView(snap *service.BoardSnapshot, includeAssets bool) boardView {
	view := boardView{
		Config: boardConfigView{
			Title: snap.Config.Title,
			Date:  snap.DisplayDate,
		},
		Dishes: make([]dishView, 0, len(snap.Dishes)),
		Chefs:  make([]chefView, 0, len(snap.Chefs)),
	}
	if includeAssets {
		view.Config.LogoURL = boardLogoURL
		view.Config.QRURL = boardLogoURL
	}

	for _, d := range snap.Dishes {
		view.Dishes = append(view.Dishes, dishView{
			ID:   d.ID,
			Name: d.Name,
			Chef: d.Chef,
			Up:   d.UpVotes,
			Down: d.DownVotes,
		})
	}
	for _, c := range snap.Chefs {
		view.Chefs = append(view.Chefs, chefView{
			ID:           c.ID,
			Name:         c.Name,
			Role:         c.Role,
			Photo:        c.Photo,
			Desc:         c.Description,
			DailyRank:    c.DailyRank,
			MonthlyRank:  c.MonthlyRank,
			MonthlyVotes: c.MonthlyVotes,
		})
	}

	return view
}

// GetData returns the aggregate the public display polls: board config with
// the computed date line plus all dishes and chefs.
func (s *Server) GetData(c *fiber.Ctx) error {
	snap, err := s.boardService.Snapshot(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(newBoardView(snap, true))
}

// respondWithFreshBoard replies to a vote with the refreshed aggregate so the
// mobile page can re-render without a second round trip.
func (s *Server) respondWithFreshBoard(c *fiber.Ctx) error {
	snap, err := s.boardService.Snapshot(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(voteResponse{Success: true, NewData: newBoardView(snap, false)})
}

type dishVoteRequest struct {
	DishID   uint   `json:"dishId"`
	Type     string `json:"type"`
	DeviceID string `json:"deviceId"`
}

type chefVoteRequest struct {
	ChefID   uint   `json:"chefId"`
	DeviceID string `json:"deviceId"`
}

// VoteDish handles POST /api/vote
func (s *Server) VoteDish(c *fiber.Ctx) error {
	return s.handleDishVote(c, false)
}

// VoteDishCancel handles POST /api/vote-cancel. Cancels are not linked to an
// original vote; the counter floor makes a stray cancel harmless.
func (s *Server) VoteDishCancel(c *fiber.Ctx) error {
	return s.handleDishVote(c, true)
}

func (s *Server) handleDishVote(c *fiber.Ctx, cancel bool) error {
	var req dishVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.DishID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Dish ID is required"))
	}

	if err := s.boardService.VoteDish(c.UserContext(), req.DishID, req.Type, cancel); err != nil {
		return respondServiceError(c, err)
	}

	return s.respondWithFreshBoard(c)
}

// VoteChef handles POST /api/vote-chef
func (s *Server) VoteChef(c *fiber.Ctx) error {
	return s.handleChefVote(c, false)
}

// VoteChefCancel handles POST /api/vote-chef-cancel
func (s *Server) VoteChefCancel(c *fiber.Ctx) error {
	return s.handleChefVote(c, true)
}

func (s *Server) handleChefVote(c *fiber.Ctx, cancel bool) error {
	var req chefVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ChefID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Chef ID is required"))
	}

	if err := s.boardService.VoteChef(c.UserContext(), req.ChefID, cancel); err != nil {
		return respondServiceError(c, err)
	}

	return s.respondWithFreshBoard(c)
}
