package service

import (
	"context"
	"errors"
	"time"

	"menuboard/internal/models"
	"menuboard/internal/observability"
	"menuboard/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// BoardService serves the public display aggregate and the dish/chef voting
// operations.
type BoardService struct {
	configRepo repository.ConfigRepository
	dishRepo   repository.DishRepository
	chefRepo   repository.ChefRepository
	now        func() time.Time
}

// NewBoardService creates a board service. nowFn may be nil (time.Now).
func NewBoardService(configRepo repository.ConfigRepository, dishRepo repository.DishRepository, chefRepo repository.ChefRepository, nowFn func() time.Time) *BoardService {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &BoardService{
		configRepo: configRepo,
		dishRepo:   dishRepo,
		chefRepo:   chefRepo,
		now:        nowFn,
	}
}

// BoardSnapshot is the full public state of the board at one moment.
type BoardSnapshot struct {
	Config      *models.Config
	DisplayDate string
	Dishes      []*models.Dish
	Chefs       []*models.Chef
}

// Snapshot reads the aggregate shown on the public display. The display date
// is computed per read when auto-date is on and never persisted.
func (s *BoardService) Snapshot(ctx context.Context) (*BoardSnapshot, error) {
	span, ctx := observability.NewSpan(ctx, "board.snapshot")
	defer span.End()

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	dishes, err := s.dishRepo.List(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	chefs, err := s.chefRepo.List(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	span.AddAttributes(
		attribute.Int("board.dishes", len(dishes)),
		attribute.Int("board.chefs", len(chefs)),
	)

	return &BoardSnapshot{
		Config:      cfg,
		DisplayDate: cfg.DisplayDate(s.now()),
		Dishes:      dishes,
		Chefs:       chefs,
	}, nil
}

// VoteDish applies one vote (or a cancel, floored at zero) to a dish counter.
// direction must be "up" or "down".
func (s *BoardService) VoteDish(ctx context.Context, dishID uint, direction string, cancel bool) error {
	if direction != "up" && direction != "down" {
		return models.NewValidationError("Vote type must be 'up' or 'down'")
	}

	if _, err := s.dishRepo.GetByID(ctx, dishID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Dish", dishID)
		}
		return err
	}

	delta := 1
	label := direction
	if cancel {
		delta = -1
		label = "cancel_" + direction
	}

	if err := s.dishRepo.AddVotes(ctx, dishID, direction, delta); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Dish", dishID)
		}
		return err
	}

	observability.VotesTotal.WithLabelValues("dish", label).Inc()
	return nil
}

// VoteChef applies one monthly vote (or a cancel, floored at zero) to a chef.
func (s *BoardService) VoteChef(ctx context.Context, chefID uint, cancel bool) error {
	if _, err := s.chefRepo.GetByID(ctx, chefID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Chef", chefID)
		}
		return err
	}

	delta := 1
	label := "monthly"
	if cancel {
		delta = -1
		label = "cancel_monthly"
	}

	if err := s.chefRepo.AddMonthlyVotes(ctx, chefID, delta); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Chef", chefID)
		}
		return err
	}

	observability.VotesTotal.WithLabelValues("chef", label).Inc()
	return nil
}
