package repository

import (
	"context"
	"fmt"

	"menuboard/internal/models"

	"gorm.io/gorm"
)

// DishRepository defines the interface for dish data operations
type DishRepository interface {
	Create(ctx context.Context, dish *models.Dish) error
	GetByID(ctx context.Context, id uint) (*models.Dish, error)
	List(ctx context.Context) ([]*models.Dish, error)
	Update(ctx context.Context, dish *models.Dish) error
	Delete(ctx context.Context, id uint) error
	AddVotes(ctx context.Context, id uint, direction string, delta int) error
}

type dishRepository struct {
	db *gorm.DB
}

// NewDishRepository creates a new dish repository
func NewDishRepository(db *gorm.DB) DishRepository {
	return &dishRepository{db: db}
}

func (r *dishRepository) Create(ctx context.Context, dish *models.Dish) error {
	return r.db.WithContext(ctx).Create(dish).Error
}

func (r *dishRepository) GetByID(ctx context.Context, id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := r.db.WithContext(ctx).First(&dish, id).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

// List returns dishes ordered by up-votes descending; ties keep insertion order.
func (r *dishRepository) List(ctx context.Context) ([]*models.Dish, error) {
	var dishes []*models.Dish
	err := r.db.WithContext(ctx).
		Order("up_votes DESC, id ASC").
		Find(&dishes).Error
	return dishes, err
}

func (r *dishRepository) Update(ctx context.Context, dish *models.Dish) error {
	return r.db.WithContext(ctx).Save(dish).Error
}

func (r *dishRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Dish{}, id).Error
}

// AddVotes applies a vote delta to one counter column as a single server-side
// UPDATE so concurrent votes never lose updates; the MAX(0, ...) floor keeps
// the counter non-negative on cancels.
func (r *dishRepository) AddVotes(ctx context.Context, id uint, direction string, delta int) error {
	var column string
	switch direction {
	case "up":
		column = "up_votes"
	case "down":
		column = "down_votes"
	default:
		return fmt.Errorf("unknown vote direction %q", direction)
	}

	res := r.db.WithContext(ctx).
		Model(&models.Dish{}).
		Where("id = ?", id).
		Update(column, gorm.Expr("MAX(0, "+column+" + ?)", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
