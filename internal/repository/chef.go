package repository

import (
	"context"

	"menuboard/internal/models"

	"gorm.io/gorm"
)

// ChefRepository defines the interface for chef data operations
type ChefRepository interface {
	Create(ctx context.Context, chef *models.Chef) error
	GetByID(ctx context.Context, id uint) (*models.Chef, error)
	List(ctx context.Context) ([]*models.Chef, error)
	Update(ctx context.Context, chef *models.Chef) error
	Delete(ctx context.Context, id uint) error
	AddMonthlyVotes(ctx context.Context, id uint, delta int) error
}

type chefRepository struct {
	db *gorm.DB
}

// NewChefRepository creates a new chef repository
func NewChefRepository(db *gorm.DB) ChefRepository {
	return &chefRepository{db: db}
}

func (r *chefRepository) Create(ctx context.Context, chef *models.Chef) error {
	if chef.Photo == "" {
		chef.Photo = models.DefaultChefPhoto
	}
	// 99 means unranked; a zero rank from the client gets the same treatment.
	if chef.DailyRank == 0 {
		chef.DailyRank = 99
	}
	if chef.MonthlyRank == 0 {
		chef.MonthlyRank = 99
	}
	return r.db.WithContext(ctx).Create(chef).Error
}

func (r *chefRepository) GetByID(ctx context.Context, id uint) (*models.Chef, error) {
	var chef models.Chef
	if err := r.db.WithContext(ctx).First(&chef, id).Error; err != nil {
		return nil, err
	}
	return &chef, nil
}

// List returns chefs ordered by daily rank ascending (lower is better).
func (r *chefRepository) List(ctx context.Context) ([]*models.Chef, error) {
	var chefs []*models.Chef
	err := r.db.WithContext(ctx).
		Order("daily_rank ASC, id ASC").
		Find(&chefs).Error
	return chefs, err
}

func (r *chefRepository) Update(ctx context.Context, chef *models.Chef) error {
	return r.db.WithContext(ctx).Save(chef).Error
}

func (r *chefRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Chef{}, id).Error
}

// AddMonthlyVotes applies a monthly vote delta atomically with a zero floor.
func (r *chefRepository) AddMonthlyVotes(ctx context.Context, id uint, delta int) error {
	res := r.db.WithContext(ctx).
		Model(&models.Chef{}).
		Where("id = ?", id).
		Update("monthly_votes", gorm.Expr("MAX(0, monthly_votes + ?)", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
