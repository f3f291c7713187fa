package service

import (
	"context"
	"testing"
	"time"

	"menuboard/internal/models"
	"menuboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBoardServiceForTest(t *testing.T, nowFn func() time.Time) (*BoardService, *gorm.DB) {
	t.Helper()
	db := setupServiceTestDB(t)
	require.NoError(t, db.Create(&models.Config{ID: 1, Title: "Test Board", AutoDate: true}).Error)
	return NewBoardService(
		repository.NewConfigRepository(db),
		repository.NewDishRepository(db),
		repository.NewChefRepository(db),
		nowFn,
	), db
}

func TestBoardService_Snapshot(t *testing.T) {
	t.Parallel()

	lunchtime := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	svc, db := newBoardServiceForTest(t, func() time.Time { return lunchtime })
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Dish{Name: "Mapo Tofu", Chef: "Chen", UpVotes: 3}).Error)
	require.NoError(t, db.Create(&models.Dish{Name: "Roast Duck", Chef: "Li", UpVotes: 9}).Error)
	require.NoError(t, db.Create(&models.Chef{Name: "Chen", Role: "Wok Chef", DailyRank: 2}).Error)
	require.NoError(t, db.Create(&models.Chef{Name: "Li", Role: "Head Chef", DailyRank: 1}).Error)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Test Board", snap.Config.Title)
	assert.Equal(t, "2025-06-01 lunch", snap.DisplayDate)

	// Dishes by votes descending, chefs by rank ascending.
	require.Len(t, snap.Dishes, 2)
	assert.Equal(t, "Roast Duck", snap.Dishes[0].Name)
	require.Len(t, snap.Chefs, 2)
	assert.Equal(t, "Li", snap.Chefs[0].Name)
}

func TestBoardService_VoteDish(t *testing.T) {
	t.Parallel()

	svc, db := newBoardServiceForTest(t, nil)
	ctx := context.Background()

	dish := models.Dish{Name: "Dan Dan Noodles", Chef: "Wang"}
	require.NoError(t, db.Create(&dish).Error)

	t.Run("invalid direction", func(t *testing.T) {
		err := svc.VoteDish(ctx, dish.ID, "sideways", false)
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("missing dish", func(t *testing.T) {
		err := svc.VoteDish(ctx, 9999, "up", false)
		assertAppErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("vote and cancel with zero floor", func(t *testing.T) {
		require.NoError(t, svc.VoteDish(ctx, dish.ID, "up", false))
		require.NoError(t, svc.VoteDish(ctx, dish.ID, "up", false))
		require.NoError(t, svc.VoteDish(ctx, dish.ID, "up", true))

		// Cancelling a down vote that never happened must not go negative.
		require.NoError(t, svc.VoteDish(ctx, dish.ID, "down", true))

		var got models.Dish
		require.NoError(t, db.First(&got, dish.ID).Error)
		assert.Equal(t, 1, got.UpVotes)
		assert.Equal(t, 0, got.DownVotes)
	})
}

func TestBoardService_VoteChef(t *testing.T) {
	t.Parallel()

	svc, db := newBoardServiceForTest(t, nil)
	ctx := context.Background()

	chef := models.Chef{Name: "Zhao", Role: "Dim Sum Chef"}
	require.NoError(t, db.Create(&chef).Error)

	t.Run("missing chef", func(t *testing.T) {
		err := svc.VoteChef(ctx, 9999, false)
		assertAppErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("monthly votes floor at zero", func(t *testing.T) {
		require.NoError(t, svc.VoteChef(ctx, chef.ID, false))
		require.NoError(t, svc.VoteChef(ctx, chef.ID, true))
		require.NoError(t, svc.VoteChef(ctx, chef.ID, true))

		var got models.Chef
		require.NoError(t, db.First(&got, chef.ID).Error)
		assert.Equal(t, 0, got.MonthlyVotes)
	})
}
