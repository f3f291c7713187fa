package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayDate(t *testing.T) {
	t.Parallel()

	lunch := time.Date(2025, 3, 10, 11, 30, 0, 0, time.UTC)
	dinner := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	lastLunchMinute := time.Date(2025, 3, 10, 13, 59, 59, 0, time.UTC)

	t.Run("explicit value wins over auto date", func(t *testing.T) {
		t.Parallel()
		loc := "2025-03-08 Banquet Hall"
		cfg := Config{DateLocation: &loc, AutoDate: true}
		assert.Equal(t, "2025-03-08 Banquet Hall", cfg.DisplayDate(dinner))
	})

	t.Run("empty explicit value falls through to auto date", func(t *testing.T) {
		t.Parallel()
		empty := ""
		cfg := Config{DateLocation: &empty, AutoDate: true}
		assert.Equal(t, "2025-03-10 lunch", cfg.DisplayDate(lunch))
	})

	t.Run("auto date before 14:00 is lunch", func(t *testing.T) {
		t.Parallel()
		cfg := Config{AutoDate: true}
		assert.Equal(t, "2025-03-10 lunch", cfg.DisplayDate(lunch))
		assert.Equal(t, "2025-03-10 lunch", cfg.DisplayDate(lastLunchMinute))
	})

	t.Run("auto date from 14:00 is dinner", func(t *testing.T) {
		t.Parallel()
		cfg := Config{AutoDate: true}
		assert.Equal(t, "2025-03-10 dinner", cfg.DisplayDate(dinner))
	})

	t.Run("no auto date and no value is blank", func(t *testing.T) {
		t.Parallel()
		cfg := Config{}
		assert.Equal(t, "", cfg.DisplayDate(lunch))
	})
}

func TestApplyDelta(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, ApplyDelta(0, 1))
	assert.Equal(t, 5, ApplyDelta(6, -1))
	assert.Equal(t, 0, ApplyDelta(0, -1), "cancel without a vote floors at zero")
	assert.Equal(t, 0, ApplyDelta(2, -5))
	assert.Equal(t, 0, ApplyDelta(0, 0))
}
