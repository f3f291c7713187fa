// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"time"
)

// DefaultChefPhoto is used when a chef is created without a photo.
const DefaultChefPhoto = "static/logo.png"

// Config is the singleton board configuration. Exactly one row exists,
// pinned to ID 1 by the database layer.
type Config struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Title        string  `gorm:"not null" json:"title"`
	DateLocation *string `json:"date_location"`
	AutoDate     bool    `json:"auto_date"`
	UpdatedAt    int64   `gorm:"autoUpdateTime" json:"updated_at"`
}

// DisplayDate returns the date/location line shown on the board. When
// auto-date is on and no explicit value is stored, it is computed from the
// current date and meal period (before 14:00 is lunch) and never persisted.
func (c *Config) DisplayDate(now time.Time) string {
	if c.DateLocation != nil && *c.DateLocation != "" {
		return *c.DateLocation
	}
	if !c.AutoDate {
		return ""
	}
	meal := "lunch"
	if now.Hour() >= 14 {
		meal = "dinner"
	}
	return fmt.Sprintf("%s %s", now.Format("2006-01-02"), meal)
}

// Dish is a menu item on the public board. Vote counters never go below zero.
type Dish struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Chef      string `gorm:"not null" json:"chef"`
	UpVotes   int    `gorm:"not null;default:0" json:"up_votes"`
	DownVotes int    `gorm:"not null;default:0" json:"down_votes"`
	CreatedAt int64  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Chef is a kitchen staff profile. Ranks default to 99 (unranked, lower is
// better); monthly votes never go below zero.
type Chef struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Role         string `gorm:"not null" json:"role"`
	Photo        string `json:"photo"`
	Description  string `gorm:"type:text" json:"description"`
	DailyRank    int    `gorm:"not null;default:99" json:"daily_rank"`
	MonthlyRank  int    `gorm:"not null;default:99" json:"monthly_rank"`
	MonthlyVotes int    `gorm:"not null;default:0" json:"monthly_votes"`
	CreatedAt    int64  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    int64  `gorm:"autoUpdateTime" json:"updated_at"`
}
