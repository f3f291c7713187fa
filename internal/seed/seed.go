// Package seed provides database seeding utilities for development and demos.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"menuboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumDishes   int
	NumChefs    int
	NumPosts    int
	ShouldClean bool
}

var (
	dishNames = []string{
		"Braised Pork Belly", "Mapo Tofu", "Kung Pao Chicken", "Steamed Sea Bass",
		"Beef Noodle Soup", "Sweet and Sour Ribs", "Twice-Cooked Pork",
		"Garlic Eggplant", "Hot and Sour Soup", "Dan Dan Noodles",
		"Roast Duck", "Scallion Pancakes", "Dry-Fried Green Beans",
		"Tea-Smoked Chicken", "Red-Braised Fish Head", "Lotus Root Salad",
	}

	chefRoles = []string{
		"Head Chef", "Sous Chef", "Pastry Chef", "Grill Chef",
		"Wok Chef", "Cold Station Chef", "Dim Sum Chef",
	}

	chefBlurbs = []string{
		"Twenty years behind the wok and still chasing the perfect sear.",
		"Believes every dish starts with good stock.",
		"Trained in Chengdu, obsessed with balance over heat.",
		"Turns leftover rice into the staff meal everyone fights over.",
		"Keeps the pastry station running like a watchmaker.",
		"Will not plate anything twice the same way.",
	}

	postSeeds = []string{
		"The braised pork today was outstanding, more of that please!",
		"Can we get more vegetarian options on Fridays?",
		"Soup was a little salty today but still good.",
		"Whoever made the noodles at lunch deserves a raise.",
		"Line moved really fast today, nice work everyone.",
		"Please bring back the scallion pancakes!",
		"The new dessert is great, what is it called?",
		"Portions felt smaller this week, is that intentional?",
	}

	commentSeeds = []string{
		"Agreed!", "Same here.", "+1", "Totally, best dish this month.",
		"I thought it was fine honestly.", "Hope the kitchen sees this.",
	}
)

// Seeder wraps a database handle with seeding helpers.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// ClearAll removes all seeded rows but keeps the singleton config.
func (s *Seeder) ClearAll() error {
	log.Println("🧹 Clearing existing data...")
	for _, stmt := range []string{
		"DELETE FROM comments",
		"DELETE FROM posts",
		"DELETE FROM dishes",
		"DELETE FROM chefs",
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}
	return nil
}

// Seed populates the database with demo data
func (s *Seeder) Seed(opts Options) error {
	log.Printf("🌱 Seeding %d dishes, %d chefs, %d posts...", opts.NumDishes, opts.NumChefs, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	if err := s.seedDishes(opts.NumDishes); err != nil {
		return fmt.Errorf("failed to seed dishes: %w", err)
	}
	chefs, err := s.seedChefs(opts.NumChefs)
	if err != nil {
		return fmt.Errorf("failed to seed chefs: %w", err)
	}
	if err := s.seedForum(opts.NumPosts); err != nil {
		return fmt.Errorf("failed to seed forum: %w", err)
	}

	log.Printf("✓ Seeded %d chefs and friends", len(chefs))
	return nil
}

func (s *Seeder) seedDishes(n int) error {
	for i := 0; i < n; i++ {
		name := dishNames[i%len(dishNames)]
		if i >= len(dishNames) {
			name = fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), name)
		}
		dish := models.Dish{
			Name:      name,
			Chef:      gofakeit.Name(),
			UpVotes:   rand.Intn(40),
			DownVotes: rand.Intn(8),
		}
		if err := s.db.Create(&dish).Error; err != nil {
			return err
		}
	}
	log.Printf("✓ %d dishes created", n)
	return nil
}

func (s *Seeder) seedChefs(n int) ([]models.Chef, error) {
	chefs := make([]models.Chef, 0, n)
	for i := 0; i < n; i++ {
		chef := models.Chef{
			Name:         gofakeit.Name(),
			Role:         chefRoles[i%len(chefRoles)],
			Photo:        models.DefaultChefPhoto,
			Description:  chefBlurbs[i%len(chefBlurbs)],
			DailyRank:    i + 1,
			MonthlyRank:  i + 1,
			MonthlyVotes: rand.Intn(25),
		}
		if err := s.db.Create(&chef).Error; err != nil {
			return nil, err
		}
		chefs = append(chefs, chef)
	}
	log.Printf("✓ %d chefs created", n)
	return chefs, nil
}

func (s *Seeder) seedForum(n int) error {
	now := time.Now().Unix()
	for i := 0; i < n; i++ {
		content := postSeeds[i%len(postSeeds)]
		if i >= len(postSeeds) {
			content = gofakeit.Sentence(8)
		}
		deviceID := gofakeit.UUID()
		post := models.Post{
			Content:  content,
			Likes:    rand.Intn(15),
			DeviceID: &deviceID,
			// Spread posts over the last week so pagination has an order to show.
			CreatedAt: now - int64(rand.Intn(7*24*3600)),
		}
		if err := s.db.Create(&post).Error; err != nil {
			return err
		}

		for j := 0; j < rand.Intn(3); j++ {
			commentDevice := gofakeit.UUID()
			comment := models.Comment{
				PostID:    post.ID,
				Content:   commentSeeds[rand.Intn(len(commentSeeds))],
				DeviceID:  &commentDevice,
				CreatedAt: post.CreatedAt + int64(rand.Intn(3600)),
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return err
			}
		}
	}
	log.Printf("✓ %d forum posts created", n)
	return nil
}
