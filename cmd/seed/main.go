// Command main runs the database seeder for the restaurant event board.
package main

import (
	"flag"
	"log"

	"menuboard/internal/config"
	"menuboard/internal/database"
	"menuboard/internal/seed"
)

func main() {
	numDishes := flag.Int("dishes", 8, "Number of dishes to create")
	numChefs := flag.Int("chefs", 5, "Number of chefs to create")
	numPosts := flag.Int("posts", 12, "Number of forum posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d dishes, %d chefs, %d posts, clean=%v\n", *numDishes, *numChefs, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB)
	if err := s.Seed(seed.Options{
		NumDishes:   *numDishes,
		NumChefs:    *numChefs,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! The board is populated with demo data.")
}
