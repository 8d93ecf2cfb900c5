// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"harnect/internal/config"
	"harnect/internal/database"
	"harnect/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 0, "Number of registered users to create (overrides plan)")
	numPosts := flag.Int("posts", 0, "Number of posts to create (overrides plan)")
	planPath := flag.String("plan", "", "Path to a yaml seeding plan")
	noClean := flag.Bool("no-clean", false, "Keep existing data instead of clearing it first")
	flag.Parse()

	plan := seed.DefaultPlan()
	if *planPath != "" {
		loaded, err := seed.LoadPlan(*planPath)
		if err != nil {
			log.Fatalf("Failed to load seeding plan: %v", err)
		}
		plan = loaded
	}
	if *numUsers > 0 {
		plan.Users = *numUsers
	}
	if *numPosts > 0 {
		plan.Posts = *numPosts
	}
	if *noClean {
		plan.Clean = false
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.NewSeeder(db, seed.Options{}).Apply(plan); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
