// Command main runs the database seeder for Daybook.
package main

import (
	"flag"
	"log"

	"daybook/internal/config"
	"daybook/internal/database"
	"daybook/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numDiaries := flag.Int("diaries", 100, "Number of diaries to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d diaries, clean=%v\n", *numUsers, *numDiaries, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(seed.Options{
		NumUsers:   *numUsers,
		NumDiaries: *numDiaries,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
