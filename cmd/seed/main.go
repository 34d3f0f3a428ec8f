// Command main runs the database seeder for local development.
package main

import (
	"context"
	"flag"
	"log"

	"quorum/internal/config"
	"quorum/internal/database"
	"quorum/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numTopics := flag.Int("topics", 60, "Number of topics to create")
	postsPerTopic := flag.Int("posts", 4, "Maximum posts per topic")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d topics, clean=%v\n", *numUsers, *numTopics, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Seed(context.Background(), db, seed.Options{
		NumUsers:      *numUsers,
		NumTopics:     *numTopics,
		PostsPerTopic: *postsPerTopic,
		ShouldClean:   *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
}
