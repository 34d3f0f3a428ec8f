// Command main rebuilds denormalized counters from the source tables.
// Run it after manual data surgery or suspected drift; recomputation is
// idempotent and safe to repeat.
package main

import (
	"context"
	"flag"
	"log"

	"quorum/internal/config"
	"quorum/internal/database"
	"quorum/internal/repository"
	"quorum/internal/service"
)

func main() {
	userID := flag.Uint("user", 0, "Recompute a single user's stats (0 = all users)")
	categoryID := flag.Uint("category", 0, "Recompute a single category's counters (0 = all categories)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	statsService := service.NewStatsService(
		repository.NewStatsRepository(db),
		repository.NewUserRepository(db),
	)

	userIDs := []uint{*userID}
	if *userID == 0 {
		if err := db.WithContext(ctx).Table("users").Order("id").Pluck("id", &userIDs).Error; err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
	}

	drifted := 0
	for _, id := range userIDs {
		_, wasDrifted, err := statsService.RecomputeUserStats(ctx, id)
		if err != nil {
			log.Printf("user %d: recompute failed: %v", id, err)
			continue
		}
		if wasDrifted {
			drifted++
			log.Printf("user %d: counters had drifted, repaired", id)
		}
	}
	log.Printf("Recomputed stats for %d users (%d drifted)", len(userIDs), drifted)

	categoryIDs := []uint{*categoryID}
	if *categoryID == 0 {
		if err := db.WithContext(ctx).Table("categories").Order("id").Pluck("id", &categoryIDs).Error; err != nil {
			log.Fatalf("Failed to list categories: %v", err)
		}
	}

	for _, id := range categoryIDs {
		if err := statsService.RecomputeCategoryCounters(ctx, id); err != nil {
			log.Printf("category %d: recompute failed: %v", id, err)
		}
	}
	log.Printf("Recomputed counters for %d categories", len(categoryIDs))
}
