// Seeds the product catalog with sample data. Safe to run against an empty
// database; running it twice inserts duplicates.
package main

import (
	"context"
	"log"
	"time"

	"github.com/shoppyglobe/shoppyglobe-api/config"
	"github.com/shoppyglobe/shoppyglobe-api/database"
	"github.com/shoppyglobe/shoppyglobe-api/models"
	"github.com/shoppyglobe/shoppyglobe-api/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if err := database.Connect(cfg.MongoURL, cfg.MongoDB); err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	defer func() {
		_ = database.Close()
	}()
	log.Println("Connected to MongoDB")

	products := []interface{}{
		models.Product{
			Name:        "Wireless Headphones",
			Price:       1499,
			Description: "High-quality over-ear wireless headphones.",
			Stock:       25,
		},
		models.Product{
			Name:        "Bluetooth Speaker",
			Price:       999,
			Description: "Portable speaker with powerful bass.",
			Stock:       15,
		},
		models.Product{
			Name:        "Smart Watch",
			Price:       2499,
			Description: "Track your fitness with this stylish smart watch.",
			Stock:       30,
		},
		models.Product{
			Name:        "Gaming Mouse",
			Price:       699,
			Description: "Precision mouse for smooth gaming performance.",
			Stock:       40,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo := repository.NewProductRepository(database.DB)
	if err := repo.CreateMany(ctx, products); err != nil {
		log.Fatalf("Error seeding products: %v", err)
	}
	log.Println("Sample products inserted!")
}
