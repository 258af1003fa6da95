package main

import (
	"context"
	"time"

	mongoMigration "hotelbooking/internal/migrations/mongo"
	"hotelbooking/internal/staff"
	"hotelbooking/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		return
	}

	created, err := staff.Seed(ctx, staff.NewMongoRepository(cfg))
	if err != nil {
		cfg.Log.Error("Staff seeding failed", "error", err)
		return
	}
	cfg.Log.Info("Migration completed successfully", "staff_seeded", created)
}
