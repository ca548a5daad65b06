package main

import (
	"context"
	"time"

	mongoMigration "medq/internal/migrations/mongo"
	postgresMigration "medq/internal/migrations/postgres"
	"medq/pkg/config"
)

const JobName = "medq-migration"

func main() {
	cfg := config.Load(JobName)
	cfg.Connect()
	cfg.Log.Info("Starting migration job", "store_backend", cfg.StoreBackend)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	err := migrate(ctx, cfg)
	cancel()
	cfg.GracefulShutdown()

	if err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}

func migrate(ctx context.Context, cfg *config.Config) error {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		return mongoMigration.RunMigration(ctx, cfg.Client.Mongo.Database(cfg.MongoDatabaseName), cfg.Log)
	case config.StorePostgres:
		return postgresMigration.RunMigration(cfg.Client.Postgres.WithContext(ctx), cfg.Log)
	default:
		cfg.Log.Info("Store backend has no schema, nothing to migrate")
		return nil
	}
}
