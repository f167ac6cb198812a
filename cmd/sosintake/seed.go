package main

import (
	"context"
	"fmt"

	"sosintake/internal/db"
	"sosintake/internal/seed"
	"sosintake/internal/store"

	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with demo SOS requests",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := newLogger(cfg)
		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logger.Info("Connected to database")

		seeded, err := seed.SeedSubmissions(ctx, store.NewSubmissionRepository(pool))
		if err != nil {
			return fmt.Errorf("failed to seed submissions: %w", err)
		}

		logger.WithField("seeded", seeded).Info("Submissions seeded successfully")

		return nil
	},
}
