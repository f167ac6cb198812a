package main

import (
	"fmt"

	"sosintake/internal/db"

	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Apply database migrations",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "steps",
			Usage: "Number of migrations to apply, negative to roll back. 0 applies all pending",
			Value: 0,
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := newLogger(cfg)

		if err := db.Migrate(logger, cfg.DatabaseURL, c.Int("steps")); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		return nil
	},
}
