package main

import (
	"context"
	"fmt"
	"strings"

	"sosintake/internal/db"
	"sosintake/internal/notify"
	"sosintake/internal/store"
	"sosintake/internal/utils"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var submissionsCommand = &cli.Command{
	Name:  "submissions",
	Usage: "List the most recent SOS requests",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Number of requests to show",
			Value:   20,
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty print full records",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		submissions, err := store.NewSubmissionRepository(pool).LatestSubmissions(ctx, c.Uint64("limit"))
		if err != nil {
			return err
		}

		if c.Bool("pretty") {
			pp.Println(submissions)
			return nil
		}

		for _, s := range submissions {
			photos := notify.PhotoLinks(cfg.PublicBaseURL, s.PhotoIDs())
			fmt.Printf("%s\t%s\t%s %s\t%s\t%s\t%s\n",
				s.ID,
				s.CreatedTime().Format("2006-01-02 15:04:05"),
				s.FirstName,
				s.LastName,
				utils.PtrString(s.Email),
				s.Need,
				strings.Join(photos, " "),
			)
		}

		return nil
	},
}
