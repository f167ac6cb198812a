package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sosintake",
		Usage: "Emergency assistance intake service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-prefix",
				Aliases: []string{"p"},
				Usage:   "Environment variable prefix",
				Value:   "SOS",
				EnvVars: []string{"SOS_ENV_PREFIX"},
			},
		},
		Commands: []*cli.Command{
			serveCommand,
			migrateCommand,
			submissionsCommand,
			seedCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
