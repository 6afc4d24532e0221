package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "vitrine",
		Usage: "Contact-form and file-serving backend for the site vitrine",
		Commands: []*cli.Command{
			serveCommand,
			migrateCommand,
			seedCommand,
			keygenCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
