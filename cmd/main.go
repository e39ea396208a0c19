package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/youkoulayley/remindme-bot/cmd/run"
)

func main() {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "RemindMe Bot",
		Usage: "Discord bot sending reminders and thanking whoever reacts to them",
		Commands: []*cli.Command{
			run.Command(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("Error during execution")
	}
}
