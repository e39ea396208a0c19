package run

import (
	"time"

	"github.com/ettle/strcase"
	"github.com/urfave/cli/v2"
	"github.com/youkoulayley/remindme-bot/pkg/logger"
	"github.com/youkoulayley/remindme-bot/pkg/reminder"
)

const (
	flagLogLevel       = "log-level"
	flagLogFormat      = "log-format"
	flagDiscordToken   = "discord-token"
	flagOwnerID        = "owner-id"
	flagCommandPrefix  = "command-prefix"
	flagWorkers        = "workers"
	flagTick           = "tick"
	flagRetryDelay     = "retry-delay"
	flagMaxRetries     = "max-retries"
	flagMinRemindDelay = "min-remind-delay"
	flagMongoURI       = "mongo-uri"
	flagMongoDatabase  = "mongo-database"
)

// Command returns the run command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the RemindMe bot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "Log level",
				EnvVars: []string{strcase.ToSNAKE(flagLogLevel)},
				Value:   "debug",
			},
			&cli.StringFlag{
				Name:    flagLogFormat,
				Usage:   "Log format (json or console)",
				EnvVars: []string{strcase.ToSNAKE(flagLogFormat)},
				Value:   logger.FormatConsole,
			},
			&cli.StringFlag{
				Name:     flagDiscordToken,
				Usage:    "Token for the bot",
				EnvVars:  []string{strcase.ToSNAKE(flagDiscordToken)},
				Required: true,
			},
			&cli.StringFlag{
				Name:    flagOwnerID,
				Usage:   "Discord ID of the user allowed to run the owner commands",
				EnvVars: []string{strcase.ToSNAKE(flagOwnerID)},
			},
			&cli.StringFlag{
				Name:    flagCommandPrefix,
				Usage:   "Prefix of the commands",
				EnvVars: []string{strcase.ToSNAKE(flagCommandPrefix)},
				Value:   "!",
			},
			&cli.IntFlag{
				Name:    flagWorkers,
				Usage:   "Number of reminders and reaction triggers that can run at the same time",
				EnvVars: []string{strcase.ToSNAKE(flagWorkers)},
				Value:   4,
			},
			&cli.DurationFlag{
				Name:    flagTick,
				Usage:   "Interval between two checks of the pending reminders",
				EnvVars: []string{strcase.ToSNAKE(flagTick)},
				Value:   500 * time.Millisecond,
			},
			&cli.DurationFlag{
				Name:    flagRetryDelay,
				Usage:   "Delay before sending again a reminder that could not be sent",
				EnvVars: []string{strcase.ToSNAKE(flagRetryDelay)},
				Value:   reminder.DefaultRetryDelay,
			},
			&cli.IntFlag{
				Name:    flagMaxRetries,
				Usage:   "Consecutive failed sends after which a reminder is dropped, 0 to retry forever",
				EnvVars: []string{strcase.ToSNAKE(flagMaxRetries)},
				Value:   60,
			},
			&cli.DurationFlag{
				Name:    flagMinRemindDelay,
				Usage:   "Smallest reminder delay accepted",
				EnvVars: []string{strcase.ToSNAKE(flagMinRemindDelay)},
				Value:   500 * time.Millisecond,
			},
			&cli.StringFlag{
				Name:    flagMongoURI,
				Usage:   "MongoDB connection string, enables the reminder history when set",
				EnvVars: []string{strcase.ToSNAKE(flagMongoURI)},
			},
			&cli.StringFlag{
				Name:    flagMongoDatabase,
				Usage:   "MongoDB database",
				EnvVars: []string{strcase.ToSNAKE(flagMongoDatabase)},
				Value:   "remindme-bot",
			},
		},
		Action: run,
	}
}
