package bot

import (
	"context"
	"time"

	"github.com/skwair/harmony/discord"
	"github.com/youkoulayley/remindme-bot/pkg/reminder"
	"github.com/youkoulayley/remindme-bot/pkg/router"
	"github.com/youkoulayley/remindme-bot/pkg/store"
)

// Bucket limiting the greetings.
const (
	BucketNoSpam = "nospam"
	NoSpamDelay  = 5 * time.Second
)

// Bot represents the Discord bot.
type Bot struct {
	discord  Discord
	reminder Reminder
	history  History

	prefix string
}

// New creates a bot. The history is optional: without it the history command is not available.
func New(d Discord, r Reminder, h History, prefix string) *Bot {
	return &Bot{
		discord:  d,
		reminder: r,
		history:  h,
		prefix:   prefix,
	}
}

// Discord is capable of interacting with Discord.
type Discord interface {
	SendMessage(ctx context.Context, channelID, text string) (*discord.Message, error)
	Reply(ctx context.Context, m *discord.Message, text string) error
}

// Reminder is capable of scheduling reminders.
type Reminder interface {
	Schedule(remind reminder.Remind) (string, error)
	MinDelay() time.Duration
}

// History is capable of listing the reminders sent to a user.
type History interface {
	ListDeliveriesByUser(ctx context.Context, userID string, limit int) ([]store.Delivery, error)
}

// Commands returns the commands of the bot. Only ownerID can run the owner commands.
func (b *Bot) Commands(ownerID string) []router.Command {
	commands := []router.Command{
		{
			Name:        "hi",
			Description: "Says hi!",
			Bucket:      BucketNoSpam,
			Handler:     b.Hi,
		},
		{
			Name:        "hal",
			Description: "HAL-9000",
			Checks:      []router.Check{router.OwnerOnly(ownerID)},
			Handler:     b.Hal,
		},
		{
			Name:        "rme",
			Aliases:     []string{"rm"},
			Description: "Sends your message after the delay, react to it to be thanked",
			Usage:       remindUsage,
			Handler:     b.Remind,
		},
	}

	if b.history != nil {
		commands = append(commands, router.Command{
			Name:        "history",
			Description: "Lists your last reminders",
			Handler:     b.History,
		})
	}

	return commands
}
