package bot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/skwair/harmony/discord"
	"github.com/youkoulayley/remindme-bot/pkg/platform"
	"github.com/youkoulayley/remindme-bot/pkg/reminder"
	"github.com/youkoulayley/remindme-bot/pkg/router"
)

const (
	remindUsage  = "<delay_ms> <repeat> <message>"
	historyLimit = 5
)

// Hi handles the hi command for the bot.
// Call it with `!hi`.
func (b *Bot) Hi(ctx context.Context, m *discord.Message, _ *router.Args) error {
	if err := b.discord.Reply(ctx, m, "こんにちは!"); err != nil {
		return err
	}

	log.Info().Str("userId", m.Author.ID).Str("username", m.Author.Username).Msg("Said hi")

	return nil
}

// Hal handles the hal command for the bot.
// Call it with `!hal`.
func (b *Bot) Hal(ctx context.Context, m *discord.Message, _ *router.Args) error {
	if _, err := b.discord.SendMessage(ctx, m.ChannelID, ":red_circle: Yes, Artie?"); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// Remind handles the remind command for the bot.
// Call it with `!rm <DelayMs> <Repeat> <Message>`.
func (b *Bot) Remind(ctx context.Context, m *discord.Message, args *router.Args) error {
	delay, err := args.Uint64()
	if err != nil {
		b.usage(ctx, m)

		return fmt.Errorf("parse delay: %w", err)
	}

	if delay > math.MaxInt64/uint64(time.Millisecond) {
		b.usage(ctx, m)

		return fmt.Errorf("delay %d ms out of range", delay)
	}

	repeat, err := args.Bool()
	if err != nil {
		b.usage(ctx, m)

		return fmt.Errorf("parse repeat: %w", err)
	}

	_, err = b.reminder.Schedule(reminder.Remind{
		ChannelID: m.ChannelID,
		UserID:    m.Author.ID,
		Text:      args.Rest(),
		Delay:     time.Duration(delay) * time.Millisecond,
		Repeat:    repeat,
	})

	switch {
	case errors.Is(err, reminder.ErrDelayTooShort):
		message := fmt.Sprintf("The delay must be at least %d ms.", b.reminder.MinDelay().Milliseconds())
		if err = b.discord.Reply(ctx, m, message); err != nil {
			return err
		}

		return nil

	case errors.Is(err, reminder.ErrEmptyText):
		b.usage(ctx, m)

		return err

	case err != nil:
		return fmt.Errorf("schedule reminder: %w", err)
	}

	return nil
}

// History handles the history command for the bot.
// Call it with `!history`.
func (b *Bot) History(ctx context.Context, m *discord.Message, _ *router.Args) error {
	deliveries, err := b.history.ListDeliveriesByUser(ctx, m.Author.ID, historyLimit)
	if err != nil {
		return fmt.Errorf("list deliveries: %w", err)
	}

	if len(deliveries) == 0 {
		return b.discord.Reply(ctx, m, "No reminder sent yet.")
	}

	var sb strings.Builder

	sb.WriteString(platform.Mention(m.Author.ID) + " Last reminders:\n")

	for _, d := range deliveries {
		state := "waiting for a reaction"
		if d.AcknowledgedAt != nil {
			state = "acknowledged " + d.AcknowledgedAt.Format(time.RFC1123)
		}

		fmt.Fprintf(&sb, "  - %q sent %s, %s\n", d.Text, d.SentAt.Format(time.RFC1123), state)
	}

	if _, err = b.discord.SendMessage(ctx, m.ChannelID, sb.String()); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func (b *Bot) usage(ctx context.Context, m *discord.Message) {
	message := fmt.Sprintf("Usage: `%srm %s`", b.prefix, remindUsage)
	if err := b.discord.Reply(ctx, m, message); err != nil {
		log.Error().Err(err).Msg("Unable to send message")
	}
}
