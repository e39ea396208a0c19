package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/skwair/harmony/discord"
	"github.com/youkoulayley/remindme-bot/pkg/scheduler"
	"github.com/youkoulayley/remindme-bot/pkg/store"
	"github.com/youkoulayley/remindme-bot/pkg/trigger"
)

// DefaultRetryDelay is the delay before sending again a reminder that could not be sent.
const DefaultRetryDelay = 5 * time.Second

// Acknowledgement is sent when the user reacts to a reminder.
const Acknowledgement = "Thanks for reacting!"

const sendTimeout = 10 * time.Second

var (
	// ErrDelayTooShort is returned when the delay is under the configured minimum.
	ErrDelayTooShort = errors.New("delay too short")
	// ErrEmptyText is returned when there is nothing to remind.
	ErrEmptyText = errors.New("empty text")
)

// Discord is capable of interacting with Discord.
type Discord interface {
	SendMessage(ctx context.Context, channelID, text string) (*discord.Message, error)
}

// Scheduler is capable of scheduling actions.
type Scheduler interface {
	Add(delay time.Duration, action scheduler.Action) string
}

// Registry is capable of registering reaction triggers.
type Registry interface {
	Register(key trigger.Key, t trigger.Trigger)
}

// Journal is capable of recording the reminders sent.
type Journal interface {
	RecordDelivery(ctx context.Context, d store.Delivery) error
	AcknowledgeDelivery(ctx context.Context, messageID, userID string, at time.Time) error
}

// Config configures the Reminder.
type Config struct {
	// RetryDelay is the delay before sending again a reminder that failed.
	RetryDelay time.Duration
	// MaxRetries is the number of consecutive failed sends after which a reminder is dropped. 0 means never.
	MaxRetries int
	// MinDelay is the smallest delay accepted.
	MinDelay time.Duration
}

// Remind describes a reminder asked by a user.
type Remind struct {
	ChannelID string
	UserID    string
	Text      string
	Delay     time.Duration
	Repeat    bool
}

// Reminder sends reminders and thanks the users reacting to them.
type Reminder struct {
	scheduler Scheduler
	registry  Registry
	discord   Discord
	journal   Journal

	cfg Config
}

// New creates a new Reminder. The journal is optional.
func New(s Scheduler, r Registry, d Discord, j Journal, cfg Config) *Reminder {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}

	return &Reminder{
		scheduler: s,
		registry:  r,
		discord:   d,
		journal:   j,
		cfg:       cfg,
	}
}

// MinDelay returns the smallest delay accepted.
func (r *Reminder) MinDelay() time.Duration {
	return r.cfg.MinDelay
}

// Schedule schedules the reminder and returns the ID of its task.
func (r *Reminder) Schedule(remind Remind) (string, error) {
	if remind.Delay < r.cfg.MinDelay {
		return "", fmt.Errorf("%w: %s < %s", ErrDelayTooShort, remind.Delay, r.cfg.MinDelay)
	}

	if remind.Text == "" {
		return "", ErrEmptyText
	}

	id := r.scheduler.Add(remind.Delay, &delivery{reminder: r, remind: remind})

	log.Debug().
		Str("task", id).
		Str("userId", remind.UserID).
		Dur("delay", remind.Delay).
		Bool("repeat", remind.Repeat).
		Msg("Reminder scheduled")

	return id, nil
}

// delivery sends a reminder each time its task fires.
type delivery struct {
	reminder *Reminder
	remind   Remind

	failures int
}

// Run sends the reminder and decides when to send it again.
func (d *delivery) Run(ctx context.Context) scheduler.Result {
	r := d.reminder

	logger := log.With().Str("userId", d.remind.UserID).Str("channelId", d.remind.ChannelID).Logger()

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	msg, err := r.discord.SendMessage(sendCtx, d.remind.ChannelID, d.remind.Text)
	if err != nil {
		d.failures++

		if r.cfg.MaxRetries > 0 && d.failures > r.cfg.MaxRetries {
			logger.Error().Err(err).Int("failures", d.failures).Msg("Unable to send reminder message, giving up")

			return scheduler.Done()
		}

		logger.Error().Err(err).Dur("retryIn", r.cfg.RetryDelay).Msg("Unable to send reminder message")

		return scheduler.RepeatAt(time.Now().Add(r.cfg.RetryDelay))
	}

	d.failures = 0

	r.registry.Register(
		trigger.Key{MessageID: msg.ID, UserID: d.remind.UserID},
		&acknowledgement{reminder: r, channelID: d.remind.ChannelID},
	)

	if r.journal != nil {
		err = r.journal.RecordDelivery(sendCtx, store.Delivery{
			MessageID: msg.ID,
			ChannelID: d.remind.ChannelID,
			UserID:    d.remind.UserID,
			Text:      d.remind.Text,
			Repeat:    d.remind.Repeat,
			SentAt:    time.Now(),
		})
		if err != nil {
			logger.Error().Err(err).Msg("Unable to record delivery")
		}
	}

	if d.remind.Repeat {
		return scheduler.RepeatAt(time.Now().Add(d.remind.Delay))
	}

	return scheduler.Done()
}

// acknowledgement thanks the user for reacting to a reminder, once.
type acknowledgement struct {
	reminder  *Reminder
	channelID string
}

// React sends the acknowledgement and stops listening, even if the message could not be sent.
func (a *acknowledgement) React(ctx context.Context, reaction trigger.Reaction) trigger.Decision {
	r := a.reminder

	logger := log.With().Str("userId", reaction.UserID).Str("messageId", reaction.MessageID).Logger()

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if _, err := r.discord.SendMessage(sendCtx, a.channelID, Acknowledgement); err != nil {
		logger.Error().Err(err).Msg("Unable to send acknowledgement")
	}

	if r.journal != nil {
		err := r.journal.AcknowledgeDelivery(sendCtx, reaction.MessageID, reaction.UserID, time.Now())
		if err != nil {
			logger.Error().Err(err).Msg("Unable to acknowledge delivery")
		}
	}

	return trigger.StopListening
}
