package router

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"github.com/skwair/harmony/discord"
)

// HandlerFunc runs a command.
type HandlerFunc func(ctx context.Context, m *discord.Message, args *Args) error

// Check decides whether a message is allowed to run a command.
// Returning a DenialError sends its reason to the channel, any other error fails silently.
type Check func(ctx context.Context, m *discord.Message) error

// Command describes a command. It is immutable once registered.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
	Bucket      string
	Checks      []Check
	Handler     HandlerFunc
}

// Discord is capable of interacting with Discord.
type Discord interface {
	SendMessage(ctx context.Context, channelID, text string) (*discord.Message, error)
}

// Router routes messages starting with a prefix to the matching command.
type Router struct {
	prefix  string
	discord Discord

	commands []*Command
	index    map[string]*Command
	buckets  map[string]*Bucket
}

// New creates a new Router.
func New(prefix string, d Discord) *Router {
	return &Router{
		prefix:  prefix,
		discord: d,
		index:   make(map[string]*Command),
		buckets: make(map[string]*Bucket),
	}
}

// AddBucket declares a bucket commands can refer to by name.
func (r *Router) AddBucket(name string, b *Bucket) {
	r.buckets[name] = b
}

// Register adds a command to the router.
func (r *Router) Register(c Command) error {
	if c.Name == "" || c.Handler == nil {
		return errors.New("command needs a name and a handler")
	}

	if c.Bucket != "" {
		if _, ok := r.buckets[c.Bucket]; !ok {
			return fmt.Errorf("command %q: unknown bucket %q", c.Name, c.Bucket)
		}
	}

	names := append([]string{c.Name}, c.Aliases...)
	for _, name := range names {
		if _, ok := r.index[name]; ok {
			return fmt.Errorf("command %q: name %q already registered", c.Name, name)
		}
	}

	cmd := c
	for _, name := range names {
		r.index[name] = &cmd
	}

	r.commands = append(r.commands, &cmd)

	log.Debug().Str("command", c.Name).Strs("aliases", c.Aliases).Msg("Command registered")

	return nil
}

// Commands returns the registered commands in registration order.
func (r *Router) Commands() []Command {
	commands := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		commands = append(commands, *c)
	}

	return commands
}

// Dispatch runs the command matching the message, if any.
func (r *Router) Dispatch(ctx context.Context, m *discord.Message) {
	if !strings.HasPrefix(m.Content, r.prefix) {
		return
	}

	body := strings.TrimPrefix(m.Content, r.prefix)
	if startsWithSpace(body) {
		return
	}

	args := NewArgs(body)

	name, ok := args.Next()
	if !ok {
		return
	}

	logger := log.With().Str("command", name).Str("userId", m.Author.ID).Logger()

	cmd, ok := r.index[name]
	if !ok {
		logger.Info().Msgf("Could not find command: %q", name)

		return
	}

	for _, check := range cmd.Checks {
		err := check(ctx, m)
		if err == nil {
			continue
		}

		var denial DenialError
		if errors.As(err, &denial) {
			r.send(ctx, m.ChannelID, denial.Reason)
		}

		logger.Debug().Err(err).Msg("Check failed")

		return
	}

	if cmd.Bucket != "" {
		if wait := r.buckets[cmd.Bucket].Take(m.Author.ID); wait > 0 {
			seconds := int64(math.Ceil(wait.Seconds()))

			logger.Debug().Int64("seconds", seconds).Msg("Rate limited")
			r.send(ctx, m.ChannelID, fmt.Sprintf("Try this again in %d seconds.", seconds))

			return
		}
	}

	if err := cmd.Handler(ctx, m, args); err != nil {
		logger.Error().Err(err).Msg("Unable to run command")
	}
}

// Help lists the registered commands.
func (r *Router) Help(ctx context.Context, m *discord.Message, _ *Args) error {
	var b strings.Builder

	b.WriteString("Available commands:\n")

	for _, c := range r.commands {
		b.WriteString("  - `" + r.prefix + c.Name)
		if c.Usage != "" {
			b.WriteString(" " + c.Usage)
		}
		b.WriteString("`")

		if len(c.Aliases) > 0 {
			b.WriteString(" (aliases: " + strings.Join(c.Aliases, ", ") + ")")
		}

		if c.Description != "" {
			b.WriteString(": " + c.Description)
		}

		b.WriteString("\n")
	}

	if _, err := r.discord.SendMessage(ctx, m.ChannelID, b.String()); err != nil {
		return fmt.Errorf("send help: %w", err)
	}

	return nil
}

func (r *Router) send(ctx context.Context, channelID, text string) {
	if _, err := r.discord.SendMessage(ctx, channelID, text); err != nil {
		log.Error().Err(err).Msg("Unable to send message")
	}
}

func startsWithSpace(s string) bool {
	return s != "" && unicode.IsSpace(rune(s[0]))
}
