package handlers

import (
	"context"

	"github.com/skwair/harmony/discord"
	"github.com/youkoulayley/remindme-bot/pkg/trigger"
	"go.uber.org/atomic"
)

// Handler represents a Discord Handler.
type Handler struct {
	ctx       context.Context
	router    Router
	reactions Reactions

	botUserID *atomic.String
}

// New creates a new Handler. Work started by the handlers is canceled with ctx.
func New(ctx context.Context, r Router, reactions Reactions) *Handler {
	return &Handler{
		ctx:       ctx,
		router:    r,
		reactions: reactions,
		botUserID: atomic.NewString(""),
	}
}

// Router is capable of routing a message to a command.
type Router interface {
	Dispatch(ctx context.Context, m *discord.Message)
}

// Reactions is capable of dispatching reactions to the registered triggers.
type Reactions interface {
	Dispatch(ctx context.Context, r trigger.Reaction)
}

// BotUserID returns the ID of the bot user, empty until the bot is ready.
func (h *Handler) BotUserID() string {
	return h.botUserID.Load()
}
