package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/skwair/harmony/discord"
)

const commandTimeout = 10 * time.Second

// MessageCreate gets all message created.
// All messages send by the bot are ignored.
func (h *Handler) MessageCreate(m *discord.Message) {
	if m.Author.ID == h.botUserID.Load() {
		log.Debug().Msg("Skipping message send by me")

		return
	}

	ctx, cancel := context.WithTimeout(h.ctx, commandTimeout)
	defer cancel()

	h.router.Dispatch(ctx, m)
}
