package handlers

import (
	"github.com/rs/zerolog/log"
	"github.com/skwair/harmony"
	"github.com/youkoulayley/remindme-bot/pkg/trigger"
)

// ReactionAdd gets all reactions created.
// Reactions added by the bot are ignored.
func (h *Handler) ReactionAdd(r *harmony.MessageReaction) {
	if r.UserID == h.botUserID.Load() {
		log.Debug().Msg("Skipping reaction added by me")

		return
	}

	reaction := trigger.Reaction{
		MessageID: r.MessageID,
		UserID:    r.UserID,
		ChannelID: r.ChannelID,
	}

	if r.Emoji != nil {
		reaction.Emoji = r.Emoji.Name
	}

	h.reactions.Dispatch(h.ctx, reaction)
}
