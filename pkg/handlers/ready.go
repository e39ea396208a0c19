package handlers

import (
	"github.com/rs/zerolog/log"
	"github.com/skwair/harmony"
)

// Ready stores the identity of the bot once connected.
func (h *Handler) Ready(r *harmony.Ready) {
	if r.User == nil {
		log.Warn().Msg("Ready event without user")

		return
	}

	h.botUserID.Store(r.User.ID)

	log.Info().Str("userId", r.User.ID).Msgf("%s is connected!", r.User.Username)
}
