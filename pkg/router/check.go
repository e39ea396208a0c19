package router

import (
	"context"

	"github.com/skwair/harmony/discord"
)

// OwnerOnly allows only the given user to run the command.
// Anyone else is denied silently. An empty ownerID denies everybody.
func OwnerOnly(ownerID string) Check {
	return func(_ context.Context, m *discord.Message) error {
		if ownerID == "" || m.Author.ID != ownerID {
			return ErrCheckFailed
		}

		return nil
	}
}
