package platform

import (
	"context"
	"fmt"

	"github.com/skwair/harmony"
	"github.com/skwair/harmony/discord"
)

// Discord sends messages through a harmony client.
type Discord struct {
	client *harmony.Client
}

// NewDiscord creates a new Discord.
func NewDiscord(c *harmony.Client) *Discord {
	return &Discord{client: c}
}

// SendMessage sends the text to the given channel.
func (d *Discord) SendMessage(ctx context.Context, channelID, text string) (*discord.Message, error) {
	msg, err := d.client.Channel(channelID).SendMessage(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("send message to channel %s: %w", channelID, err)
	}

	return msg, nil
}

// Reply answers the given message, mentioning its author.
func (d *Discord) Reply(ctx context.Context, m *discord.Message, text string) error {
	if _, err := d.SendMessage(ctx, m.ChannelID, Mention(m.Author.ID)+" "+text); err != nil {
		return fmt.Errorf("reply: %w", err)
	}

	return nil
}

// Mention returns the markup mentioning the given user.
func Mention(userID string) string {
	return "<@" + userID + ">"
}
