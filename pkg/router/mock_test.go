package router

import (
	"context"

	"github.com/skwair/harmony/discord"
	"github.com/stretchr/testify/mock"
)

type discordMock struct {
	mock.Mock
}

func (d *discordMock) SendMessage(_ context.Context, channelID, text string) (*discord.Message, error) {
	ret := d.Called(channelID, text)

	return ret.Get(0).(*discord.Message), ret.Error(1)
}

type handlerMock struct {
	mock.Mock
}

func (h *handlerMock) Handle(_ context.Context, m *discord.Message, args *Args) error {
	return h.Called(m.Author.ID, args.Rest()).Error(0)
}
