package handlers

import (
	"context"

	"github.com/skwair/harmony/discord"
	"github.com/stretchr/testify/mock"
	"github.com/youkoulayley/remindme-bot/pkg/trigger"
)

type routerMock struct {
	mock.Mock
}

func (r *routerMock) Dispatch(_ context.Context, m *discord.Message) {
	r.Called(m.Content)
}

type reactionsMock struct {
	mock.Mock
}

func (r *reactionsMock) Dispatch(_ context.Context, reaction trigger.Reaction) {
	r.Called(reaction)
}
