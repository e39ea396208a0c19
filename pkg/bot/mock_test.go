package bot

import (
	"context"
	"time"

	"github.com/skwair/harmony/discord"
	"github.com/stretchr/testify/mock"
	"github.com/youkoulayley/remindme-bot/pkg/reminder"
	"github.com/youkoulayley/remindme-bot/pkg/store"
)

type discordMock struct {
	mock.Mock
}

func (d *discordMock) SendMessage(_ context.Context, channelID, text string) (*discord.Message, error) {
	ret := d.Called(channelID, text)

	return ret.Get(0).(*discord.Message), ret.Error(1)
}

func (d *discordMock) Reply(_ context.Context, m *discord.Message, text string) error {
	return d.Called(m.Author.ID, text).Error(0)
}

type reminderMock struct {
	mock.Mock
}

func (r *reminderMock) Schedule(remind reminder.Remind) (string, error) {
	ret := r.Called(remind)

	return ret.String(0), ret.Error(1)
}

func (r *reminderMock) MinDelay() time.Duration {
	return r.Called().Get(0).(time.Duration)
}

type historyMock struct {
	mock.Mock
}

func (h *historyMock) ListDeliveriesByUser(_ context.Context, userID string, limit int) ([]store.Delivery, error) {
	ret := h.Called(userID, limit)

	return ret.Get(0).([]store.Delivery), ret.Error(1)
}
