package reminder

import (
	"context"
	"time"

	"github.com/skwair/harmony/discord"
	"github.com/stretchr/testify/mock"
	"github.com/youkoulayley/remindme-bot/pkg/scheduler"
	"github.com/youkoulayley/remindme-bot/pkg/store"
	"github.com/youkoulayley/remindme-bot/pkg/trigger"
)

type discordMock struct {
	mock.Mock
}

func (d *discordMock) SendMessage(_ context.Context, channelID, text string) (*discord.Message, error) {
	ret := d.Called(channelID, text)

	return ret.Get(0).(*discord.Message), ret.Error(1)
}

type schedulerMock struct {
	mock.Mock
}

func (s *schedulerMock) Add(delay time.Duration, action scheduler.Action) string {
	return s.Called(delay, action).String(0)
}

type registryMock struct {
	mock.Mock
}

func (r *registryMock) Register(key trigger.Key, t trigger.Trigger) {
	r.Called(key, t)
}

type journalMock struct {
	mock.Mock
}

func (j *journalMock) RecordDelivery(_ context.Context, d store.Delivery) error {
	return j.Called(d).Error(0)
}

func (j *journalMock) AcknowledgeDelivery(_ context.Context, messageID, userID string, _ time.Time) error {
	return j.Called(messageID, userID).Error(0)
}
