package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/skwair/harmony/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/youkoulayley/remindme-bot/pkg/scheduler"
	"github.com/youkoulayley/remindme-bot/pkg/store"
	"github.com/youkoulayley/remindme-bot/pkg/trigger"
)

const (
	testChannelID = "10"
	testUserID    = "2"
	testMessageID = "42"
)

// scheduleAction schedules the remind on a scheduler mock and returns the scheduled action.
func scheduleAction(t *testing.T, r *Reminder, s *schedulerMock, remind Remind) scheduler.Action {
	t.Helper()

	var action scheduler.Action
	s.On("Add", remind.Delay, mock.Anything).
		Run(func(args mock.Arguments) { action = args.Get(1).(scheduler.Action) }).
		Return("task").
		Once()

	id, err := r.Schedule(remind)
	require.NoError(t, err)
	assert.Equal(t, "task", id)
	require.NotNil(t, action)

	return action
}

func TestReminder_Schedule_validation(t *testing.T) {
	tests := []struct {
		desc    string
		remind  Remind
		wantErr error
	}{
		{
			desc:    "delay too short",
			remind:  Remind{Text: "hello", Delay: 100 * time.Millisecond},
			wantErr: ErrDelayTooShort,
		},
		{
			desc:    "empty text",
			remind:  Remind{Delay: time.Second},
			wantErr: ErrEmptyText,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			s := &schedulerMock{}
			r := New(s, &registryMock{}, &discordMock{}, nil, Config{MinDelay: 500 * time.Millisecond})

			_, err := r.Schedule(test.remind)
			assert.ErrorIs(t, err, test.wantErr)

			s.AssertExpectations(t)
		})
	}
}

func TestReminder_delivery(t *testing.T) {
	tests := []struct {
		desc   string
		repeat bool
	}{
		{
			desc: "once",
		},
		{
			desc:   "repeated",
			repeat: true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			remind := Remind{ChannelID: testChannelID, UserID: testUserID, Text: "hello", Delay: time.Second, Repeat: test.repeat}

			d := &discordMock{}
			d.On("SendMessage", testChannelID, "hello").Return(&discord.Message{ID: testMessageID}, nil).Once()

			reg := &registryMock{}
			reg.On("Register", trigger.Key{MessageID: testMessageID, UserID: testUserID}, mock.Anything).Once()

			j := &journalMock{}
			j.On("RecordDelivery", mock.MatchedBy(func(del store.Delivery) bool {
				return del.MessageID == testMessageID &&
					del.ChannelID == testChannelID &&
					del.UserID == testUserID &&
					del.Text == "hello" &&
					del.Repeat == test.repeat &&
					time.Since(del.SentAt) < time.Minute
			})).Return(nil).Once()

			s := &schedulerMock{}
			r := New(s, reg, d, j, Config{})

			res := scheduleAction(t, r, s, remind).Run(context.Background())

			if test.repeat {
				require.False(t, res.IsDone())
				assert.WithinDuration(t, time.Now().Add(time.Second), res.At(), 100*time.Millisecond)
			} else {
				assert.True(t, res.IsDone())
			}

			s.AssertExpectations(t)
			d.AssertExpectations(t)
			reg.AssertExpectations(t)
			j.AssertExpectations(t)
		})
	}
}

func TestReminder_delivery_sendError(t *testing.T) {
	tests := []struct {
		desc   string
		repeat bool
	}{
		{
			desc: "once",
		},
		{
			desc:   "repeated",
			repeat: true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			remind := Remind{ChannelID: testChannelID, UserID: testUserID, Text: "hello", Delay: time.Minute, Repeat: test.repeat}

			d := &discordMock{}
			d.On("SendMessage", testChannelID, "hello").Return((*discord.Message)(nil), errors.New("boom")).Once()

			reg := &registryMock{}
			j := &journalMock{}

			s := &schedulerMock{}
			r := New(s, reg, d, j, Config{})

			res := scheduleAction(t, r, s, remind).Run(context.Background())

			require.False(t, res.IsDone())
			assert.WithinDuration(t, time.Now().Add(DefaultRetryDelay), res.At(), 100*time.Millisecond)

			d.AssertExpectations(t)
			reg.AssertExpectations(t)
			j.AssertExpectations(t)
		})
	}
}

func TestReminder_delivery_maxRetries(t *testing.T) {
	remind := Remind{ChannelID: testChannelID, UserID: testUserID, Text: "hello", Delay: time.Second}

	d := &discordMock{}
	d.On("SendMessage", testChannelID, "hello").Return((*discord.Message)(nil), errors.New("boom")).Times(3)

	s := &schedulerMock{}
	r := New(s, &registryMock{}, d, nil, Config{MaxRetries: 2})

	action := scheduleAction(t, r, s, remind)

	assert.False(t, action.Run(context.Background()).IsDone())
	assert.False(t, action.Run(context.Background()).IsDone())
	assert.True(t, action.Run(context.Background()).IsDone())

	d.AssertExpectations(t)
}

func TestReminder_delivery_retryResetsAfterSuccess(t *testing.T) {
	remind := Remind{ChannelID: testChannelID, UserID: testUserID, Text: "hello", Delay: time.Second, Repeat: true}

	d := &discordMock{}
	d.On("SendMessage", testChannelID, "hello").Return((*discord.Message)(nil), errors.New("boom")).Once()
	d.On("SendMessage", testChannelID, "hello").Return(&discord.Message{ID: testMessageID}, nil).Once()
	d.On("SendMessage", testChannelID, "hello").Return((*discord.Message)(nil), errors.New("boom")).Once()

	reg := &registryMock{}
	reg.On("Register", mock.Anything, mock.Anything).Once()

	s := &schedulerMock{}
	r := New(s, reg, d, nil, Config{MaxRetries: 1})

	action := scheduleAction(t, r, s, remind)

	assert.False(t, action.Run(context.Background()).IsDone())
	assert.False(t, action.Run(context.Background()).IsDone())
	assert.False(t, action.Run(context.Background()).IsDone())

	d.AssertExpectations(t)
	reg.AssertExpectations(t)
}

func TestReminder_delivery_journalError(t *testing.T) {
	remind := Remind{ChannelID: testChannelID, UserID: testUserID, Text: "hello", Delay: time.Second}

	d := &discordMock{}
	d.On("SendMessage", testChannelID, "hello").Return(&discord.Message{ID: testMessageID}, nil).Once()

	reg := &registryMock{}
	reg.On("Register", mock.Anything, mock.Anything).Once()

	j := &journalMock{}
	j.On("RecordDelivery", mock.Anything).Return(errors.New("boom")).Once()

	s := &schedulerMock{}
	r := New(s, reg, d, j, Config{})

	assert.True(t, scheduleAction(t, r, s, remind).Run(context.Background()).IsDone())

	d.AssertExpectations(t)
	reg.AssertExpectations(t)
	j.AssertExpectations(t)
}

func TestReminder_acknowledgement(t *testing.T) {
	tests := []struct {
		desc         string
		discordError error
		journalError error
	}{
		{
			desc: "acknowledged",
		},
		{
			desc:         "discord blew up",
			discordError: errors.New("boom"),
		},
		{
			desc:         "journal blew up",
			journalError: errors.New("boom"),
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			d := &discordMock{}
			d.On("SendMessage", testChannelID, Acknowledgement).Return(&discord.Message{}, test.discordError).Once()

			j := &journalMock{}
			j.On("AcknowledgeDelivery", testMessageID, testUserID).Return(test.journalError).Once()

			r := New(&schedulerMock{}, &registryMock{}, d, j, Config{})
			ack := &acknowledgement{reminder: r, channelID: testChannelID}

			decision := ack.React(context.Background(), trigger.Reaction{MessageID: testMessageID, UserID: testUserID})

			assert.Equal(t, trigger.StopListening, decision)

			d.AssertExpectations(t)
			j.AssertExpectations(t)
		})
	}
}

// recorder is a Discord fake recording the messages sent.
type recorder struct {
	mu       sync.Mutex
	sent     []sent
	failures int
}

type sent struct {
	text string
	at   time.Time
}

func (r *recorder) SendMessage(_ context.Context, _ string, text string) (*discord.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failures > 0 {
		r.failures--
		r.sent = append(r.sent, sent{text: "<failed>", at: time.Now()})

		return nil, errors.New("boom")
	}

	r.sent = append(r.sent, sent{text: text, at: time.Now()})

	return &discord.Message{ID: "msg-" + time.Now().String()}, nil
}

func (r *recorder) messages() []sent {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]sent(nil), r.sent...)
}

func TestReminder_retryAfterSendFailure(t *testing.T) {
	rec := &recorder{failures: 1}
	s := scheduler.New(scheduler.WithTick(10 * time.Millisecond))
	reg := trigger.New()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go s.Run(ctx)

	retryDelay := 300 * time.Millisecond
	r := New(s, reg, rec, nil, Config{RetryDelay: retryDelay})

	_, err := r.Schedule(Remind{ChannelID: testChannelID, UserID: testUserID, Text: "hello", Delay: 50 * time.Millisecond})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return s.Len() == 0 }, 2*time.Second, 10*time.Millisecond)

	msgs := rec.messages()
	require.Len(t, msgs, 2)

	assert.Equal(t, "<failed>", msgs[0].text)
	assert.Equal(t, "hello", msgs[1].text)
	assert.GreaterOrEqual(t, msgs[1].at.Sub(msgs[0].at), retryDelay)
	assert.Equal(t, 1, reg.Len())
}
