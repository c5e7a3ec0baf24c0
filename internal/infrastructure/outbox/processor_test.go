package outbox

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/domain/mocks"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func newTestProcessor(t *testing.T) (*Processor, *mocks.MockOutboxRepository, *mocks.MockEventPublisher) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOutboxRepository(ctrl)
	pub := mocks.NewMockEventPublisher(ctrl)
	p := NewProcessor(repo, pub, logger.NewLogger("test", "debug"), Config{BatchSize: 10, MaxRetries: 3})
	return p, repo, pub
}

func TestProcessEvents_PublishesAndMarksProcessed(t *testing.T) {
	p, repo, pub := newTestProcessor(t)

	events := []*domain.OutboxEvent{
		{ID: "a", Type: domain.EventTypeRoundSettled},
		{ID: "b", Type: domain.EventTypeBlackjackHandFinished},
	}
	repo.EXPECT().GetPendingEvents(gomock.Any(), 10).Return(events, nil)
	pub.EXPECT().Publish(gomock.Any(), events[0]).Return(nil)
	pub.EXPECT().Publish(gomock.Any(), events[1]).Return(nil)
	repo.EXPECT().MarkAsProcessed(gomock.Any(), "a").Return(nil)
	repo.EXPECT().MarkAsProcessed(gomock.Any(), "b").Return(nil)

	assert.NoError(t, p.ProcessEvents())
}

func TestProcessEvents_RetryThenFail(t *testing.T) {
	tests := []struct {
		name       string
		retryCount int
		expectFail bool
	}{
		{name: "FirstFailure_Retries", retryCount: 0, expectFail: false},
		{name: "BelowLimit_Retries", retryCount: 1, expectFail: false},
		{name: "LastAttempt_MarkedFailed", retryCount: 2, expectFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, repo, pub := newTestProcessor(t)

			event := &domain.OutboxEvent{ID: "x", Type: domain.EventTypeRoundSettled, RetryCount: tt.retryCount}
			repo.EXPECT().GetPendingEvents(gomock.Any(), 10).Return([]*domain.OutboxEvent{event}, nil)
			pub.EXPECT().Publish(gomock.Any(), event).Return(errors.New("broker down"))
			if tt.expectFail {
				repo.EXPECT().MarkAsFailed(gomock.Any(), "x", gomock.Any()).Return(nil)
			} else {
				repo.EXPECT().IncrementRetryCount(gomock.Any(), "x").Return(nil)
			}

			assert.NoError(t, p.ProcessEvents())
		})
	}
}

func TestProcessEvent_UnknownType(t *testing.T) {
	p, _, _ := newTestProcessor(t)
	err := p.ProcessEvent(&domain.OutboxEvent{ID: "u", Type: "SOMETHING_ELSE"})
	assert.Error(t, err)
}

func TestProcessEvents_RepositoryError(t *testing.T) {
	p, repo, _ := newTestProcessor(t)
	repo.EXPECT().GetPendingEvents(gomock.Any(), 10).Return(nil, errors.New("db down"))
	assert.Error(t, p.ProcessEvents())
}

func TestStartStopBackgroundProcessing(t *testing.T) {
	p, repo, _ := newTestProcessor(t)
	repo.EXPECT().GetPendingEvents(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	p.StartBackgroundProcessing()
	p.StartBackgroundProcessing()
	p.StopBackgroundProcessing()
	assert.Error(t, p.ProcessEvents())
}
