package eventlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/PrizePool_Go/internal/event"
	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/utils"
)

// Service records contest, order and payout events for auditing
type Service interface {
	// Subscribe registers the event logger on every logged event type
	Subscribe(bus event.Bus) error

	// ListEvents returns logged events, newest first
	ListEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range LoggedEventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	logger.FromContext(context.Background()).Info(LogMsgSubscribed, LogFieldCount, len(LoggedEventTypes))
	return nil
}

// handleEvent flattens the typed payload into a map and stores it
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil {
		log.Warn(LogMsgEventPayloadNotDecoded, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}

	entry := Event{
		EventType: string(evt.Type),
		Version:   evt.Version,
		ContestID: stringField(payload, PayloadKeyContestID),
		UserID:    stringField(payload, PayloadKeyUserID),
		Payload:   payload,
	}
	if m, ok := evt.Metadata.(map[string]interface{}); ok {
		entry.Metadata = m
	}
	if entry.ContestID == nil {
		if id, ok := evt.GetMetadataValue(event.MetadataKeyContestID).(string); ok && id != "" {
			entry.ContestID = &id
		}
	}

	if err := s.repo.LogEvent(ctx, entry); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldContestID, entry.ContestID, LogFieldUserID, entry.UserID)
	return nil
}

func (s *service) ListEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	filter.Limit = utils.ClampLimit(filter.Limit, DefaultListLimit, MaxListLimit)

	events, err := s.repo.GetEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEvents, err)
	}
	return events, nil
}

func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, errors.New(ErrMsgInvalidRetentionDays)
	}
	count, err := s.repo.CleanupOldEvents(ctx, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanup, err)
	}
	return count, nil
}

func stringField(payload map[string]interface{}, key string) *string {
	if v, ok := payload[key].(string); ok && v != "" {
		return &v
	}
	return nil
}
