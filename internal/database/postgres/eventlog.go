package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PrizePool_Go/internal/eventlog"
)

const eventColumns = `id, event_type, version, contest_id, user_id, payload, metadata, created_at`

const (
	insertEventSQL = `
		INSERT INTO events (event_type, version, contest_id, user_id, payload, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)`

	cleanupEventsSQL = `
		DELETE FROM events
		WHERE created_at < NOW() - INTERVAL '1 day' * $1`
)

// EventLogRepository implements eventlog.Repository for PostgreSQL
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

var _ eventlog.Repository = (*EventLogRepository)(nil)

// LogEvent stores an event in the database
func (r *EventLogRepository) LogEvent(ctx context.Context, evt eventlog.Event) error {
	payload := evt.Payload
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payloadJSON, err := marshalJSON("payload", payload)
	if err != nil {
		return err
	}

	var metadataJSON []byte
	if evt.Metadata != nil {
		if metadataJSON, err = marshalJSON("metadata", evt.Metadata); err != nil {
			return err
		}
	}

	if _, err := r.db.Exec(ctx, insertEventSQL,
		evt.EventType, evt.Version, evt.ContestID, evt.UserID, payloadJSON, metadataJSON,
	); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertEvent, err)
	}
	return nil
}

// GetEvents retrieves events based on filter criteria, newest first
func (r *EventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if filter.ContestID != nil {
		add("contest_id = $%d", *filter.ContestID)
	}
	if filter.UserID != nil {
		add("user_id = $%d", *filter.UserID)
	}
	if filter.EventType != nil {
		add("event_type = $%d", *filter.EventType)
	}
	if filter.Since != nil {
		add("created_at >= $%d", *filter.Since)
	}
	if filter.Until != nil {
		add("created_at <= $%d", *filter.Until)
	}

	var query strings.Builder
	query.WriteString(`SELECT ` + eventColumns + ` FROM events`)
	if len(where) > 0 {
		query.WriteString(` WHERE ` + strings.Join(where, " AND "))
	}
	args = append(args, clampLimit(filter.Limit))
	fmt.Fprintf(&query, ` ORDER BY created_at DESC, id DESC LIMIT $%d`, len(args))

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	return events, nil
}

// CleanupOldEvents removes events older than the specified number of days
func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	tag, err := r.db.Exec(ctx, cleanupEventsSQL, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteEvents, err)
	}
	return tag.RowsAffected(), nil
}

func scanEvents(rows pgx.Rows) ([]eventlog.Event, error) {
	events := []eventlog.Event{}
	for rows.Next() {
		var (
			evt                       eventlog.Event
			payloadJSON, metadataJSON []byte
		)
		if err := rows.Scan(
			&evt.ID, &evt.EventType, &evt.Version, &evt.ContestID, &evt.UserID,
			&payloadJSON, &metadataJSON, &evt.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := unmarshalJSON("payload", payloadJSON, &evt.Payload); err != nil {
			return nil, err
		}
		if err := unmarshalJSON("metadata", metadataJSON, &evt.Metadata); err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	return events, rows.Err()
}
