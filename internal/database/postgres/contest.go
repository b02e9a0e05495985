package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/repository"
)

const contestColumns = `contest_id, name, category, description, unit, currency, result_symbol, status,
	min_prediction::text, max_prediction::text, increment::text, entries_per_prediction,
	pricing_type, flat_price::text, tiers, prize_pool::text, place_percentages, total_entries,
	start_time, end_time, actual_value::text, winning_order_ids, winners, prize_distributed, ended_at,
	is_deleted, created_at, updated_at`

const (
	insertContestSQL = `
		INSERT INTO contests (
			contest_id, name, category, description, unit, currency, result_symbol, status,
			min_prediction, max_prediction, increment, entries_per_prediction,
			pricing_type, flat_price, tiers, prize_pool, place_percentages, total_entries,
			start_time, end_time, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9::numeric, $10::numeric, $11::numeric, $12,
			$13, $14::numeric, $15, $16::numeric, $17, $18,
			$19, $20, $21, $22
		)`

	insertPredictionSQL = `
		INSERT INTO contest_predictions (contest_id, tier_id, position, value, price, current_entries, max_entries)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7)`

	selectPredictionsSQL = `
		SELECT contest_id, tier_id, value::text, price::text, current_entries, max_entries
		FROM contest_predictions
		WHERE contest_id = ANY($1::text[]::uuid[])
		ORDER BY contest_id, position`

	lockContestSQL = `
		SELECT status, total_entries, is_deleted FROM contests WHERE contest_id = $1 FOR UPDATE`

	deletePredictionsSQL = `DELETE FROM contest_predictions WHERE contest_id = $1`

	touchContestSQL = `UPDATE contests SET updated_at = NOW() WHERE contest_id = $1`

	publishContestSQL = `
		UPDATE contests SET status = 'Active', updated_at = NOW()
		WHERE contest_id = $1 AND status = 'Draft' AND NOT is_deleted
		  AND EXISTS (SELECT 1 FROM contest_predictions p WHERE p.contest_id = contests.contest_id)`

	unpublishContestSQL = `
		UPDATE contests SET status = 'Draft', updated_at = NOW()
		WHERE contest_id = $1 AND status = 'Active' AND total_entries = 0
		  AND NOT prize_distributed AND NOT is_deleted`

	softDeleteContestSQL = `
		UPDATE contests SET is_deleted = TRUE, status = 'Deleted', updated_at = NOW()
		WHERE contest_id = $1 AND NOT is_deleted AND status <> 'Completed'
		  AND NOT (status = 'Active' AND total_entries > 0)`
)

// ContestRepository implements repository.Contest for PostgreSQL
type ContestRepository struct {
	db *pgxpool.Pool
}

// NewContestRepository creates a new ContestRepository
func NewContestRepository(db *pgxpool.Pool) *ContestRepository {
	return &ContestRepository{db: db}
}

var _ repository.Contest = (*ContestRepository)(nil)

// CreateContest inserts the contest and its generated slots in one transaction
func (r *ContestRepository) CreateContest(ctx context.Context, contest *domain.Contest) error {
	tiers, err := marshalJSON("tiers", contest.Tiers)
	if err != nil {
		return err
	}
	places, err := marshalJSON("place_percentages", contest.PlacePercentages)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	_, err = tx.Exec(ctx, insertContestSQL,
		contest.ID, contest.Name, contest.Category, contest.Description, contest.Unit,
		contest.Currency, contest.ResultSymbol, string(contest.Status),
		numericParam(contest.MinPrediction), numericParam(contest.MaxPrediction),
		numericParam(contest.Increment), contest.NumberOfEntriesPerPrediction,
		string(contest.PricingType), numericParam(contest.FlatPrice), tiers,
		numericParam(contest.PrizePool), places, contest.TotalEntries,
		contest.StartTime, contest.EndTime, contest.CreatedAt, contest.UpdatedAt,
	)
	if err != nil {
		if isPgError(err, PgErrorCodeUniqueViolation) {
			return fmt.Errorf("%w: contest %s already exists", domain.ErrInvalidInput, contest.ID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertContest, err)
	}

	if err := insertPredictions(ctx, tx, contest.ID, contest.GeneratedPredictions); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return nil
}

func insertPredictions(ctx context.Context, q querier, contestID uuid.UUID, predictions []domain.GeneratedPrediction) error {
	if len(predictions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, p := range predictions {
		batch.Queue(insertPredictionSQL,
			contestID, p.TierID, i, numericParam(p.Value), numericParam(p.Price), p.CurrentEntries, p.MaxEntries)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()
	for range predictions {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToInsertPredictions, err)
		}
	}
	return nil
}

// GetContest returns the contest with its slots, or (nil, nil) when it does not exist
func (r *ContestRepository) GetContest(ctx context.Context, id uuid.UUID) (*domain.Contest, error) {
	return getContest(ctx, r.db, id)
}

func getContest(ctx context.Context, q querier, id uuid.UUID) (*domain.Contest, error) {
	row := q.QueryRow(ctx, `SELECT `+contestColumns+` FROM contests WHERE contest_id = $1`, id)
	contest, err := scanContest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetContest, err)
	}

	contests := []domain.Contest{*contest}
	if err := attachPredictions(ctx, q, contests); err != nil {
		return nil, err
	}
	return &contests[0], nil
}

// ListContests returns contests newest first
func (r *ContestRepository) ListContests(ctx context.Context, filter repository.ContestFilter) ([]domain.Contest, error) {
	var (
		where []string
		args  []any
	)
	if !filter.IncludeDeleted {
		where = append(where, "NOT is_deleted")
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	args = append(args, clampLimit(filter.Limit))

	query := `SELECT ` + contestColumns + ` FROM contests`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, contest_id LIMIT $%d`, len(args))

	return r.queryContests(ctx, query, args...)
}

// ListActiveContestsEndingBefore returns unsettled Active contests whose end time is at or before the cutoff
func (r *ContestRepository) ListActiveContestsEndingBefore(ctx context.Context, before time.Time) ([]domain.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests
		WHERE status = 'Active' AND NOT is_deleted AND NOT prize_distributed
		  AND end_time IS NOT NULL AND end_time <= $1
		ORDER BY end_time, contest_id`
	return r.queryContests(ctx, query, before)
}

func (r *ContestRepository) queryContests(ctx context.Context, query string, args ...any) ([]domain.Contest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListContests, err)
	}
	defer rows.Close()

	contests := []domain.Contest{}
	for rows.Next() {
		c, err := scanContest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListContests, err)
		}
		contests = append(contests, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListContests, err)
	}

	if err := attachPredictions(ctx, r.db, contests); err != nil {
		return nil, err
	}
	return contests, nil
}

// ReplacePredictions swaps the slot list while the contest row is locked
func (r *ContestRepository) ReplacePredictions(ctx context.Context, contestID uuid.UUID, predictions []domain.GeneratedPrediction) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	var (
		status       string
		totalEntries int
		isDeleted    bool
	)
	if err := tx.QueryRow(ctx, lockContestSQL, contestID).Scan(&status, &totalEntries, &isDeleted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", domain.ErrContestNotFound, contestID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToLockContest, err)
	}

	locked := &domain.Contest{Status: domain.ContestStatus(status), TotalEntries: totalEntries, IsDeleted: isDeleted}
	if isDeleted || !locked.CanRegenerate() {
		return fmt.Errorf("%w: contest %s is %s with %d entries", domain.ErrRegenerationLocked, contestID, status, totalEntries)
	}

	if _, err := tx.Exec(ctx, deletePredictionsSQL, contestID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeletePredictions, err)
	}
	if err := insertPredictions(ctx, tx, contestID, predictions); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, touchContestSQL, contestID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateContest, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return nil
}

// PublishContest moves a Draft contest with slots to Active
func (r *ContestRepository) PublishContest(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.execRows(ctx, publishContestSQL, id)
}

// UnpublishContest moves an Active contest without entries back to Draft
func (r *ContestRepository) UnpublishContest(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.execRows(ctx, unpublishContestSQL, id)
}

// SoftDeleteContest marks the contest deleted unless it is Completed or has entries
func (r *ContestRepository) SoftDeleteContest(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.execRows(ctx, softDeleteContestSQL, id)
}

func (r *ContestRepository) execRows(ctx context.Context, query string, id uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateContest, err)
	}
	return tag.RowsAffected(), nil
}

func scanContest(row pgx.Row) (*domain.Contest, error) {
	var (
		c                                      domain.Contest
		status, pricingType                    string
		minPred, maxPred, increment, flatPrice string
		prizePool                              string
		actualValue                            *string
		tiers, places, winningIDs, winners     []byte
	)

	err := row.Scan(
		&c.ID, &c.Name, &c.Category, &c.Description, &c.Unit, &c.Currency, &c.ResultSymbol, &status,
		&minPred, &maxPred, &increment, &c.NumberOfEntriesPerPrediction,
		&pricingType, &flatPrice, &tiers, &prizePool, &places, &c.TotalEntries,
		&c.StartTime, &c.EndTime, &actualValue, &winningIDs, &winners, &c.Results.PrizeDistributed, &c.Results.EndedAt,
		&c.IsDeleted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Status = domain.ContestStatus(status)
	c.PricingType = domain.PricingType(pricingType)
	c.Currency = strings.TrimSpace(c.Currency)

	if c.MinPrediction, err = parseNumeric(minPred); err != nil {
		return nil, err
	}
	if c.MaxPrediction, err = parseNumeric(maxPred); err != nil {
		return nil, err
	}
	if c.Increment, err = parseNumeric(increment); err != nil {
		return nil, err
	}
	if c.FlatPrice, err = parseNumeric(flatPrice); err != nil {
		return nil, err
	}
	if c.PrizePool, err = parseNumeric(prizePool); err != nil {
		return nil, err
	}
	if c.Results.ActualValue, err = parseNullableNumeric(actualValue); err != nil {
		return nil, err
	}

	if err := unmarshalJSON("tiers", tiers, &c.Tiers); err != nil {
		return nil, err
	}
	if err := unmarshalJSON("place_percentages", places, &c.PlacePercentages); err != nil {
		return nil, err
	}
	if err := unmarshalJSON("winning_order_ids", winningIDs, &c.Results.WinningOrderIDs); err != nil {
		return nil, err
	}
	if err := unmarshalJSON("winners", winners, &c.Results.Winners); err != nil {
		return nil, err
	}

	c.GeneratedPredictions = []domain.GeneratedPrediction{}
	return &c, nil
}

// attachPredictions loads the slots of every contest in one query
func attachPredictions(ctx context.Context, q querier, contests []domain.Contest) error {
	if len(contests) == 0 {
		return nil
	}

	ids := make([]string, len(contests))
	index := make(map[uuid.UUID]int, len(contests))
	for i, c := range contests {
		ids[i] = c.ID.String()
		index[c.ID] = i
	}

	rows, err := q.Query(ctx, selectPredictionsSQL, ids)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToGetPredictions, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			contestID    uuid.UUID
			p            domain.GeneratedPrediction
			value, price string
		)
		if err := rows.Scan(&contestID, &p.TierID, &value, &price, &p.CurrentEntries, &p.MaxEntries); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToGetPredictions, err)
		}
		if p.Value, err = parseNumeric(value); err != nil {
			return err
		}
		if p.Price, err = parseNumeric(price); err != nil {
			return err
		}
		p.Refresh()

		i, ok := index[contestID]
		if !ok {
			continue
		}
		contests[i].GeneratedPredictions = append(contests[i].GeneratedPredictions, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToGetPredictions, err)
	}
	return nil
}
