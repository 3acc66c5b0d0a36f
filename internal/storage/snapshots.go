package db

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/platform/observability"
)

const (
	snapshotWriteModeInsert = "insert"
	snapshotWriteModeUpdate = "update"
)

const snapshotColumns = `
	id, user_id, slug, timeframe, geo, term_a, term_b,
	winner, winner_score, loser_score, category,
	margin_points, confidence, volatility, agreement_index, computed_at`

// SaveComparisonSnapshot persists a snapshot with the dedup-or-append rule.
// A per-key advisory lock serializes concurrent writers so the latest-row
// check and the write happen atomically.
func (db *DB) SaveComparisonSnapshot(ctx context.Context, snapshot *domain.ComparisonSnapshot) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot save: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx) //nolint:errcheck // best-effort rollback
	}()

	// Transaction-scoped lock, released automatically at commit or rollback.
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", snapshotLockID(snapshot.Key)); err != nil {
		return fmt.Errorf("acquire snapshot lock: %w", err)
	}

	prev, err := latestSnapshotTx(ctx, tx, snapshot.Key)
	if err != nil {
		return err
	}

	mode := snapshotWriteModeInsert

	if domain.ShouldUpdateInPlace(prev, snapshot) {
		mode = snapshotWriteModeUpdate

		if err := updateSnapshotTx(ctx, tx, prev.ID, snapshot); err != nil {
			return err
		}
	} else if err := insertSnapshotTx(ctx, tx, snapshot); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot save: %w", err)
	}

	observability.SnapshotWrites.WithLabelValues(mode).Inc()

	return nil
}

// GetLatestSnapshot returns the newest snapshot for key.
func (db *DB) GetLatestSnapshot(ctx context.Context, key domain.ComparisonKey) (*domain.ComparisonSnapshot, error) {
	row := db.Pool.QueryRow(ctx, `
		SELECT`+snapshotColumns+`
		FROM comparison_snapshots
		WHERE user_id = $1 AND slug = $2 AND timeframe = $3 AND geo = $4
		ORDER BY computed_at DESC
		LIMIT 1
	`, key.UserID, key.Slug, key.Timeframe, key.Geo)

	snapshot, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil //nolint:nilnil // nil,nil indicates no snapshot stored
		}

		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}

	return snapshot, nil
}

// GetSnapshotHistory returns snapshots for key newest-first, up to limit.
func (db *DB) GetSnapshotHistory(ctx context.Context, key domain.ComparisonKey, limit int) ([]domain.ComparisonSnapshot, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT`+snapshotColumns+`
		FROM comparison_snapshots
		WHERE user_id = $1 AND slug = $2 AND timeframe = $3 AND geo = $4
		ORDER BY computed_at DESC
		LIMIT $5
	`, key.UserID, key.Slug, key.Timeframe, key.Geo, limit)
	if err != nil {
		return nil, fmt.Errorf("get snapshot history: %w", err)
	}
	defer rows.Close()

	history := []domain.ComparisonSnapshot{}

	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}

		history = append(history, *snapshot)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", rows.Err())
	}

	return history, nil
}

// PruneSnapshotHistory keeps the newest keepPerKey rows per comparison key
// and deletes the rest. Returns the number of deleted rows.
func (db *DB) PruneSnapshotHistory(ctx context.Context, keepPerKey int) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM comparison_snapshots
		WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY user_id, slug, timeframe, geo
					ORDER BY computed_at DESC
				) AS rn
				FROM comparison_snapshots
			) ranked
			WHERE ranked.rn > $1
		)
	`, keepPerKey)
	if err != nil {
		return 0, fmt.Errorf("prune snapshot history: %w", err)
	}

	return tag.RowsAffected(), nil
}

func latestSnapshotTx(ctx context.Context, tx pgx.Tx, key domain.ComparisonKey) (*domain.ComparisonSnapshot, error) {
	row := tx.QueryRow(ctx, `
		SELECT`+snapshotColumns+`
		FROM comparison_snapshots
		WHERE user_id = $1 AND slug = $2 AND timeframe = $3 AND geo = $4
		ORDER BY computed_at DESC
		LIMIT 1
	`, key.UserID, key.Slug, key.Timeframe, key.Geo)

	snapshot, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil //nolint:nilnil // nil,nil indicates no snapshot stored
		}

		return nil, fmt.Errorf("get latest snapshot for save: %w", err)
	}

	return snapshot, nil
}

func insertSnapshotTx(ctx context.Context, tx pgx.Tx, snapshot *domain.ComparisonSnapshot) error {
	var id uuid.UUID

	err := tx.QueryRow(ctx, `
		INSERT INTO comparison_snapshots (
			user_id, slug, timeframe, geo, term_a, term_b,
			winner, winner_score, loser_score, category,
			margin_points, confidence, volatility, agreement_index, computed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`,
		snapshot.Key.UserID, snapshot.Key.Slug, snapshot.Key.Timeframe, snapshot.Key.Geo,
		snapshot.TermA, snapshot.TermB,
		snapshot.Winner, snapshot.WinnerScore, snapshot.LoserScore, string(snapshot.Category),
		snapshot.MarginPoints, snapshot.Confidence, snapshot.Volatility, snapshot.AgreementIndex,
		toTimestamptz(snapshot.ComputedAt),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	snapshot.ID = id.String()

	return nil
}

func updateSnapshotTx(ctx context.Context, tx pgx.Tx, id string, snapshot *domain.ComparisonSnapshot) error {
	_, err := tx.Exec(ctx, `
		UPDATE comparison_snapshots
		SET winner = $2,
			winner_score = $3,
			loser_score = $4,
			margin_points = $5,
			confidence = $6,
			volatility = $7,
			agreement_index = $8,
			computed_at = $9
		WHERE id = $1
	`,
		id,
		snapshot.Winner, snapshot.WinnerScore, snapshot.LoserScore,
		snapshot.MarginPoints, snapshot.Confidence, snapshot.Volatility, snapshot.AgreementIndex,
		toTimestamptz(snapshot.ComputedAt),
	)
	if err != nil {
		return fmt.Errorf("update snapshot in place: %w", err)
	}

	snapshot.ID = id

	return nil
}

func scanSnapshot(row pgx.Row) (*domain.ComparisonSnapshot, error) {
	var (
		snapshot domain.ComparisonSnapshot
		id       uuid.UUID
		category string
	)

	err := row.Scan(
		&id,
		&snapshot.Key.UserID, &snapshot.Key.Slug, &snapshot.Key.Timeframe, &snapshot.Key.Geo,
		&snapshot.TermA, &snapshot.TermB,
		&snapshot.Winner, &snapshot.WinnerScore, &snapshot.LoserScore, &category,
		&snapshot.MarginPoints, &snapshot.Confidence, &snapshot.Volatility, &snapshot.AgreementIndex,
		&snapshot.ComputedAt,
	)
	if err != nil {
		return nil, err
	}

	snapshot.ID = id.String()
	snapshot.Category = domain.Category(category)

	return &snapshot, nil
}

// snapshotLockID derives a stable advisory lock ID from a comparison key.
func snapshotLockID(key domain.ComparisonKey) int64 {
	h := fnv.New64a()

	for _, part := range []string{key.UserID, key.Slug, key.Timeframe, key.Geo} {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}

	return int64(h.Sum64()) //nolint:gosec // wraparound is fine for a lock ID
}
