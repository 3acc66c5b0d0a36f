package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/ports"
)

// UpsertComparisonInput registers or refreshes the raw inputs for a
// comparison. The warm-up job replays these to recompute metrics without
// touching the upstream sources.
func (db *DB) UpsertComparisonInput(ctx context.Context, input *ports.ComparisonInput) error {
	series, err := json.Marshal(input.Series)
	if err != nil {
		return fmt.Errorf("marshal series: %w", err)
	}

	metricsA, err := json.Marshal(input.MetricsA)
	if err != nil {
		return fmt.Errorf("marshal metrics a: %w", err)
	}

	metricsB, err := json.Marshal(input.MetricsB)
	if err != nil {
		return fmt.Errorf("marshal metrics b: %w", err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO comparison_inputs (
			user_id, slug, timeframe, geo,
			term_a, term_b, category, series, metrics_a, metrics_b, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (user_id, slug, timeframe, geo) DO UPDATE SET
			term_a = EXCLUDED.term_a,
			term_b = EXCLUDED.term_b,
			category = EXCLUDED.category,
			series = EXCLUDED.series,
			metrics_a = EXCLUDED.metrics_a,
			metrics_b = EXCLUDED.metrics_b,
			updated_at = now()
	`,
		input.Key.UserID, input.Key.Slug, input.Key.Timeframe, input.Key.Geo,
		input.TermA, input.TermB, string(input.Category), series, metricsA, metricsB,
	)
	if err != nil {
		return fmt.Errorf("upsert comparison input: %w", err)
	}

	return nil
}

// LoadComparison returns the registered raw inputs for key, or nil if the
// comparison is not registered.
func (db *DB) LoadComparison(ctx context.Context, key domain.ComparisonKey) (*ports.ComparisonInput, error) {
	var (
		input      ports.ComparisonInput
		category   string
		seriesRaw  []byte
		metricsARw []byte
		metricsBRw []byte
	)

	err := db.Pool.QueryRow(ctx, `
		SELECT term_a, term_b, category, series, metrics_a, metrics_b
		FROM comparison_inputs
		WHERE user_id = $1 AND slug = $2 AND timeframe = $3 AND geo = $4
	`, key.UserID, key.Slug, key.Timeframe, key.Geo).Scan(
		&input.TermA, &input.TermB, &category, &seriesRaw, &metricsARw, &metricsBRw,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil //nolint:nilnil // nil,nil indicates comparison not registered
		}

		return nil, fmt.Errorf("load comparison: %w", err)
	}

	input.Key = key
	input.Category = domain.Category(category)

	if err := json.Unmarshal(seriesRaw, &input.Series); err != nil {
		return nil, fmt.Errorf("unmarshal series: %w", err)
	}

	if err := json.Unmarshal(metricsARw, &input.MetricsA); err != nil {
		return nil, fmt.Errorf("unmarshal metrics a: %w", err)
	}

	if err := json.Unmarshal(metricsBRw, &input.MetricsB); err != nil {
		return nil, fmt.Errorf("unmarshal metrics b: %w", err)
	}

	return &input, nil
}

// ListStaleComparisonKeys returns registered comparisons whose newest snapshot
// is older than cutoff, never-snapshotted comparisons first, then oldest
// snapshots first, up to limit.
func (db *DB) ListStaleComparisonKeys(ctx context.Context, cutoff time.Time, limit int) ([]domain.ComparisonKey, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT i.user_id, i.slug, i.timeframe, i.geo
		FROM comparison_inputs i
		LEFT JOIN comparison_snapshots s
			ON s.user_id = i.user_id
			AND s.slug = i.slug
			AND s.timeframe = i.timeframe
			AND s.geo = i.geo
		GROUP BY i.user_id, i.slug, i.timeframe, i.geo
		HAVING MAX(s.computed_at) IS NULL OR MAX(s.computed_at) < $1
		ORDER BY MAX(s.computed_at) ASC NULLS FIRST
		LIMIT $2
	`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale comparison keys: %w", err)
	}
	defer rows.Close()

	keys := []domain.ComparisonKey{}

	for rows.Next() {
		var key domain.ComparisonKey

		if err := rows.Scan(&key.UserID, &key.Slug, &key.Timeframe, &key.Geo); err != nil {
			return nil, fmt.Errorf("scan comparison key: %w", err)
		}

		keys = append(keys, key)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate comparison keys: %w", rows.Err())
	}

	return keys, nil
}

var _ ports.ComparisonLoader = (*DB)(nil)
