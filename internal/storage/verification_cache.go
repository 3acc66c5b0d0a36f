package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/trendarc/trendarc/internal/core/domain"
)

// VerificationCacheEntry is a persisted verifier result with its storage
// timestamp.
type VerificationCacheEntry struct {
	InputHash string
	Result    domain.ContextualRelevanceResult
	CachedAt  time.Time
}

// GetVerification returns the cached verifier result for inputHash, or nil
// when absent. Entries older than VerificationTTL count as absent; the
// periodic pruner deletes them later.
func (db *DB) GetVerification(ctx context.Context, inputHash string) (*domain.ContextualRelevanceResult, error) {
	entry, err := db.GetVerificationEntry(ctx, inputHash)
	if err != nil {
		return nil, err
	}

	if entry == nil {
		return nil, nil //nolint:nilnil // nil,nil indicates no cached verification
	}

	if db.VerificationTTL > 0 && time.Since(entry.CachedAt) > db.VerificationTTL {
		return nil, nil //nolint:nilnil // expired entries count as misses
	}

	return &entry.Result, nil
}

// SaveVerification stores or refreshes a verifier result under inputHash.
func (db *DB) SaveVerification(ctx context.Context, inputHash string, result domain.ContextualRelevanceResult) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO verification_cache (
			input_hash, relevance_score, interpretation, reasoning, confidence, context_match, cached_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (input_hash) DO UPDATE
		SET relevance_score = EXCLUDED.relevance_score,
			interpretation = EXCLUDED.interpretation,
			reasoning = EXCLUDED.reasoning,
			confidence = EXCLUDED.confidence,
			context_match = EXCLUDED.context_match,
			cached_at = EXCLUDED.cached_at
	`, inputHash, result.RelevanceScore, result.Interpretation, result.Reasoning, result.Confidence, result.ContextMatch)
	if err != nil {
		return fmt.Errorf("save verification cache: %w", err)
	}

	return nil
}

// DeleteVerificationsBefore drops cache entries older than cutoff.
// Returns the number of deleted rows.
func (db *DB) DeleteVerificationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM verification_cache
		WHERE cached_at < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete verification cache: %w", err)
	}

	return tag.RowsAffected(), nil
}

// GetVerificationEntry returns the full cache row including its timestamp,
// for TTL-aware callers.
func (db *DB) GetVerificationEntry(ctx context.Context, inputHash string) (*VerificationCacheEntry, error) {
	var (
		entry    VerificationCacheEntry
		cachedAt pgtype.Timestamptz
	)

	err := db.Pool.QueryRow(ctx, `
		SELECT input_hash, relevance_score, interpretation, reasoning, confidence, context_match, cached_at
		FROM verification_cache
		WHERE input_hash = $1
	`, inputHash).Scan(
		&entry.InputHash,
		&entry.Result.RelevanceScore,
		&entry.Result.Interpretation,
		&entry.Result.Reasoning,
		&entry.Result.Confidence,
		&entry.Result.ContextMatch,
		&cachedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil //nolint:nilnil // nil,nil indicates no cached verification
		}

		return nil, fmt.Errorf("get verification cache entry: %w", err)
	}

	entry.CachedAt = fromTimestamptz(cachedAt)

	return &entry, nil
}
