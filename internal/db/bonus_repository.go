package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/gdbonus/internal/bonus"
)

// Renderer produces the display text stored next to each bonus.
type Renderer interface {
	Display(b bonus.Bonus) (string, error)
}

// BonusRepository stores classified skills and unhandled attributes per run.
type BonusRepository struct {
	pool   *pgxpool.Pool
	render Renderer
}

// NewBonusRepository creates a BonusRepository.
func NewBonusRepository(pool *pgxpool.Pool, render Renderer) *BonusRepository {
	return &BonusRepository{pool: pool, render: render}
}

// CreateRun registers a new classification run made with the tag
// dictionary identified by fingerprint.
func (r *BonusRepository) CreateRun(ctx context.Context, fingerprint string) (uuid.UUID, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generating run id: %w", err)
	}

	if _, err := r.pool.Exec(ctx,
		`INSERT INTO runs (id, tags_fingerprint) VALUES ($1, $2)`,
		id, fingerprint,
	); err != nil {
		return uuid.Nil, fmt.Errorf("inserting run: %w", err)
	}

	slog.Debug("created run", "runID", id, "fingerprint", fingerprint)
	return id, nil
}

// RunFingerprint returns the dictionary fingerprint recorded for a run.
func (r *BonusRepository) RunFingerprint(ctx context.Context, runID uuid.UUID) (string, error) {
	var fp string
	err := r.pool.QueryRow(ctx,
		`SELECT tags_fingerprint FROM runs WHERE id = $1`, runID,
	).Scan(&fp)
	if err != nil {
		return "", fmt.Errorf("querying run %s: %w", runID, err)
	}
	return fp, nil
}

// SaveSkill replaces the stored bonuses of a skill within a run.
func (r *BonusRepository) SaveSkill(ctx context.Context, runID uuid.UUID, skill string, list []bonus.Bonus) error {
	rows := make([][]any, 0, len(list))
	for i, b := range list {
		record, err := bonus.Marshal(b)
		if err != nil {
			return fmt.Errorf("encoding bonus %d of %s: %w", i, skill, err)
		}
		display, err := r.render.Display(b)
		if err != nil {
			return fmt.Errorf("rendering bonus %d of %s: %w", i, skill, err)
		}
		rows = append(rows, []any{runID, skill, int32(i), b.Variant(), b.KindID(), json.RawMessage(record), display})
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx,
		`DELETE FROM skill_bonuses WHERE run_id = $1 AND skill = $2`, runID, skill,
	); err != nil {
		return fmt.Errorf("deleting bonuses of %s: %w", skill, err)
	}

	if len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"skill_bonuses"},
			[]string{"run_id", "skill", "position", "variant", "kind_id", "record", "display"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("inserting bonuses of %s: %w", skill, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing bonuses of %s: %w", skill, err)
	}

	slog.Debug("saved skill bonuses", "runID", runID, "skill", skill, "count", len(list))
	return nil
}

// LoadSkill returns the bonuses of a skill in their stored order.
func (r *BonusRepository) LoadSkill(ctx context.Context, runID uuid.UUID, skill string) ([]bonus.Bonus, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT record FROM skill_bonuses
		 WHERE run_id = $1 AND skill = $2
		 ORDER BY position`,
		runID, skill,
	)
	if err != nil {
		return nil, fmt.Errorf("querying bonuses of %s: %w", skill, err)
	}
	defer rows.Close()

	var list []bonus.Bonus
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scanning bonus row: %w", err)
		}
		b, err := bonus.Unmarshal(record)
		if err != nil {
			return nil, fmt.Errorf("decoding bonus of %s: %w", skill, err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bonus rows: %w", err)
	}

	return list, nil
}

// Skills returns the names of skills stored for a run.
func (r *BonusRepository) Skills(ctx context.Context, runID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT skill FROM skill_bonuses WHERE run_id = $1 ORDER BY skill`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying skills of run %s: %w", runID, err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collecting skills of run %s: %w", runID, err)
	}
	return names, nil
}

// SaveUnhandled records occurrence counts of unclassified attributes.
// Counts for attributes already stored in the run are replaced.
func (r *BonusRepository) SaveUnhandled(ctx context.Context, runID uuid.UUID, counts map[string]int) error {
	if len(counts) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for name, n := range counts {
		batch.Queue(
			`INSERT INTO unhandled_attributes (run_id, attribute, occurrences)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (run_id, attribute) DO UPDATE SET occurrences = $3`,
			runID, name, int32(n),
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range counts {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("saving unhandled attributes: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("closing unhandled batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing unhandled attributes: %w", err)
	}
	return nil
}

// LoadUnhandled returns the unclassified attribute counts of a run.
func (r *BonusRepository) LoadUnhandled(ctx context.Context, runID uuid.UUID) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT attribute, occurrences FROM unhandled_attributes WHERE run_id = $1`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying unhandled attributes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			name string
			n    int32
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scanning unhandled row: %w", err)
		}
		counts[name] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating unhandled rows: %w", err)
	}

	return counts, nil
}
