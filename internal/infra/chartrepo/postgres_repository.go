package chartrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valentinromain/astrosiderale/internal/domain/chart"
)

// PostgresRepository implements chart.HistoryRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores one chart request with its planets.
func (r *PostgresRepository) Insert(ctx context.Context, entry chart.HistoryEntry) error {
	request, err := json.Marshal(entry.Request)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	planets, err := json.Marshal(entry.Planets)
	if err != nil {
		return fmt.Errorf("encode planets: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO chart_history (id, request, planets, created_at)
		VALUES ($1::uuid, $2::jsonb, $3::jsonb, $4)
	`, entry.ID, string(request), string(planets), entry.Timestamp)
	return err
}

// Recent returns the latest entries, newest first.
func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]chart.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, request, planets, created_at
		FROM chart_history
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chart.HistoryEntry
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistoryEntry(row rowScanner) (chart.HistoryEntry, error) {
	var (
		entry   chart.HistoryEntry
		request []byte
		planets []byte
	)
	if err := row.Scan(&entry.ID, &request, &planets, &entry.Timestamp); err != nil {
		return chart.HistoryEntry{}, err
	}
	if err := json.Unmarshal(request, &entry.Request); err != nil {
		return chart.HistoryEntry{}, fmt.Errorf("decode request: %w", err)
	}
	if err := json.Unmarshal(planets, &entry.Planets); err != nil {
		return chart.HistoryEntry{}, fmt.Errorf("decode planets: %w", err)
	}
	return entry, nil
}

var _ chart.HistoryRepository = (*PostgresRepository)(nil)
