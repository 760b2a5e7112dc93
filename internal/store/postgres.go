package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const schema = `CREATE TABLE IF NOT EXISTS binpack_runs (
	id           UUID PRIMARY KEY,
	algorithm    TEXT NOT NULL,
	instance     TEXT NOT NULL,
	seed         BIGINT NOT NULL,
	cost         DOUBLE PRECISION NOT NULL,
	bins         INTEGER NOT NULL,
	overflow     DOUBLE PRECISION NOT NULL,
	evaluations  INTEGER NOT NULL,
	iterations   INTEGER NOT NULL,
	stopped      TEXT NOT NULL,
	duration_ms  BIGINT NOT NULL,
	solution     JSONB NOT NULL,
	meta         JSONB,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type Postgres struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

// Migrate creates the runs table if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate binpack_runs: %w", err)
	}
	return nil
}

func (p *Postgres) SaveRun(ctx context.Context, r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	sol, err := json.Marshal(r.Solution)
	if err != nil {
		return "", err
	}
	meta, err := toJSON(r.Meta)
	if err != nil {
		return "", err
	}
	_, err = p.db.ExecContext(ctx, `INSERT INTO binpack_runs
		(id, algorithm, instance, seed, cost, bins, overflow, evaluations, iterations, stopped, duration_ms, solution, meta, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		r.ID, r.Algorithm, r.Instance, r.Seed, r.Cost, r.Bins, r.Overflow, r.Evaluations, r.Iterations,
		r.Stopped, r.DurationMs, sol, meta, r.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("insert run %s: %w", r.ID, err)
	}
	return r.ID, nil
}

const selectRun = `SELECT id::text, algorithm, instance, seed, cost, bins, overflow, evaluations, iterations,
	stopped, duration_ms, solution, meta, created_at FROM binpack_runs`

func (p *Postgres) GetRun(ctx context.Context, id string) (Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Run{}, ErrNotFound
	}
	r, err := scanRun(p.db.QueryRowContext(ctx, selectRun+` WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	return r, err
}

func (p *Postgres) ListRuns(ctx context.Context, algorithm string, limit int) ([]Run, error) {
	q := selectRun + ` WHERE ($1 = '' OR algorithm = $1) ORDER BY created_at DESC`
	args := []any{algorithm}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) Close() error { return p.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		r         Run
		sol, meta []byte
	)
	err := s.Scan(&r.ID, &r.Algorithm, &r.Instance, &r.Seed, &r.Cost, &r.Bins, &r.Overflow,
		&r.Evaluations, &r.Iterations, &r.Stopped, &r.DurationMs, &sol, &meta, &r.CreatedAt)
	if err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal(sol, &r.Solution); err != nil {
		return Run{}, fmt.Errorf("decode solution of run %s: %w", r.ID, err)
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &r.Meta); err != nil {
			return Run{}, fmt.Errorf("decode meta of run %s: %w", r.ID, err)
		}
	}
	return r, nil
}

// toJSON returns nil for an empty map so the column stays NULL.
func toJSON(m map[string]any) (any, error) {
	if len(m) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return b, nil
}
