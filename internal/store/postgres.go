package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib"

	"routesolver/internal/model"
)

type Postgres struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Init creates the schema when it does not exist yet.
func (p *Postgres) Init(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS solve_results (
    id          text PRIMARY KEY,
    value       double precision NOT NULL,
    iterations  integer NOT NULL,
    seed        bigint NOT NULL,
    routes      jsonb NOT NULL,
    unplanned   jsonb NOT NULL,
    created_at  timestamptz NOT NULL DEFAULT now()
)`)
	return err
}

func (p *Postgres) SaveResult(ctx context.Context, res model.SolveResult) error {
	routes, err := json.Marshal(res.Routes)
	if err != nil {
		return err
	}
	unplanned, err := json.Marshal(res.Unplanned)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `
INSERT INTO solve_results (id, value, iterations, seed, routes, unplanned, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET value=$2, iterations=$3, seed=$4, routes=$5, unplanned=$6`,
		res.ID, res.Value, res.Iterations, int64(res.Seed), routes, unplanned, res.CreatedAt)
	return err
}

func (p *Postgres) GetResult(ctx context.Context, id string) (model.SolveResult, error) {
	var res model.SolveResult
	var seed int64
	var routes, unplanned []byte
	row := p.db.QueryRowContext(ctx, `
SELECT id, value, iterations, seed, routes, unplanned, created_at
FROM solve_results WHERE id=$1`, id)
	if err := row.Scan(&res.ID, &res.Value, &res.Iterations, &seed, &routes, &unplanned, &res.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, ErrNotFound
		}
		return res, err
	}
	res.Seed = uint64(seed)
	if err := json.Unmarshal(routes, &res.Routes); err != nil {
		return res, err
	}
	if err := json.Unmarshal(unplanned, &res.Unplanned); err != nil {
		return res, err
	}
	return res, nil
}

func (p *Postgres) ListResults(ctx context.Context, cursor string, limit int) ([]model.SolveResult, string, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var rows *sql.Rows
	var err error
	if cursor != "" {
		rows, err = p.db.QueryContext(ctx, `
SELECT id, value, iterations, seed, routes, unplanned, created_at
FROM solve_results WHERE id > $1 ORDER BY id LIMIT $2`, cursor, limit)
	} else {
		rows, err = p.db.QueryContext(ctx, `
SELECT id, value, iterations, seed, routes, unplanned, created_at
FROM solve_results ORDER BY id LIMIT $1`, limit)
	}
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()
	out := []model.SolveResult{}
	var last string
	for rows.Next() {
		var res model.SolveResult
		var seed int64
		var routes, unplanned []byte
		if err := rows.Scan(&res.ID, &res.Value, &res.Iterations, &seed, &routes, &unplanned, &res.CreatedAt); err != nil {
			return nil, "", err
		}
		res.Seed = uint64(seed)
		if err := json.Unmarshal(routes, &res.Routes); err != nil {
			return nil, "", err
		}
		if err := json.Unmarshal(unplanned, &res.Unplanned); err != nil {
			return nil, "", err
		}
		out = append(out, res)
		last = res.ID
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}
	var next string
	if len(out) == limit {
		next = last
	}
	return out, next, nil
}
