package store

import (
	"context"
	"errors"

	"routesolver/internal/model"
)

// Store is the persistence interface used by the API server.
type Store interface {
	SaveResult(ctx context.Context, res model.SolveResult) error
	GetResult(ctx context.Context, id string) (model.SolveResult, error)
	ListResults(ctx context.Context, cursor string, limit int) (items []model.SolveResult, nextCursor string, err error)
}

var ErrNotFound = errors.New("not found")
