package api

import (
	"context"
	"strings"

	"routesolver/internal/config"
	"routesolver/internal/metrics"
	"routesolver/internal/store"
)

type Server struct {
	Store  store.Store
	Broker EventBroker
	Config config.Config
}

// NewServer creates a Server. Without a database URL it falls back to the
// in-memory store, and without a Redis URL progress events fan out in-process
// only.
func NewServer(cfg config.Config) (*Server, error) {
	var s store.Store
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		s = store.NewMemory()
	} else {
		sp, err := store.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := sp.Init(context.Background()); err != nil {
			return nil, err
		}
		s = sp
	}
	var broker EventBroker
	if cfg.RedisURL != "" {
		if rb, err := NewRedisBroker(cfg.RedisURL); err == nil {
			broker = rb
		} else {
			broker = NewBroker()
		}
	} else {
		broker = NewBroker()
	}
	metrics.RegisterDefault()
	return &Server{Store: s, Broker: broker, Config: cfg}, nil
}
