package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/gift-registry/internal/config"
)

// Postgres wraps a pgx pool onto the legacy SQL database. The running
// service never touches it; only the one-shot migration tool reads from it.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres establishes a read-only connection pool to the legacy database.
func NewPostgres(ctx context.Context, cfg config.LegacyConfig, logger *zap.Logger) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to legacy postgres")
	return &Postgres{Pool: pool}, nil
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
