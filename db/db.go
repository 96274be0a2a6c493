package db

import (
	"context"
	"fmt"

	"sparkmeals/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is nil when the notification log is disabled.
var Pool *pgxpool.Pool

func Init(ctx context.Context, cfg config.DBConfig) error {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
	var err error
	Pool, err = pgxpool.New(ctx, connStr)
	return err
}

// Ping reports database reachability; a disabled pool is always healthy.
func Ping(ctx context.Context) error {
	if Pool == nil {
		return nil
	}
	return Pool.Ping(ctx)
}

func Close() {
	if Pool != nil {
		Pool.Close()
		Pool = nil
	}
}
