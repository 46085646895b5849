package sink

import (
	"context"
	"database/sql"
)

type querier interface {
	execer
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// getLock takes a MySQL named lock, waiting up to timeoutSeconds.
func getLock(ctx context.Context, db querier, key string, timeoutSeconds int) (bool, error) {
	var res sql.NullInt64
	if err := db.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", key, timeoutSeconds).Scan(&res); err != nil {
		return false, err
	}
	return res.Valid && res.Int64 == 1, nil
}

func releaseLock(ctx context.Context, db execer, key string) error {
	_, err := db.ExecContext(ctx, "SELECT RELEASE_LOCK(?)", key)
	return err
}
