package sqlite

import (
	"context"
	"time"
)

type credentialsRepo struct {
	q querier
}

func (r *credentialsRepo) Get(ctx context.Context) ([]byte, error) {
	var sealed []byte
	err := r.q.QueryRowContext(ctx, `SELECT sealed FROM credential WHERE id = 1`).Scan(&sealed)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return sealed, nil
}

func (r *credentialsRepo) Put(ctx context.Context, sealed []byte) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO credential (id, sealed, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET sealed = excluded.sealed, updated_at = excluded.updated_at`,
		sealed, time.Now().UnixMilli(),
	)
	return err
}

func (r *credentialsRepo) Delete(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM credential`)
	return err
}
