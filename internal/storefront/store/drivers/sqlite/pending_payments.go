package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/pkg/idx"
)

type pendingPaymentsRepo struct {
	s *Store
}

// Save replaces the pending record and its lines in one transaction.
func (r *pendingPaymentsRepo) Save(ctx context.Context, p domain.PendingPayment) error {
	return r.s.withTx(ctx, func(q querier) error {
		if _, err := q.ExecContext(ctx, `DELETE FROM pending_payment`); err != nil {
			return fmt.Errorf("clear pending payment: %w", err)
		}

		_, err := q.ExecContext(ctx, `
			INSERT INTO pending_payment (id, attempt_id, order_id, order_number, amount, origin, created_at)
			VALUES (1, ?, ?, ?, ?, ?, ?)`,
			p.AttemptID.String(), p.OrderID, p.OrderNumber, p.Amount, string(p.Origin), p.CreatedAt.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("insert pending payment: %w", err)
		}

		for i, line := range p.Lines {
			_, err := q.ExecContext(ctx, `
				INSERT INTO pending_payment_lines (pending_id, position, product_id, variant_id)
				VALUES (1, ?, ?, ?)`,
				i, line.ProductID, line.VariantID,
			)
			if err != nil {
				return fmt.Errorf("insert pending payment line: %w", err)
			}
		}

		return nil
	})
}

func (r *pendingPaymentsRepo) Load(ctx context.Context) (domain.PendingPayment, error) {
	var (
		p         domain.PendingPayment
		attemptID string
		origin    string
		createdAt int64
	)

	err := r.s.db.QueryRowContext(ctx, `
		SELECT attempt_id, order_id, order_number, amount, origin, created_at
		FROM pending_payment WHERE id = 1`,
	).Scan(&attemptID, &p.OrderID, &p.OrderNumber, &p.Amount, &origin, &createdAt)
	if err != nil {
		return domain.PendingPayment{}, mapNotFound(err)
	}

	p.AttemptID = idx.ID(attemptID)
	p.Origin = domain.Origin(origin)
	p.CreatedAt = time.UnixMilli(createdAt).UTC()

	rows, err := r.s.db.QueryContext(ctx, `
		SELECT product_id, variant_id FROM pending_payment_lines
		WHERE pending_id = 1 ORDER BY position`)
	if err != nil {
		return domain.PendingPayment{}, err
	}
	defer rows.Close()

	p.Lines = []domain.LineRef{}
	for rows.Next() {
		var ref domain.LineRef
		if err := rows.Scan(&ref.ProductID, &ref.VariantID); err != nil {
			return domain.PendingPayment{}, err
		}
		p.Lines = append(p.Lines, ref)
	}

	return p, rows.Err()
}

func (r *pendingPaymentsRepo) Clear(ctx context.Context) error {
	_, err := r.s.db.ExecContext(ctx, `DELETE FROM pending_payment`)
	return err
}

func (r *pendingPaymentsRepo) ClearAttempt(ctx context.Context, attemptID idx.ID) (bool, error) {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM pending_payment WHERE attempt_id = ?`, attemptID.String())
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
