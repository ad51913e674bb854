package repository

import (
	"context"
	"encoding/json"
	"errors"

	"careerbuddy/internal/domain"
	"careerbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PaymentsRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentsRepo(pool *pgxpool.Pool) *PaymentsRepo {
	return &PaymentsRepo{pool: pool}
}

func (r *PaymentsRepo) Record(ctx context.Context, p *domain.Payment) error {
	meta, _ := json.Marshal(p.Metadata)

	_, err := r.pool.Exec(ctx, `INSERT INTO payments (id, user_id, job_id, provider, amount_kobo, currency, status, reference, metadata, raw_webhook, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, metadata = EXCLUDED.metadata, raw_webhook = EXCLUDED.raw_webhook`,
		p.ID, p.UserID, p.JobID, p.Provider, p.AmountKobo, p.Currency, p.Status, p.Reference, meta, p.RawWebhook, p.CreatedAt)
	return err
}

// LatestInitByUser returns the newest still-unsettled transaction for the
// user, used to resolve "paid" replies that have no active job.
func (r *PaymentsRepo) LatestInitByUser(ctx context.Context, userID uuid.UUID) (*domain.Payment, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, user_id, job_id, provider, amount_kobo, currency, status, reference, metadata, created_at
		FROM payments WHERE user_id = $1 AND status = 'init'
		ORDER BY created_at DESC LIMIT 1`, userID)

	var p domain.Payment
	var meta []byte
	err := row.Scan(&p.ID, &p.UserID, &p.JobID, &p.Provider, &p.AmountKobo, &p.Currency, &p.Status, &p.Reference, &meta, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, usecase.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		_ = json.Unmarshal(meta, &p.Metadata)
	}
	return &p, nil
}
