package repository

import (
	"context"

	"careerbuddy/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

type MessagesRepo struct {
	pool *pgxpool.Pool
}

func NewMessagesRepo(pool *pgxpool.Pool) *MessagesRepo {
	return &MessagesRepo{pool: pool}
}

// Append writes one conversation line. The log is insert-only.
func (r *MessagesRepo) Append(ctx context.Context, m *domain.Message) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO messages (id, user_id, job_id, direction, content, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.UserID, m.JobID, m.Direction, m.Content, m.CreatedAt)
	return err
}
