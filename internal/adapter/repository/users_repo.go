package repository

import (
	"context"
	"encoding/json"
	"errors"

	"careerbuddy/internal/domain"
	"careerbuddy/internal/usecase"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func (r *UsersRepo) Save(ctx context.Context, u *domain.User) error {
	docCounts, _ := json.Marshal(u.DocumentCounts)
	roleCounts, _ := json.Marshal(u.RoleCounts)

	_, err := r.pool.Exec(ctx, `INSERT INTO users (id, telegram_user_id, telegram_username, name, email, tier, document_counts, role_counts, quota_resets_at, premium_expires_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET telegram_username = EXCLUDED.telegram_username, name = EXCLUDED.name, email = EXCLUDED.email, tier = EXCLUDED.tier, document_counts = EXCLUDED.document_counts, role_counts = EXCLUDED.role_counts, quota_resets_at = EXCLUDED.quota_resets_at, premium_expires_at = EXCLUDED.premium_expires_at, updated_at = EXCLUDED.updated_at`,
		u.ID, u.TelegramUserID, u.TelegramUsername, u.Name, u.Email, u.Tier, docCounts, roleCounts, u.QuotaResetsAt, u.PremiumExpiresAt, u.CreatedAt, u.UpdatedAt)
	return err
}

func (r *UsersRepo) ByTelegramID(ctx context.Context, telegramUserID string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, telegram_user_id, telegram_username, name, email, tier, document_counts, role_counts, quota_resets_at, premium_expires_at, created_at, updated_at
		FROM users WHERE telegram_user_id = $1`, telegramUserID)
	return scanUser(row)
}

func (r *UsersRepo) All(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, telegram_user_id, telegram_username, name, email, tier, document_counts, role_counts, quota_resets_at, premium_expires_at, created_at, updated_at
		FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var docCounts, roleCounts []byte
	err := row.Scan(&u.ID, &u.TelegramUserID, &u.TelegramUsername, &u.Name, &u.Email, &u.Tier,
		&docCounts, &roleCounts, &u.QuotaResetsAt, &u.PremiumExpiresAt, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, usecase.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(docCounts) > 0 {
		_ = json.Unmarshal(docCounts, &u.DocumentCounts)
	}
	if len(roleCounts) > 0 {
		_ = json.Unmarshal(roleCounts, &u.RoleCounts)
	}
	if u.DocumentCounts == nil {
		u.DocumentCounts = map[string]int{}
	}
	if u.RoleCounts == nil {
		u.RoleCounts = map[string]int{}
	}
	return &u, nil
}
