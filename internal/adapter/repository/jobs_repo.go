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

const jobColumns = `id, user_id, type, status, answers, draft_text, last_msg_id, created_at, updated_at`

type JobsRepo struct {
	pool *pgxpool.Pool
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool}
}

func (r *JobsRepo) Save(ctx context.Context, j *domain.Job) error {
	answers, err := json.Marshal(j.Answers)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO jobs (id, user_id, type, status, answers, draft_text, last_msg_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, answers = EXCLUDED.answers, draft_text = EXCLUDED.draft_text, last_msg_id = EXCLUDED.last_msg_id, updated_at = EXCLUDED.updated_at`,
		j.ID, j.UserID, j.Type, j.Status, answers, j.DraftText, j.LastMsgID, j.CreatedAt, j.UpdatedAt)
	return err
}

func (r *JobsRepo) ByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

// ActiveByType finds the one job still in conversation for this document
// type. Jobs at preview or parked at payment are still active.
func (r *JobsRepo) ActiveByType(ctx context.Context, userID uuid.UUID, dt domain.DocumentType) (*domain.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE user_id = $1 AND type = $2 AND status IN ('collecting', 'draft_ready', 'preview_ready')
		ORDER BY updated_at DESC LIMIT 1`, userID, dt)
	return scanJob(row)
}

func (r *JobsRepo) ActiveAny(ctx context.Context, userID uuid.UUID) (*domain.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE user_id = $1 AND status IN ('collecting', 'draft_ready', 'preview_ready')
		ORDER BY updated_at DESC LIMIT 1`, userID)
	return scanJob(row)
}

func (r *JobsRepo) LatestDone(ctx context.Context, userID uuid.UUID) (*domain.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE user_id = $1 AND status = 'done'
		ORDER BY updated_at DESC LIMIT 1`, userID)
	return scanJob(row)
}

func (r *JobsRepo) RecentDone(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Job, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE user_id = $1 AND status = 'done'
		ORDER BY updated_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *JobsRepo) CountDoneByType(ctx context.Context, userID uuid.UUID) (map[domain.DocumentType]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT type, COUNT(*) FROM jobs
		WHERE user_id = $1 AND status = 'done' GROUP BY type`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[domain.DocumentType]int{}
	for rows.Next() {
		var dt domain.DocumentType
		var n int
		if err := rows.Scan(&dt, &n); err != nil {
			return nil, err
		}
		counts[dt] = n
	}
	return counts, rows.Err()
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	var answers []byte
	err := row.Scan(&j.ID, &j.UserID, &j.Type, &j.Status, &answers, &j.DraftText, &j.LastMsgID, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, usecase.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &j.Answers); err != nil {
			return nil, err
		}
	}
	return &j, nil
}
