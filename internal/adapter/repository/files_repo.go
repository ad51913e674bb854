package repository

import (
	"context"

	"careerbuddy/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

type FilesRepo struct {
	pool *pgxpool.Pool
}

func NewFilesRepo(pool *pgxpool.Pool) *FilesRepo {
	return &FilesRepo{pool: pool}
}

func (r *FilesRepo) Record(ctx context.Context, f *domain.File) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO files (id, job_id, kind, storage_key, checksum, size, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET checksum = EXCLUDED.checksum, size = EXCLUDED.size`,
		f.ID, f.JobID, f.Kind, f.StorageKey, f.Checksum, f.Size, f.CreatedAt)
	return err
}
