package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
)

// Migration is one named, idempotent schema change.
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Run executes all schema migrations on startup. Every statement is written
// to be safe to re-run.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	migrations := []Migration{
		{Name: "create_users", Up: createUsers},
		{Name: "create_jobs", Up: createJobs},
		{Name: "create_messages", Up: createMessages},
		{Name: "create_payments", Up: createPayments},
		{Name: "create_files", Up: createFiles},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			log.Error().Err(err).Str("name", m.Name).Msg("migration failed")
			return err
		}
		log.Debug().Str("name", m.Name).Msg("migration applied")
	}

	log.Info().Int("count", len(migrations)).Msg("migrations complete")
	return nil
}

func createUsers(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		telegram_user_id TEXT NOT NULL UNIQUE,
		telegram_username TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		tier TEXT NOT NULL DEFAULT 'free',
		document_counts JSONB NOT NULL DEFAULT '{}'::jsonb,
		role_counts JSONB NOT NULL DEFAULT '{}'::jsonb,
		quota_resets_at TIMESTAMPTZ,
		premium_expires_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`)
	return err
}

func createJobs(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'collecting',
		answers JSONB NOT NULL DEFAULT '{}'::jsonb,
		draft_text TEXT NOT NULL DEFAULT '',
		last_msg_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`); err != nil {
		return err
	}
	_, err := pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS jobs_user_status_idx ON jobs (user_id, status, updated_at DESC)`)
	return err
}

func createMessages(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS messages (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		job_id UUID,
		direction TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`); err != nil {
		return err
	}
	_, err := pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS messages_user_idx ON messages (user_id, created_at)`)
	return err
}

func createPayments(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		job_id UUID,
		provider TEXT NOT NULL,
		amount_kobo BIGINT NOT NULL,
		currency TEXT NOT NULL DEFAULT 'NGN',
		status TEXT NOT NULL,
		reference TEXT NOT NULL,
		metadata JSONB,
		raw_webhook BYTEA,
		created_at TIMESTAMPTZ NOT NULL
	)`); err != nil {
		return err
	}
	_, err := pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS payments_reference_idx ON payments (reference)`)
	return err
}

func createFiles(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS files (
		id UUID PRIMARY KEY,
		job_id UUID NOT NULL REFERENCES jobs(id),
		kind TEXT NOT NULL,
		storage_key TEXT NOT NULL,
		checksum TEXT NOT NULL DEFAULT '',
		size BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL
	)`)
	return err
}
