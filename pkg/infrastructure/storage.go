package infrastructure

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"careerbuddy/internal/domain"

	"github.com/google/uuid"
)

// LocalStorage keeps generated artifacts on disk under
// {root}/jobs/{job_id}/{kind}/{filename}. The storage key recorded in the
// files table is the path relative to root, so a move to object storage only
// changes this type.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStorage{root: root}, nil
}

func storageKey(jobID uuid.UUID, kind domain.FileKind, filename string) string {
	return filepath.Join("jobs", jobID.String(), string(kind), filename)
}

func (s *LocalStorage) Save(jobID uuid.UUID, kind domain.FileKind, filename string, data []byte) (*domain.File, error) {
	key := storageKey(jobID, kind, filename)
	path := filepath.Join(s.root, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	return &domain.File{
		ID:         uuid.New(),
		JobID:      jobID,
		Kind:       kind,
		StorageKey: key,
		Checksum:   hex.EncodeToString(sum[:]),
		Size:       int64(len(data)),
		CreatedAt:  time.Now(),
	}, nil
}

func (s *LocalStorage) Read(jobID uuid.UUID, kind domain.FileKind, filename string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, storageKey(jobID, kind, filename)))
}
