package domain

import (
	"time"

	"github.com/google/uuid"
)

// FileKind names what a generated artifact is for.
type FileKind string

const (
	FileFinalPDF FileKind = "final_pdf"
	FileUpload   FileKind = "upload"
)

// File is metadata for one generated or uploaded artifact. StorageKey is the
// deterministic location under the artifact store: jobs/{job_id}/{kind}/{filename}.
type File struct {
	ID         uuid.UUID `json:"id"`
	JobID      uuid.UUID `json:"job_id"`
	Kind       FileKind  `json:"kind"`
	StorageKey string    `json:"storage_key"`
	Checksum   string    `json:"checksum,omitempty"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
}
