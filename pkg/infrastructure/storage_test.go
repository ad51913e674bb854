package infrastructure

import (
	"testing"

	"careerbuddy/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	jobID := uuid.New()
	data := []byte("%PDF-1.4 test content")

	file, err := store.Save(jobID, domain.FileFinalPDF, "Jane Doe - Resume.pdf", data)
	require.NoError(t, err)
	assert.Equal(t, jobID, file.JobID)
	assert.Equal(t, int64(len(data)), file.Size)
	assert.Len(t, file.Checksum, 64)
	assert.Contains(t, file.StorageKey, jobID.String())

	got, err := store.Read(jobID, domain.FileFinalPDF, "Jane Doe - Resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLocalStorageReadMissing(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read(uuid.New(), domain.FileFinalPDF, "nope.pdf")
	assert.Error(t, err)
}

func TestLocalStorageSeparatesKinds(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	jobID := uuid.New()
	_, err = store.Save(jobID, domain.FileUpload, "cv.txt", []byte("original"))
	require.NoError(t, err)
	_, err = store.Save(jobID, domain.FileFinalPDF, "cv.txt", []byte("rendered"))
	require.NoError(t, err)

	up, err := store.Read(jobID, domain.FileUpload, "cv.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), up)
}
