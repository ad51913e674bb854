package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"net/http/httptest"
	"testing"

	"careerbuddy/internal/domain"
	"careerbuddy/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJobs struct {
	job *domain.Job
}

func (s *stubJobs) Save(context.Context, *domain.Job) error { return nil }
func (s *stubJobs) ByID(_ context.Context, id uuid.UUID) (*domain.Job, error) {
	if s.job != nil && s.job.ID == id {
		return s.job, nil
	}
	return nil, usecase.ErrNotFound
}
func (s *stubJobs) ActiveByType(context.Context, uuid.UUID, domain.DocumentType) (*domain.Job, error) {
	return nil, usecase.ErrNotFound
}
func (s *stubJobs) ActiveAny(context.Context, uuid.UUID) (*domain.Job, error) {
	return nil, usecase.ErrNotFound
}
func (s *stubJobs) LatestDone(context.Context, uuid.UUID) (*domain.Job, error) {
	return nil, usecase.ErrNotFound
}
func (s *stubJobs) RecentDone(context.Context, uuid.UUID, int) ([]*domain.Job, error) {
	return nil, nil
}
func (s *stubJobs) CountDoneByType(context.Context, uuid.UUID) (map[domain.DocumentType]int, error) {
	return nil, nil
}

type stubArtifacts struct {
	blobs map[string][]byte
}

func (s *stubArtifacts) Save(jobID uuid.UUID, kind domain.FileKind, filename string, data []byte) (*domain.File, error) {
	return &domain.File{JobID: jobID, Kind: kind}, nil
}
func (s *stubArtifacts) Read(jobID uuid.UUID, kind domain.FileKind, filename string) ([]byte, error) {
	if b, ok := s.blobs[jobID.String()+"/"+filename]; ok {
		return b, nil
	}
	return nil, usecase.ErrNotFound
}

func newTestApp(t *testing.T) (*fiber.App, *stubJobs, *stubArtifacts) {
	t.Helper()
	jobs := &stubJobs{}
	artifacts := &stubArtifacts{blobs: map[string][]byte{}}
	h := NewHandler(nil, nil, nil, artifacts, jobs, "wh-secret", "ps-secret", zerolog.Nop())
	app := fiber.New()
	h.Register(app)
	return app, jobs, artifacts
}

func TestHealth(t *testing.T) {
	app, _, _ := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestTelegramWebhookRejectsBadToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/webhooks/telegram", bytes.NewBufferString(`{"update_id":1}`))
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "wrong")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTelegramWebhookAcceptsEmptyUpdate(t *testing.T) {
	app, _, _ := newTestApp(t)

	// No message and no callback: authenticated but nothing to route.
	req := httptest.NewRequest("POST", "/webhooks/telegram", bytes.NewBufferString(`{"update_id":1}`))
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "wh-secret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestTelegramWebhookRejectsGarbage(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/webhooks/telegram", bytes.NewBufferString(`not json`))
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "wh-secret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPaystackWebhookRejectsBadSignature(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/webhooks/paystack", bytes.NewBufferString(`{"event":"charge.success"}`))
	req.Header.Set("X-Paystack-Signature", "deadbeef")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPaystackWebhookIgnoresOtherEvents(t *testing.T) {
	app, _, _ := newTestApp(t)

	body := []byte(`{"event":"transfer.success","data":{"reference":"r1"}}`)
	mac := hmac.New(sha512.New, []byte("ps-secret"))
	mac.Write(body)

	req := httptest.NewRequest("POST", "/webhooks/paystack", bytes.NewReader(body))
	req.Header.Set("X-Paystack-Signature", hex.EncodeToString(mac.Sum(nil)))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDownloadServesArtifact(t *testing.T) {
	app, jobs, artifacts := newTestApp(t)

	job := domain.NewJob(uuid.New(), domain.DocResume)
	jobs.job = job
	artifacts.blobs[job.ID.String()+"/Jane Doe - Resume.pdf"] = []byte("%PDF-1.4")

	resp, err := app.Test(httptest.NewRequest("GET", "/download/"+job.ID.String()+"/Jane%20Doe%20-%20Resume.pdf", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, []byte("%PDF-1.4"), body)
}

func TestDownloadUnknownJob(t *testing.T) {
	app, _, _ := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/download/"+uuid.NewString()+"/x.pdf", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDownloadRejectsTraversal(t *testing.T) {
	app, jobs, _ := newTestApp(t)
	job := domain.NewJob(uuid.New(), domain.DocResume)
	jobs.job = job

	resp, err := app.Test(httptest.NewRequest("GET", "/download/"+job.ID.String()+"/..%2F..%2Fsecret.pdf", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
