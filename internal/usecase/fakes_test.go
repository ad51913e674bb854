package usecase

import (
	"context"
	"sync"

	"careerbuddy/internal/domain"

	"github.com/google/uuid"
)

type memUsers struct {
	mu    sync.Mutex
	byTg  map[string]*domain.User
	users map[uuid.UUID]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{byTg: map[string]*domain.User{}, users: map[uuid.UUID]*domain.User{}}
}

func (m *memUsers) ByTelegramID(_ context.Context, tg string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byTg[tg]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (m *memUsers) Save(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byTg[u.TelegramUserID] = u
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) All(_ context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

type memJobs struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*domain.Job
}

func newMemJobs() *memJobs { return &memJobs{jobs: map[uuid.UUID]*domain.Job{}} }

func (m *memJobs) Save(_ context.Context, j *domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = j
	return nil
}

func (m *memJobs) ByID(_ context.Context, id uuid.UUID) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[id]; ok {
		return j, nil
	}
	return nil, ErrNotFound
}

func (m *memJobs) active(userID uuid.UUID, dt domain.DocumentType, anyType bool) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *domain.Job
	for _, j := range m.jobs {
		if j.UserID != userID {
			continue
		}
		if j.Status != domain.StatusCollecting && j.Status != domain.StatusDraftReady &&
			j.Status != domain.StatusPreviewReady {
			continue
		}
		if !anyType && j.Type != dt {
			continue
		}
		if best == nil || j.UpdatedAt.After(best.UpdatedAt) {
			best = j
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}
	return best, nil
}

func (m *memJobs) ActiveByType(_ context.Context, userID uuid.UUID, dt domain.DocumentType) (*domain.Job, error) {
	return m.active(userID, dt, false)
}

func (m *memJobs) ActiveAny(_ context.Context, userID uuid.UUID) (*domain.Job, error) {
	return m.active(userID, "", true)
}

func (m *memJobs) LatestDone(_ context.Context, userID uuid.UUID) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *domain.Job
	for _, j := range m.jobs {
		if j.UserID == userID && j.Status == domain.StatusDone {
			if best == nil || j.UpdatedAt.After(best.UpdatedAt) {
				best = j
			}
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}
	return best, nil
}

func (m *memJobs) RecentDone(_ context.Context, userID uuid.UUID, limit int) ([]*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Job
	for _, j := range m.jobs {
		if j.UserID == userID && j.Status == domain.StatusDone && len(out) < limit {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *memJobs) CountDoneByType(_ context.Context, userID uuid.UUID) (map[domain.DocumentType]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[domain.DocumentType]int{}
	for _, j := range m.jobs {
		if j.UserID == userID && j.Status == domain.StatusDone {
			counts[j.Type]++
		}
	}
	return counts, nil
}

type memMessages struct {
	mu   sync.Mutex
	msgs []*domain.Message
}

func (m *memMessages) Append(_ context.Context, msg *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
	return nil
}

type memPayments struct {
	mu       sync.Mutex
	payments []*domain.Payment
}

func (m *memPayments) Record(_ context.Context, p *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, p)
	return nil
}

func (m *memPayments) LatestInitByUser(_ context.Context, userID uuid.UUID) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.payments) - 1; i >= 0; i-- {
		if m.payments[i].UserID == userID && m.payments[i].Status == domain.PaymentInit {
			return m.payments[i], nil
		}
	}
	return nil, ErrNotFound
}

type memFiles struct {
	mu    sync.Mutex
	files []*domain.File
}

func (m *memFiles) Record(_ context.Context, f *domain.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = append(m.files, f)
	return nil
}

type fakeEnhancer struct {
	skillCalls   int
	summaryCalls int
	revampCalls  int
}

func (f *fakeEnhancer) SuggestSkills(_ context.Context, _ string, _ domain.Basics, _ []domain.Experience, _ domain.Tier) ([]string, error) {
	f.skillCalls++
	return []string{"SQL", "Python", "Excel", "Communication", "Teamwork"}, nil
}

func (f *fakeEnhancer) DraftSummary(_ context.Context, _ *domain.Answers, _ domain.Tier) (string, error) {
	f.summaryCalls++
	return "A capable professional with a track record of results.", nil
}

func (f *fakeEnhancer) Revamp(_ context.Context, original string, _ domain.Tier) (string, error) {
	f.revampCalls++
	return "REVAMPED\n" + original, nil
}

type fakeRenderer struct {
	calls int
	fail  bool
}

func (f *fakeRenderer) RenderHTMLToPDF(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	if f.fail {
		return nil, context.DeadlineExceeded
	}
	return []byte("%PDF-1.4 fake"), nil
}

type memArtifacts struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemArtifacts() *memArtifacts { return &memArtifacts{blobs: map[string][]byte{}} }

func (m *memArtifacts) key(jobID uuid.UUID, kind domain.FileKind, filename string) string {
	return jobID.String() + "/" + string(kind) + "/" + filename
}

func (m *memArtifacts) Save(jobID uuid.UUID, kind domain.FileKind, filename string, data []byte) (*domain.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[m.key(jobID, kind, filename)] = data
	return &domain.File{ID: uuid.New(), JobID: jobID, Kind: kind, StorageKey: m.key(jobID, kind, filename), Size: int64(len(data))}, nil
}

func (m *memArtifacts) Read(jobID uuid.UUID, kind domain.FileKind, filename string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.blobs[m.key(jobID, kind, filename)]; ok {
		return b, nil
	}
	return nil, ErrNotFound
}

type fakeGateway struct {
	links    int
	verified bool
}

func (f *fakeGateway) CreatePaymentLink(_ context.Context, _ *domain.User, _ string, _ int64) (PaymentLink, error) {
	f.links++
	return PaymentLink{AuthorizationURL: "https://pay.example/abc", Reference: "ref-test-1"}, nil
}

func (f *fakeGateway) VerifyPayment(_ context.Context, _ string) (bool, error) {
	return f.verified, nil
}
