package usecase

import (
	"context"
	"errors"

	"careerbuddy/internal/domain"

	"github.com/google/uuid"
)

// ErrNotFound is returned by stores when a row does not exist.
var ErrNotFound = errors.New("not found")

type UserStore interface {
	ByTelegramID(ctx context.Context, telegramUserID string) (*domain.User, error)
	Save(ctx context.Context, u *domain.User) error
	All(ctx context.Context) ([]*domain.User, error)
}

type JobStore interface {
	Save(ctx context.Context, j *domain.Job) error
	ByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	ActiveByType(ctx context.Context, userID uuid.UUID, dt domain.DocumentType) (*domain.Job, error)
	ActiveAny(ctx context.Context, userID uuid.UUID) (*domain.Job, error)
	LatestDone(ctx context.Context, userID uuid.UUID) (*domain.Job, error)
	RecentDone(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Job, error)
	CountDoneByType(ctx context.Context, userID uuid.UUID) (map[domain.DocumentType]int, error)
}

type MessageStore interface {
	Append(ctx context.Context, m *domain.Message) error
}

type PaymentStore interface {
	Record(ctx context.Context, p *domain.Payment) error
	LatestInitByUser(ctx context.Context, userID uuid.UUID) (*domain.Payment, error)
}

type FileStore interface {
	Record(ctx context.Context, f *domain.File) error
}

// Enhancer is the AI collaborator. Implementations fall back internally where
// they can; callers additionally degrade to static content on error.
type Enhancer interface {
	SuggestSkills(ctx context.Context, targetRole string, basics domain.Basics, experiences []domain.Experience, tier domain.Tier) ([]string, error)
	DraftSummary(ctx context.Context, ans *domain.Answers, tier domain.Tier) (string, error)
	Revamp(ctx context.Context, original string, tier domain.Tier) (string, error)
}

// Renderer converts a fully laid-out HTML document into PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Artifacts persists generated documents under jobs/{job_id}/{kind}/{filename}.
type Artifacts interface {
	Save(jobID uuid.UUID, kind domain.FileKind, filename string, data []byte) (*domain.File, error)
	Read(jobID uuid.UUID, kind domain.FileKind, filename string) ([]byte, error)
}

// Reason explains a quota gate decision.
type Reason string

const (
	ReasonOK                 Reason = "ok"
	ReasonDocumentNotAllowed Reason = "document_not_allowed"
	ReasonQuotaExceeded      Reason = "quota_exceeded"
)

type Decision struct {
	Allowed bool
	Reason  Reason
	Limit   int
}

// Gate decides whether a user may generate a document of the given type.
// Consulted only at the finalize transition.
type Gate interface {
	CanGenerate(u *domain.User, dt domain.DocumentType) Decision
}

type PaymentLink struct {
	AuthorizationURL string
	Reference        string
}

// Gateway initializes and verifies hosted-gateway transactions.
type Gateway interface {
	CreatePaymentLink(ctx context.Context, u *domain.User, role string, amountKobo int64) (PaymentLink, error)
	VerifyPayment(ctx context.Context, reference string) (bool, error)
}

// Notifier pushes an unsolicited outbound text to a user, outside the
// request/reply cycle. Used for broadcasts.
type Notifier interface {
	Notify(ctx context.Context, telegramUserID, text string) error
}

// Action tells the transport adapter what to do beyond sending Text.
type Action int

const (
	ActionNone Action = iota
	ActionShowMenu
	ActionShowDocumentMenu
	ActionShowTemplateMenu
	ActionSendDocument
)

// Reply is the dispatcher's answer to one inbound event. Text is sent first
// when present; the action runs after.
type Reply struct {
	Text     string
	Action   Action
	Tier     domain.Tier
	JobID    uuid.UUID
	Filename string
}

func text(s string) Reply { return Reply{Text: s} }

// turn carries the per-message state threaded through step handlers.
type turn struct {
	ctx   context.Context
	user  *domain.User
	job   *domain.Job
	text  string
	lower string
}

func (t *turn) answers() *domain.Answers { return t.job.Answers }

type stepHandler func(*turn) (Reply, error)
