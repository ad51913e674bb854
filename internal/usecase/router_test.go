package usecase

import (
	"context"
	"fmt"
	"testing"

	"careerbuddy/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router    *Router
	users     *memUsers
	jobs      *memJobs
	payments  *memPayments
	enhancer  *fakeEnhancer
	renderer  *fakeRenderer
	artifacts *memArtifacts
	gateway   *fakeGateway

	msgSeq int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	templates, err := NewTemplateSet("../../templates")
	require.NoError(t, err)

	f := &fixture{
		users:     newMemUsers(),
		jobs:      newMemJobs(),
		payments:  &memPayments{},
		enhancer:  &fakeEnhancer{},
		renderer:  &fakeRenderer{},
		artifacts: newMemArtifacts(),
		gateway:   &fakeGateway{},
	}
	f.router = NewRouter(Deps{
		Users:     f.users,
		Jobs:      f.jobs,
		Messages:  &memMessages{},
		Payments:  f.payments,
		Files:     &memFiles{},
		Enhancer:  f.enhancer,
		Renderer:  f.renderer,
		Artifacts: f.artifacts,
		Gate:      NewQuotaGate(),
		Gateway:   f.gateway,
		Templates: templates,
		IsAdmin:   func(id string) bool { return id == "admin-1" },
		Log:       zerolog.Nop(),
	})
	return f
}

func (f *fixture) send(t *testing.T, tgID, text string) Reply {
	t.Helper()
	f.msgSeq++
	reply, err := f.router.HandleInbound(context.Background(), tgID, text, fmt.Sprintf("m%d", f.msgSeq), "tester")
	require.NoError(t, err)
	return reply
}

func (f *fixture) activeJob(t *testing.T, tgID string) *domain.Job {
	t.Helper()
	u, err := f.users.ByTelegramID(context.Background(), tgID)
	require.NoError(t, err)
	job, err := f.jobs.ActiveAny(context.Background(), u.ID)
	require.NoError(t, err)
	return job
}

func TestBasicsAdvancesToTargetRole(t *testing.T) {
	f := newFixture(t)

	reply := f.send(t, "100", "resume")
	assert.Contains(t, reply.Text, "comma-separated")

	reply = f.send(t, "100", "John Doe, john@example.com, +234-800, Lagos Nigeria")
	assert.Contains(t, reply.Text, "role")

	job := f.activeJob(t, "100")
	assert.Equal(t, domain.StepTargetRole, job.Answers.Step)
	assert.Equal(t, "John Doe", job.Answers.Basics.Name)
	assert.Equal(t, "john@example.com", job.Answers.Basics.Email)
}

func TestDuplicateMessageLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "resume")
	f.send(t, "100", "John Doe, john@example.com, +234, Lagos")

	job := f.activeJob(t, "100")
	require.Equal(t, domain.StepTargetRole, job.Answers.Step)

	// Same msg id redelivered with different text.
	reply, err := f.router.HandleInbound(context.Background(), "100", "Data Analyst", fmt.Sprintf("m%d", f.msgSeq), "tester")
	require.NoError(t, err)
	assert.Empty(t, reply.Text)

	job = f.activeJob(t, "100")
	assert.Equal(t, domain.StepTargetRole, job.Answers.Step)
	assert.Empty(t, job.Answers.TargetRole)
}

func TestExperienceBulletsCollected(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "resume")
	f.send(t, "100", "John Doe, john@example.com, +234, Lagos")
	f.send(t, "100", "Data Analyst")
	f.send(t, "100", "Analyst, FinServe, Lagos, Jan 2021, Present")

	f.send(t, "100", "Cut reporting time by 60%")
	f.send(t, "100", "Automated 12 dashboards")
	f.send(t, "100", "done")

	job := f.activeJob(t, "100")
	assert.Equal(t, domain.StepAddAnotherExp, job.Answers.Step)
	require.Len(t, job.Answers.Experiences, 1)
	assert.Len(t, job.Answers.Experiences[0].Bullets, 2)
}

func TestQuotaExceededEntersPaymentRequired(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "resume")

	u, err := f.users.ByTelegramID(context.Background(), "100")
	require.NoError(t, err)
	u.IncrementDocumentCount(domain.DocResume)

	job := f.activeJob(t, "100")
	job.Answers.Step = domain.StepPreview
	job.Answers.Basics.Name = "John Doe"

	reply := f.send(t, "100", "yes")

	job = f.activeJob(t, "100")
	assert.Equal(t, domain.StepPaymentRequired, job.Answers.Step)
	assert.Contains(t, reply.Text, "pay.example")
	assert.Equal(t, "ref-test-1", job.Answers.PaymentReference)
	assert.Zero(t, f.renderer.calls, "renderer must not run when the gate denies")
}

func TestSkillSuggestionsNotRegeneratedOnReentry(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "resume")

	job := f.activeJob(t, "100")
	job.Answers.Step = domain.StepProjects
	job.Answers.TargetRole = "Data Analyst"
	job.Answers.AISuggestedSkills = []string{"SQL", "Python", "Excel"}

	reply := f.send(t, "100", "done")

	assert.Zero(t, f.enhancer.skillCalls, "cached suggestions must be reused")
	assert.Contains(t, reply.Text, "1. SQL")
	assert.Equal(t, domain.StepSkills, f.activeJob(t, "100").Answers.Step)
}

func TestFinalizeGeneratesAndDelivers(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "resume")

	job := f.activeJob(t, "100")
	job.Answers.Step = domain.StepPreview
	job.Answers.Basics.Name = "John Doe"
	job.Answers.TargetRole = "Data Analyst"

	reply := f.send(t, "100", "yes")

	assert.Equal(t, ActionSendDocument, reply.Action)
	assert.Equal(t, "John Doe - Resume.pdf", reply.Filename)
	assert.Equal(t, 1, f.renderer.calls)

	stored, err := f.jobs.ByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, stored.Status)
	assert.Equal(t, domain.StepDone, stored.Answers.Step)

	u, err := f.users.ByTelegramID(context.Background(), "100")
	require.NoError(t, err)
	assert.Equal(t, 1, u.DocumentCount(domain.DocResume))
	assert.Equal(t, 1, u.RoleCount("Data Analyst"))

	data, err := f.artifacts.Read(job.ID, domain.FileFinalPDF, reply.Filename)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestVerifiedPaymentReleasesGeneration(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "resume")

	u, err := f.users.ByTelegramID(context.Background(), "100")
	require.NoError(t, err)
	u.IncrementDocumentCount(domain.DocResume)

	job := f.activeJob(t, "100")
	job.Answers.Step = domain.StepPreview
	job.Answers.Basics.Name = "John Doe"
	f.send(t, "100", "yes")
	require.Equal(t, domain.StepPaymentRequired, f.activeJob(t, "100").Answers.Step)

	f.gateway.verified = true
	reply := f.send(t, "100", "paid")

	assert.Equal(t, ActionSendDocument, reply.Action)
	assert.Equal(t, 1, f.renderer.calls)

	stored, err := f.jobs.ByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.True(t, stored.Answers.PaidGeneration)
	assert.Equal(t, domain.StatusDone, stored.Status)
}

func TestUnverifiedPaidReplyDoesNotRelease(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "resume")

	u, err := f.users.ByTelegramID(context.Background(), "100")
	require.NoError(t, err)
	u.IncrementDocumentCount(domain.DocResume)

	job := f.activeJob(t, "100")
	job.Answers.Step = domain.StepPreview
	job.Answers.Basics.Name = "John Doe"
	f.send(t, "100", "yes")

	reply := f.send(t, "100", "paid")
	assert.Contains(t, reply.Text, "can't see that payment")
	assert.Zero(t, f.renderer.calls)
	assert.Equal(t, domain.StepPaymentRequired, f.activeJob(t, "100").Answers.Step)
}

func TestUnknownStepReinitializesAnswers(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "resume")

	job := f.activeJob(t, "100")
	job.Answers.Step = domain.Step("collecting_feelings")

	reply := f.send(t, "100", "some stray message")

	job = f.activeJob(t, "100")
	assert.Equal(t, domain.StepBasics, job.Answers.Step)
	assert.Contains(t, reply.Text, "comma-separated")
}

func TestRenderFailureDeliversDraftText(t *testing.T) {
	f := newFixture(t)
	f.renderer.fail = true
	f.send(t, "100", "resume")

	job := f.activeJob(t, "100")
	job.Answers.Step = domain.StepPreview
	job.Answers.Basics.Name = "John Doe"
	job.Answers.Summary = "A capable analyst."

	reply := f.send(t, "100", "yes")

	assert.Contains(t, reply.Text, "John Doe")
	assert.Equal(t, ActionNone, reply.Action)

	stored, err := f.jobs.ByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraftReady, stored.Status)
	assert.Equal(t, domain.StepDone, stored.Answers.Step)
	assert.NotEmpty(t, stored.DraftText)
}

func TestCoverLetterBlockedOnFreeTier(t *testing.T) {
	f := newFixture(t)
	reply := f.send(t, "100", "cover letter")

	assert.Contains(t, reply.Text, "Premium")

	u, err := f.users.ByTelegramID(context.Background(), "100")
	require.NoError(t, err)
	_, err = f.jobs.ActiveAny(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGreetingShowsMenu(t *testing.T) {
	f := newFixture(t)
	reply := f.send(t, "100", "hi")
	assert.Equal(t, ActionShowMenu, reply.Action)
}

func TestResetClosesActiveJob(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "resume")
	job := f.activeJob(t, "100")

	reply := f.send(t, "100", "/reset")
	assert.Equal(t, ActionShowMenu, reply.Action)

	stored, err := f.jobs.ByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, stored.Status)
}

func TestPDFCommandRequiresPremium(t *testing.T) {
	f := newFixture(t)
	reply := f.send(t, "100", "/pdf")
	assert.Contains(t, reply.Text, "Premium")
}

func TestAdminStats(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "hi")

	reply := f.send(t, "admin-1", "/stats")
	assert.Contains(t, reply.Text, "Users:")
}

func TestAdminCommandIgnoredForNonAdmin(t *testing.T) {
	f := newFixture(t)
	reply := f.send(t, "100", "/stats")
	assert.NotContains(t, reply.Text, "Users:")
}

func TestHistoryListsCountsAndRecentDocuments(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "hi")

	u, err := f.users.ByTelegramID(context.Background(), "100")
	require.NoError(t, err)

	for _, dt := range []domain.DocumentType{domain.DocResume, domain.DocResume, domain.DocCV} {
		job := domain.NewJob(u.ID, dt)
		job.Status = domain.StatusDone
		job.Answers.Basics.Name = "John Doe"
		require.NoError(t, f.jobs.Save(context.Background(), job))
	}

	reply := f.send(t, "100", "/history")
	assert.Contains(t, reply.Text, "Resume 2")
	assert.Contains(t, reply.Text, "CV 1")
	assert.Contains(t, reply.Text, "John Doe")
}

func TestPreviewMarksJobPreviewReady(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "resume")

	job := f.activeJob(t, "100")
	job.Answers.Step = domain.StepSummary
	job.Answers.Basics.Name = "John Doe"
	job.Answers.Summary = "Seasoned analyst."

	f.send(t, "100", "yes")

	// The job is preview_ready and the next message still reaches it.
	job = f.activeJob(t, "100")
	assert.Equal(t, domain.StepPreview, job.Answers.Step)
	assert.Equal(t, domain.StatusPreviewReady, job.Status)
}

func TestWebhookConfirmationStoresRawEvent(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "resume")

	u, err := f.users.ByTelegramID(context.Background(), "100")
	require.NoError(t, err)
	u.IncrementDocumentCount(domain.DocResume)

	job := f.activeJob(t, "100")
	job.Answers.Step = domain.StepPreview
	job.Answers.Basics.Name = "John Doe"
	f.send(t, "100", "yes")
	require.Equal(t, domain.StepPaymentRequired, f.activeJob(t, "100").Answers.Step)

	raw := []byte(`{"event":"charge.success","data":{"reference":"ref-test-1"}}`)
	reply, settled, err := f.router.ConfirmPayment(context.Background(), "ref-test-1", "100", raw)
	require.NoError(t, err)
	assert.True(t, settled)
	assert.Equal(t, ActionSendDocument, reply.Action)

	recorded := f.payments.payments[len(f.payments.payments)-1]
	assert.Equal(t, domain.PaymentSuccess, recorded.Status)
	assert.Equal(t, raw, recorded.RawWebhook)
}
