package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"careerbuddy/internal/domain"

	"github.com/rs/zerolog"
)

var (
	greetings            = set("hi", "hello", "hey", "start", "menu", "/start")
	resets               = set("reset", "/reset", "restart")
	helpCommands         = set("/help", "help")
	statusCommands       = set("/status", "status")
	historyCommands      = set("/history", "history", "my documents", "documents")
	upgradeCommands      = set("/upgrade", "upgrade")
	paymentBypassPhrases = set("payment made", "paid", "payment done", "payment complete")
	pdfCommands          = set("/pdf", "pdf", "convert to pdf", "convert pdf")
)

var adminCommandPrefixes = []string{"/admin", "/stats", "/broadcast", "/sample", "/setpro"}

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

func has(m map[string]struct{}, key string) bool {
	_, ok := m[key]
	return ok
}

// Deps wires the dispatcher's collaborators.
type Deps struct {
	Users    UserStore
	Jobs     JobStore
	Messages MessageStore
	Payments PaymentStore
	Files    FileStore

	Enhancer  Enhancer
	Renderer  Renderer
	Artifacts Artifacts
	Gate      Gate
	Gateway   Gateway

	Templates *TemplateSet
	Notifier  Notifier

	IsAdmin        func(telegramUserID string) bool
	SupportContact string
	Log            zerolog.Logger
}

// Router is the conversation dispatcher: it owns the per-document-type step
// tables and every session command handled outside them.
type Router struct {
	users    UserStore
	jobs     JobStore
	messages MessageStore
	payments PaymentStore
	files    FileStore

	enhancer  Enhancer
	renderer  Renderer
	artifacts Artifacts
	gate      Gate
	gateway   Gateway

	templates *TemplateSet
	notifier  Notifier

	isAdmin        func(string) bool
	supportContact string
	log            zerolog.Logger

	resumeSteps map[domain.Step]stepHandler
	coverSteps  map[domain.Step]stepHandler
	revampSteps map[domain.Step]stepHandler
}

func NewRouter(d Deps) *Router {
	r := &Router{
		users:          d.Users,
		jobs:           d.Jobs,
		messages:       d.Messages,
		payments:       d.Payments,
		files:          d.Files,
		enhancer:       d.Enhancer,
		renderer:       d.Renderer,
		artifacts:      d.Artifacts,
		gate:           d.Gate,
		gateway:        d.Gateway,
		templates:      d.Templates,
		notifier:       d.Notifier,
		isAdmin:        d.IsAdmin,
		supportContact: d.SupportContact,
		log:            d.Log,
	}
	if r.isAdmin == nil {
		r.isAdmin = func(string) bool { return false }
	}
	if r.supportContact == "" {
		r.supportContact = "@careerbuddy_support"
	}

	r.resumeSteps = map[domain.Step]stepHandler{
		domain.StepBasics:            r.resumeBasics,
		domain.StepTargetRole:        r.resumeTargetRole,
		domain.StepExperienceHeader:  r.resumeExperienceHeader,
		domain.StepExperienceBullets: r.resumeExperienceBullets,
		domain.StepAddAnotherExp:     r.resumeAddAnotherExperience,
		domain.StepEducation:         r.resumeEducation,
		domain.StepCertifications:    r.resumeCertifications,
		domain.StepProfiles:          r.resumeProfiles,
		domain.StepProjects:          r.resumeProjects,
		domain.StepSkills:            r.resumeSkills,
		domain.StepPersonalInfo:      r.resumePersonalInfo,
		domain.StepSummary:           r.resumeSummary,
		domain.StepPreview:           r.resumePreview,
		domain.StepTemplateSelection: r.resumeTemplateSelection,
		domain.StepPaymentRequired:   r.resumePaymentRequired,
		domain.StepFinalize:          r.resumeFinalize,
		domain.StepDone:              r.stepDone,
	}
	r.coverSteps = map[domain.Step]stepHandler{
		domain.StepBasics:             r.coverBasics,
		domain.StepRoleCompany:        r.coverRoleCompany,
		domain.StepExperienceOverview: r.coverExperienceOverview,
		domain.StepInterestReason:     r.coverInterestReason,
		domain.StepCurrentRole:        r.coverCurrentRole,
		domain.StepAchievement1:       r.coverAchievement1,
		domain.StepAchievement2:       r.coverAchievement2,
		domain.StepKeySkills:          r.coverKeySkills,
		domain.StepCompanyGoal:        r.coverCompanyGoal,
		domain.StepPreview:            r.coverPreview,
		domain.StepPaymentRequired:    r.coverPaymentRequired,
		domain.StepFinalize:           r.resumeFinalize,
		domain.StepDone:               r.stepDone,
	}
	r.revampSteps = map[domain.Step]stepHandler{
		domain.StepUpload:           r.revampUpload,
		domain.StepRevampProcessing: r.revampProcessing,
		domain.StepPreview:          r.revampPreview,
		domain.StepPaymentRequired:  r.revampPaymentRequired,
		domain.StepFinalize:         r.resumeFinalize,
		domain.StepDone:             r.stepDone,
	}
	return r
}

// stepTable returns the recognized steps for a document type. Resume and CV
// share one table.
func (r *Router) stepTable(dt domain.DocumentType) map[domain.Step]stepHandler {
	switch dt {
	case domain.DocCover:
		return r.coverSteps
	case domain.DocRevamp:
		return r.revampSteps
	default:
		return r.resumeSteps
	}
}

// advance moves the job to the next step and persists immediately, so a
// process restart or webhook redelivery resumes from the committed state.
func (r *Router) advance(ctx context.Context, job *domain.Job, next domain.Step) error {
	job.Answers.Step = next
	if next == domain.StepPreview {
		job.Status = domain.StatusPreviewReady
	}
	job.UpdatedAt = time.Now()
	if err := r.jobs.Save(ctx, job); err != nil {
		return fmt.Errorf("advance to %s: %w", next, err)
	}
	r.log.Info().Str("job_id", job.ID.String()).Str("step", string(next)).Msg("advanced")
	return nil
}

// saveAnswers persists answer mutations without changing the step.
func (r *Router) saveAnswers(ctx context.Context, job *domain.Job) error {
	job.UpdatedAt = time.Now()
	return r.jobs.Save(ctx, job)
}

// dedupe reports whether the message id exactly repeats the job's last one,
// marking it as seen otherwise. This is the at-least-once-delivery safeguard.
func (r *Router) dedupe(ctx context.Context, job *domain.Job, msgID string) (bool, error) {
	if msgID == "" {
		return false, nil
	}
	if job.LastMsgID == msgID {
		r.log.Warn().Str("job_id", job.ID.String()).Str("msg_id", msgID).Msg("duplicate message, ignoring")
		return true, nil
	}
	job.LastMsgID = msgID
	if err := r.jobs.Save(ctx, job); err != nil {
		return false, fmt.Errorf("mark msg id: %w", err)
	}
	return false, nil
}

// inferType maps free text or a menu callback value to a document type.
func inferType(text string) (domain.DocumentType, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	switch t {
	case "choose_resume":
		return domain.DocResume, true
	case "choose_cv", "cv":
		return domain.DocCV, true
	case "choose_cover":
		return domain.DocCover, true
	case "choose_revamp", "revamp":
		return domain.DocRevamp, true
	}
	switch {
	case strings.Contains(t, "resume"):
		return domain.DocResume, true
	case strings.Contains(" "+t+" ", " cv "):
		return domain.DocCV, true
	case strings.Contains(t, "cover"):
		return domain.DocCover, true
	case strings.Contains(t, "revamp"), strings.Contains(t, "improve"), strings.Contains(t, "enhance"):
		return domain.DocRevamp, true
	}
	return "", false
}

func (r *Router) ensureUser(ctx context.Context, telegramUserID, username string) (*domain.User, error) {
	user, err := r.users.ByTelegramID(ctx, telegramUserID)
	if err == nil {
		changed := ResetQuotaIfDue(user, time.Now())
		changed = ExpirePremiumIfDue(user, time.Now()) || changed
		if username != "" && user.TelegramUsername != username {
			user.TelegramUsername = username
			changed = true
		}
		if changed {
			if err := r.users.Save(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	user = domain.NewUser(telegramUserID, username)
	if err := r.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	r.log.Info().Str("telegram_user_id", telegramUserID).Msg("created user")
	return user, nil
}

func (r *Router) logMessage(ctx context.Context, user *domain.User, job *domain.Job, dir domain.Direction, content string) {
	m := domain.NewMessage(user.ID, nil, dir, content)
	if job != nil {
		id := job.ID
		m.JobID = &id
	}
	if err := r.messages.Append(ctx, m); err != nil {
		r.log.Error().Err(err).Msg("message log append failed")
	}
}

// HandleInbound routes one inbound text event end to end: session commands
// first, then the active job's step table.
func (r *Router) HandleInbound(ctx context.Context, telegramUserID, textIn, msgID, username string) (Reply, error) {
	user, err := r.ensureUser(ctx, telegramUserID, username)
	if err != nil {
		return Reply{}, err
	}

	incoming := strings.TrimSpace(textIn)
	lower := strings.ToLower(incoming)

	r.logMessage(ctx, user, nil, domain.DirectionInbound, incoming)

	if reply, handled := r.handleAdminCommand(ctx, user, telegramUserID, incoming, lower); handled {
		return reply, nil
	}

	switch {
	case has(helpCommands, lower):
		return text(helpMessage(r.supportContact)), nil
	case has(statusCommands, lower):
		return text(r.statusMessage(user)), nil
	case has(historyCommands, lower):
		return text(r.historyMessage(ctx, user)), nil
	case has(upgradeCommands, lower):
		return text(r.upgradeMessage(ctx, user)), nil
	case has(paymentBypassPhrases, lower):
		return r.handlePaymentBypass(ctx, user)
	case has(pdfCommands, lower) || (strings.Contains(lower, "convert") && strings.Contains(lower, "pdf")):
		return r.handlePDFCommand(ctx, user)
	}

	if has(resets, lower) {
		if job, err := r.jobs.ActiveAny(ctx, user.ID); err == nil {
			job.Status = domain.StatusClosed
			if err := r.saveAnswers(ctx, job); err != nil {
				return Reply{}, err
			}
			r.log.Info().Str("job_id", job.ID.String()).Msg("reset closed job")
		}
		return Reply{Action: ActionShowMenu}, nil
	}
	if has(greetings, lower) {
		return Reply{Action: ActionShowMenu}, nil
	}

	// Plan selection from the welcome menu.
	if lower == "free" || lower == "premium" || lower == "pro" {
		tierMsg := "✅ *Free Plan activated!*\n\nYou get *2 free documents* to create professional resumes and CVs with AI assistance.\n\nLet's build something great together!"
		if lower != "free" {
			tierMsg = fmt.Sprintf("✅ *Ready to get started!*\n\nYou get *2 free documents* with AI-powered generation.\n\nAfter that, upgrade to Premium for ₦%d/month to unlock every feature.", PremiumPackagePrice)
		}
		r.logMessage(ctx, user, nil, domain.DirectionOutbound, tierMsg)
		return Reply{Text: tierMsg, Action: ActionShowDocumentMenu, Tier: user.Tier}, nil
	}

	// Explicit selections (menu buttons, bare type words) always route to
	// that document's job. Fuzzy keyword inference only applies when no job
	// is in flight, so an answer that merely mentions "resume" can't hijack
	// an active conversation.
	docType, selected := inferType(incoming)
	explicit := selected && inferredOnly(incoming)

	var job *domain.Job
	if explicit {
		if reply, blocked := r.blockCover(user, docType); blocked {
			return reply, nil
		}
		job, err = r.findOrCreateJob(ctx, user, docType)
	} else {
		job, err = r.jobs.ActiveAny(ctx, user.ID)
		if err == ErrNotFound && selected {
			if reply, blocked := r.blockCover(user, docType); blocked {
				return reply, nil
			}
			job, err = r.findOrCreateJob(ctx, user, docType)
			explicit = true
		} else if err == ErrNotFound {
			return Reply{Action: ActionShowMenu}, nil
		}
	}
	if err != nil {
		return Reply{}, err
	}

	if dup, err := r.dedupe(ctx, job, msgID); err != nil {
		return Reply{}, err
	} else if dup {
		return Reply{}, nil
	}

	// Unknown stored step: the answers document is stale or corrupt, start
	// the workflow over rather than guessing.
	if job.Answers == nil || !r.recognized(job.Type, job.Answers.Step) {
		initial := domain.StepBasics
		if job.Type == domain.DocRevamp {
			initial = domain.StepUpload
		}
		job.Answers = domain.NewAnswers(initial)
		if err := r.saveAnswers(ctx, job); err != nil {
			return Reply{}, err
		}
		r.log.Warn().Str("job_id", job.ID.String()).Msg("reinitialized answers: unrecognized step")
	}

	t := &turn{ctx: ctx, user: user, job: job, text: incoming, lower: lower}

	// A selection message is a menu choice, not an answer to the current
	// step's question.
	if explicit {
		t.text, t.lower = "", ""
	}

	reply, err := r.dispatch(t)
	if err != nil {
		return Reply{}, err
	}

	if reply.Text != "" {
		r.logMessage(ctx, user, job, domain.DirectionOutbound, reply.Text)
	}
	return reply, nil
}

// inferredOnly reports whether the text is purely a type selection (menu
// button or a bare type word) rather than step input.
func inferredOnly(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	switch t {
	case "choose_resume", "choose_cv", "choose_cover", "choose_revamp",
		"resume", "cv", "cover", "cover letter", "revamp":
		return true
	}
	return false
}

func (r *Router) recognized(dt domain.DocumentType, step domain.Step) bool {
	_, ok := r.stepTable(dt)[step]
	return ok
}

func (r *Router) dispatch(t *turn) (Reply, error) {
	handler := r.stepTable(t.job.Type)[t.job.Answers.Step]
	return handler(t)
}

// blockCover upsells free users who pick a cover letter.
func (r *Router) blockCover(user *domain.User, dt domain.DocumentType) (Reply, bool) {
	if dt != domain.DocCover || user.Tier != domain.TierFree {
		return Reply{}, false
	}
	return text("💼 *Cover Letters are a Premium feature*\n\n" +
		"Upgrade to Premium and unlock:\n" +
		"✨ Professional cover letter generation\n" +
		"✨ Enhanced AI with business impact analysis\n" +
		"✨ Priority support\n\n" +
		"Ready to upgrade? Type */upgrade* to get started!"), true
}

func (r *Router) findOrCreateJob(ctx context.Context, user *domain.User, dt domain.DocumentType) (*domain.Job, error) {
	job, err := r.jobs.ActiveByType(ctx, user.ID, dt)
	if err == nil {
		return job, nil
	}
	if err != ErrNotFound {
		return nil, err
	}
	job = domain.NewJob(user.ID, dt)
	if err := r.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	r.log.Info().Str("job_id", job.ID.String()).Str("type", string(dt)).Msg("created job")
	return job, nil
}

func (r *Router) stepDone(t *turn) (Reply, error) {
	return text("Your document has been sent! Reply */reset* to create another document, or *menu* to see options."), nil
}

var filenameSanitizer = regexp.MustCompile(`[<>:"/\\|?*]`)

// documentFilename builds "Name - Document Type.pdf" for delivery.
func documentFilename(job *domain.Job) string {
	name := job.Answers.Basics.Name
	if name == "" {
		name = "Document"
	}
	name = filenameSanitizer.ReplaceAllString(name, "")
	return fmt.Sprintf("%s - %s.pdf", name, job.Type.DisplayName())
}
