package usecase

import (
	"context"
	"fmt"
	"strings"

	"careerbuddy/internal/domain"
)

// handleAdminCommand intercepts operator commands. Returns handled=false for
// non-admins and for anything that isn't an admin command, so regular routing
// continues.
func (r *Router) handleAdminCommand(ctx context.Context, user *domain.User, telegramUserID, incoming, lower string) (Reply, bool) {
	isCmd := false
	for _, p := range adminCommandPrefixes {
		if strings.HasPrefix(lower, p) {
			isCmd = true
			break
		}
	}
	if !isCmd || !r.isAdmin(telegramUserID) {
		return Reply{}, false
	}

	fields := strings.Fields(incoming)
	switch strings.ToLower(fields[0]) {
	case "/admin":
		return text("🔧 *Admin commands*\n\n" +
			"/stats — usage overview\n" +
			"/broadcast <message> — message every user\n" +
			"/setpro <telegram_id> — grant Premium\n" +
			"/sample — generate a sample document"), true
	case "/stats":
		return r.adminStats(ctx), true
	case "/broadcast":
		msg := strings.TrimSpace(strings.TrimPrefix(incoming, fields[0]))
		if msg == "" {
			return text("Usage: /broadcast <message>"), true
		}
		return r.adminBroadcast(ctx, msg), true
	case "/setpro":
		if len(fields) < 2 {
			return text("Usage: /setpro <telegram_id>"), true
		}
		return r.adminSetPro(ctx, fields[1]), true
	case "/sample":
		reply, err := r.adminSample(ctx, user)
		if err != nil {
			r.log.Error().Err(err).Msg("sample generation failed")
			return text("Sample generation failed: " + err.Error()), true
		}
		return reply, true
	}
	return Reply{}, false
}

func (r *Router) adminStats(ctx context.Context) Reply {
	users, err := r.users.All(ctx)
	if err != nil {
		return text("Stats unavailable: " + err.Error())
	}
	var pro, generations int
	for _, u := range users {
		if u.Tier == domain.TierPro {
			pro++
		}
		generations += u.TotalGenerations()
	}
	return text(fmt.Sprintf("📈 *Stats*\n\n"+
		"Users: %d\n"+
		"Premium: %d\n"+
		"Documents this month: %d", len(users), pro, generations))
}

func (r *Router) adminBroadcast(ctx context.Context, msg string) Reply {
	if r.notifier == nil {
		return text("Broadcast unavailable: no notifier configured.")
	}
	users, err := r.users.All(ctx)
	if err != nil {
		return text("Broadcast failed: " + err.Error())
	}
	sent := 0
	for _, u := range users {
		if err := r.notifier.Notify(ctx, u.TelegramUserID, msg); err != nil {
			r.log.Warn().Err(err).Str("telegram_user_id", u.TelegramUserID).Msg("broadcast delivery failed")
			continue
		}
		sent++
	}
	return text(fmt.Sprintf("📣 Broadcast sent to %d of %d users.", sent, len(users)))
}

func (r *Router) adminSetPro(ctx context.Context, telegramID string) Reply {
	target, err := r.users.ByTelegramID(ctx, telegramID)
	if err == ErrNotFound {
		return text("No user with telegram id " + telegramID)
	}
	if err != nil {
		return text("Lookup failed: " + err.Error())
	}
	if _, err := r.activatePremium(ctx, target, "waived-admin-grant", nil); err != nil {
		return text("Upgrade failed: " + err.Error())
	}
	if err := r.payments.Record(ctx, domain.NewWaivedPayment(target.ID, "", "")); err != nil {
		r.log.Warn().Err(err).Msg("record waived payment")
	}
	if r.notifier != nil {
		_ = r.notifier.Notify(ctx, target.TelegramUserID, "🎉 You've been upgraded to *Premium*! Enjoy.")
	}
	return text("✅ " + target.DisplayName() + " is now Premium.")
}

// adminSample renders a canned resume end to end, exercising the template and
// renderer pipeline without touching quotas.
func (r *Router) adminSample(ctx context.Context, admin *domain.User) (Reply, error) {
	job := domain.NewJob(admin.ID, domain.DocResume)
	job.Status = domain.StatusDone
	job.Answers = sampleAnswers()

	if err := r.jobs.Save(ctx, job); err != nil {
		return Reply{}, err
	}

	html, err := r.templates.Build(job)
	if err != nil {
		return Reply{}, err
	}
	pdf, err := r.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return Reply{}, err
	}

	filename := documentFilename(job)
	file, err := r.artifacts.Save(job.ID, domain.FileFinalPDF, filename, pdf)
	if err != nil {
		return Reply{}, err
	}
	if err := r.files.Record(ctx, file); err != nil {
		return Reply{}, err
	}

	return Reply{
		Text:     "📄 Sample resume generated.",
		Action:   ActionSendDocument,
		JobID:    job.ID,
		Filename: filename,
	}, nil
}

func sampleAnswers() *domain.Answers {
	ans := domain.NewAnswers(domain.StepDone)
	ans.Basics = domain.Basics{
		Name:     "Ada Obi",
		Email:    "ada.obi@example.com",
		Phone:    "+234-800-000-0000",
		Location: "Lagos Nigeria",
	}
	ans.TargetRole = "Data Analyst"
	ans.Summary = "Detail-oriented data analyst with four years of experience turning messy datasets into decisions that moved revenue."
	ans.Skills = []string{"SQL", "Python", "Power BI", "Stakeholder Communication"}
	ans.Experiences = []domain.Experience{{
		Role:    "Data Analyst",
		Company: "FinServe",
		Start:   "Jan 2021",
		End:     "Present",
		Bullets: []string{
			"Cut monthly reporting time by 60% by automating dashboards in Power BI",
			"Identified churn drivers that informed a retention push worth ₦40m annually",
		},
	}}
	ans.Education = []domain.Education{{
		Degree: "B.Sc. Statistics",
		School: "University of Ibadan",
		Year:   "2020",
	}}
	return ans
}
