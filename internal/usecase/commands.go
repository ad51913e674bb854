package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"careerbuddy/internal/domain"

	"github.com/google/uuid"
)

func helpMessage(supportContact string) string {
	return "🤖 *CareerBuddy Help*\n\n" +
		"I build professional, ATS-friendly career documents right here in chat.\n\n" +
		"*What I can make:*\n" +
		"📄 Resume\n" +
		"📋 CV\n" +
		"✉️ Cover Letter (Premium)\n" +
		"✨ Resume Revamp\n\n" +
		"*Commands:*\n" +
		"/status — your plan and remaining documents\n" +
		"/history — documents you've generated\n" +
		"/upgrade — go Premium\n" +
		"/pdf — re-send your latest document (Premium)\n" +
		"/reset — start over\n\n" +
		"Questions? Contact " + supportContact
}

func (r *Router) statusMessage(u *domain.User) string {
	var b strings.Builder
	tier := "Free"
	if u.Tier == domain.TierPro {
		tier = "Premium ⭐"
	}
	fmt.Fprintf(&b, "📊 *Your Account*\n\nPlan: *%s*\n", tier)
	if u.Tier == domain.TierPro && u.PremiumExpiresAt != nil {
		fmt.Fprintf(&b, "Renews: %s\n", u.PremiumExpiresAt.Format("Jan 2, 2006"))
	}
	b.WriteString("\n*This month:*\n")
	for _, dt := range []domain.DocumentType{domain.DocResume, domain.DocCV, domain.DocCover, domain.DocRevamp} {
		limit := QuotaLimit(u.Tier, dt)
		if limit == 0 {
			fmt.Fprintf(&b, "• %s: Premium only 🔒\n", dt.DisplayName())
			continue
		}
		fmt.Fprintf(&b, "• %s: %d of %d used\n", dt.DisplayName(), u.DocumentCount(dt), limit)
	}
	if u.Tier == domain.TierFree {
		remaining := FreeTierTotal - u.TotalGenerations()
		if remaining < 0 {
			remaining = 0
		}
		fmt.Fprintf(&b, "\nFree documents remaining: *%d of %d*\n", remaining, FreeTierTotal)
		b.WriteString("Type */upgrade* to unlock more.")
	}
	if !u.QuotaResetsAt.IsZero() {
		fmt.Fprintf(&b, "\nQuota resets: %s", u.QuotaResetsAt.Format("Jan 2, 2006"))
	}
	return b.String()
}

func (r *Router) historyMessage(ctx context.Context, u *domain.User) string {
	jobs, err := r.jobs.RecentDone(ctx, u.ID, 10)
	if err != nil || len(jobs) == 0 {
		return "📂 You haven't generated any documents yet.\n\nType *menu* to create your first one!"
	}
	var b strings.Builder
	b.WriteString("📂 *Your documents:*\n\n")
	if counts, cerr := r.jobs.CountDoneByType(ctx, u.ID); cerr == nil && len(counts) > 0 {
		var parts []string
		for _, dt := range []domain.DocumentType{domain.DocResume, domain.DocCV, domain.DocCover, domain.DocRevamp} {
			if n := counts[dt]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", dt.DisplayName(), n))
			}
		}
		fmt.Fprintf(&b, "Generated so far: %s\n\n", strings.Join(parts, ", "))
	}
	for _, j := range jobs {
		name := j.Answers.Basics.Name
		if name == "" {
			name = "Untitled"
		}
		fmt.Fprintf(&b, "• %s — %s (%s)\n", j.Type.DisplayName(), name, j.UpdatedAt.Format("Jan 2"))
	}
	b.WriteString("\nType */pdf* to re-send your latest document (Premium).")
	return b.String()
}

func (r *Router) upgradeMessage(ctx context.Context, u *domain.User) string {
	if u.Tier == domain.TierPro {
		msg := "⭐ You're already on Premium!"
		if u.PremiumExpiresAt != nil {
			msg += fmt.Sprintf(" Your plan renews on %s.", u.PremiumExpiresAt.Format("Jan 2, 2006"))
		}
		return msg
	}

	link, err := r.gateway.CreatePaymentLink(ctx, u, "premium", int64(PremiumPackagePrice)*100)
	if err != nil {
		r.log.Error().Err(err).Str("user_id", u.ID.String()).Msg("premium link init failed")
		return fmt.Sprintf("⭐ *Premium — ₦%d/month*\n\nI couldn't reach the payment provider just now. "+
			"Please try */upgrade* again in a moment.", PremiumPackagePrice)
	}

	payment := &domain.Payment{
		ID:         uuid.New(),
		UserID:     u.ID,
		Provider:   "paystack",
		AmountKobo: int64(PremiumPackagePrice) * 100,
		Currency:   "NGN",
		Status:     domain.PaymentInit,
		Reference:  link.Reference,
		Metadata:   map[string]interface{}{"purpose": "premium"},
		CreatedAt:  time.Now(),
	}
	if err := r.payments.Record(ctx, payment); err != nil {
		r.log.Error().Err(err).Msg("record premium init payment")
	}

	return fmt.Sprintf("⭐ *Upgrade to Premium — ₦%d/month*\n\n"+
		"You'll unlock:\n"+
		"✨ More documents every month\n"+
		"✨ Cover letter generation\n"+
		"✨ Premium templates\n"+
		"✨ Enhanced AI writing\n"+
		"✨ PDF re-delivery\n\n"+
		"Pay here:\n%s\n\n"+
		"After paying, reply *paid* and I'll activate Premium right away.",
		PremiumPackagePrice, link.AuthorizationURL)
}

// handlePaymentBypass resolves a "paid" reply: first a pending per-document
// payment on the active job, then a pending premium purchase. Every claim is
// verified against the gateway before anything is released.
func (r *Router) handlePaymentBypass(ctx context.Context, user *domain.User) (Reply, error) {
	job, err := r.jobs.ActiveAny(ctx, user.ID)
	if err == nil && job.Answers != nil &&
		job.Answers.Step == domain.StepPaymentRequired && job.Answers.PaymentReference != "" {

		verified, verr := r.gateway.VerifyPayment(ctx, job.Answers.PaymentReference)
		if verr != nil {
			r.log.Error().Err(verr).Str("reference", job.Answers.PaymentReference).Msg("payment verify failed")
			return text("I couldn't reach the payment provider to confirm. Give it a minute and reply *paid* again."), nil
		}
		if !verified {
			return text("🤔 I can't see that payment yet. It can take a minute to reflect.\n\n" +
				"Reply *paid* again shortly, or contact " + r.supportContact + " if you were charged."), nil
		}

		jobID := job.ID
		payment := &domain.Payment{
			ID:         uuid.New(),
			UserID:     user.ID,
			JobID:      &jobID,
			Provider:   "paystack",
			AmountKobo: int64(PaidGenerationPrice) * 100,
			Currency:   "NGN",
			Status:     domain.PaymentSuccess,
			Reference:  job.Answers.PaymentReference,
			CreatedAt:  time.Now(),
		}
		if err := r.payments.Record(ctx, payment); err != nil {
			return Reply{}, fmt.Errorf("record payment: %w", err)
		}
		t := &turn{ctx: ctx, user: user, job: job}
		return r.ReleasePayment(t)
	} else if err != nil && err != ErrNotFound {
		return Reply{}, err
	}

	pending, err := r.payments.LatestInitByUser(ctx, user.ID)
	if err == ErrNotFound {
		return text("I don't see a pending payment on your account. Type */upgrade* to start one."), nil
	}
	if err != nil {
		return Reply{}, err
	}

	verified, err := r.gateway.VerifyPayment(ctx, pending.Reference)
	if err != nil {
		r.log.Error().Err(err).Str("reference", pending.Reference).Msg("payment verify failed")
		return text("I couldn't reach the payment provider to confirm. Give it a minute and reply *paid* again."), nil
	}
	if !verified {
		return text("🤔 I can't see that payment yet. It can take a minute to reflect.\n\n" +
			"Reply *paid* again shortly, or contact " + r.supportContact + " if you were charged."), nil
	}

	return r.activatePremium(ctx, user, pending.Reference, nil)
}

// activatePremium flips the tier and records the settled transaction, keeping
// the raw gateway event alongside it when one is in hand.
func (r *Router) activatePremium(ctx context.Context, user *domain.User, reference string, raw []byte) (Reply, error) {
	UpgradeToPremium(user, time.Now())
	user.UpdatedAt = time.Now()
	if err := r.users.Save(ctx, user); err != nil {
		return Reply{}, fmt.Errorf("save upgraded user: %w", err)
	}
	payment := &domain.Payment{
		ID:         uuid.New(),
		UserID:     user.ID,
		Provider:   "paystack",
		AmountKobo: int64(PremiumPackagePrice) * 100,
		Currency:   "NGN",
		Status:     domain.PaymentSuccess,
		Reference:  reference,
		Metadata:   map[string]interface{}{"purpose": "premium"},
		RawWebhook: raw,
		CreatedAt:  time.Now(),
	}
	if err := r.payments.Record(ctx, payment); err != nil {
		r.log.Error().Err(err).Msg("record premium payment")
	}
	r.log.Info().Str("user_id", user.ID.String()).Msg("premium activated")
	return Reply{
		Text:   "🎉 *Welcome to Premium!*\n\nEverything is unlocked. What shall we create first?",
		Action: ActionShowDocumentMenu,
		Tier:   user.Tier,
	}, nil
}

// ConfirmPayment settles a gateway webhook event; raw is the signed body,
// stored with the payment record. The returned reply should be pushed to the
// user by the caller; the bool reports whether anything was settled.
func (r *Router) ConfirmPayment(ctx context.Context, reference, telegramUserID string, raw []byte) (Reply, bool, error) {
	user, err := r.users.ByTelegramID(ctx, telegramUserID)
	if err != nil {
		return Reply{}, false, err
	}

	job, err := r.jobs.ActiveAny(ctx, user.ID)
	if err == nil && job.Answers != nil &&
		job.Answers.Step == domain.StepPaymentRequired && job.Answers.PaymentReference == reference {
		jobID := job.ID
		payment := &domain.Payment{
			ID:         uuid.New(),
			UserID:     user.ID,
			JobID:      &jobID,
			Provider:   "paystack",
			AmountKobo: int64(PaidGenerationPrice) * 100,
			Currency:   "NGN",
			Status:     domain.PaymentSuccess,
			Reference:  reference,
			RawWebhook: raw,
			CreatedAt:  time.Now(),
		}
		if err := r.payments.Record(ctx, payment); err != nil {
			return Reply{}, false, err
		}
		t := &turn{ctx: ctx, user: user, job: job}
		reply, err := r.ReleasePayment(t)
		return reply, err == nil, err
	} else if err != nil && err != ErrNotFound {
		return Reply{}, false, err
	}

	pending, err := r.payments.LatestInitByUser(ctx, user.ID)
	if err == nil && pending.Reference == reference {
		reply, err := r.activatePremium(ctx, user, reference, raw)
		return reply, err == nil, err
	}

	r.log.Warn().Str("reference", reference).Msg("webhook reference matched no pending payment")
	return Reply{}, false, nil
}

// handlePDFCommand re-sends the latest finished document. Premium perk.
func (r *Router) handlePDFCommand(ctx context.Context, user *domain.User) (Reply, error) {
	if !PDFAllowed(user) {
		return text("📄 PDF re-delivery is a Premium feature.\n\nType */upgrade* to unlock it!"), nil
	}
	job, err := r.jobs.LatestDone(ctx, user.ID)
	if err == ErrNotFound {
		return text("You haven't generated any documents yet. Type *menu* to create one!"), nil
	}
	if err != nil {
		return Reply{}, err
	}
	filename := documentFilename(job)
	if _, err := r.artifacts.Read(job.ID, domain.FileFinalPDF, filename); err != nil {
		r.log.Error().Err(err).Str("job_id", job.ID.String()).Msg("artifact missing for redelivery")
		return text("😕 I couldn't find that file anymore. Reply */reset* to generate a fresh one."), nil
	}
	return Reply{
		Text:     fmt.Sprintf("📄 Re-sending your latest *%s*...", job.Type.DisplayName()),
		Action:   ActionSendDocument,
		JobID:    job.ID,
		Filename: filename,
	}, nil
}
