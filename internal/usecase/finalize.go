package usecase

import (
	"fmt"
	"time"

	"careerbuddy/internal/domain"
	"careerbuddy/internal/model"
)

// finalizeJob is the single exit of every workflow: gate, render, persist,
// deliver. The quota gate is consulted here and nowhere else; a generation
// already paid for individually skips it.
func (r *Router) finalizeJob(t *turn) (Reply, error) {
	ans := t.answers()

	if !ans.PaidGeneration {
		decision := r.gate.CanGenerate(t.user, t.job.Type)
		if !decision.Allowed {
			return r.enterPaymentRequired(t)
		}
	}

	if err := model.ValidateAnswers(t.job.Type, ans); err != nil {
		r.log.Warn().Err(err).Str("job_id", t.job.ID.String()).Msg("answers failed validation")
		return text("Something's missing from your answers (at minimum I need your name). Reply */reset* to start over."), nil
	}

	html, err := r.templates.Build(t.job)
	if err != nil {
		return Reply{}, fmt.Errorf("build document html: %w", err)
	}

	pdf, err := r.renderer.RenderHTMLToPDF(t.ctx, html)
	if err != nil {
		r.log.Error().Err(err).Str("job_id", t.job.ID.String()).Msg("render failed, delivering draft text")
		t.job.Status = domain.StatusDraftReady
		t.job.DraftText = draftText(t.job)
		if err := r.advance(t.ctx, t.job, domain.StepDone); err != nil {
			return Reply{}, err
		}
		return text("⚠️ I couldn't produce the PDF right now, but here's your document content so nothing is lost:\n\n" +
			t.job.DraftText + "\n\nReply */pdf* later and I'll retry the conversion."), nil
	}

	filename := documentFilename(t.job)
	file, err := r.artifacts.Save(t.job.ID, domain.FileFinalPDF, filename, pdf)
	if err != nil {
		return Reply{}, fmt.Errorf("store artifact: %w", err)
	}
	if err := r.files.Record(t.ctx, file); err != nil {
		return Reply{}, fmt.Errorf("record file: %w", err)
	}

	t.user.IncrementDocumentCount(t.job.Type)
	if ans.TargetRole != "" {
		t.user.IncrementRoleCount(ans.TargetRole)
	}
	t.user.UpdatedAt = time.Now()
	if err := r.users.Save(t.ctx, t.user); err != nil {
		return Reply{}, fmt.Errorf("save user counters: %w", err)
	}

	t.job.Status = domain.StatusDone
	if err := r.advance(t.ctx, t.job, domain.StepDone); err != nil {
		return Reply{}, err
	}

	r.log.Info().
		Str("job_id", t.job.ID.String()).
		Str("type", string(t.job.Type)).
		Int("bytes", len(pdf)).
		Msg("document generated")

	return Reply{
		Text:     fmt.Sprintf("🎉 Your *%s* is ready! Sending it now...", t.job.Type.DisplayName()),
		Action:   ActionSendDocument,
		JobID:    t.job.ID,
		Filename: filename,
	}, nil
}

// enterPaymentRequired initializes a hosted transaction and parks the job
// until the payment webhook or a verified "paid" reply releases it.
func (r *Router) enterPaymentRequired(t *turn) (Reply, error) {
	link, err := r.gateway.CreatePaymentLink(t.ctx, t.user, t.answers().TargetRole, int64(PaidGenerationPrice)*100)
	if err != nil {
		r.log.Error().Err(err).Str("job_id", t.job.ID.String()).Msg("payment link init failed")
		if err := r.advance(t.ctx, t.job, domain.StepPaymentRequired); err != nil {
			return Reply{}, err
		}
		return text(fmt.Sprintf("🔒 You've used up your included documents.\n\n"+
			"I couldn't reach the payment provider just now. Try again in a moment, "+
			"or contact %s for help.", r.supportContact)), nil
	}

	t.answers().PaymentReference = link.Reference
	if err := r.advance(t.ctx, t.job, domain.StepPaymentRequired); err != nil {
		return Reply{}, err
	}

	return text(fmt.Sprintf("🔒 *You've used up your included documents.*\n\n"+
		"To generate this %s you can either:\n\n"+
		"💳 Pay ₦%d for this document:\n%s\n\n"+
		"⭐ Or type */upgrade* for Premium (₦%d/month) and unlock everything.\n\n"+
		"After paying, reply *paid* and I'll pick up right where we left off.",
		t.job.Type.DisplayName(), PaidGenerationPrice, link.AuthorizationURL, PremiumPackagePrice)), nil
}

// ReleasePayment marks a job's pending payment as settled and finishes the
// generation. Called by the webhook handler and the "paid" reply path.
func (r *Router) ReleasePayment(t *turn) (Reply, error) {
	t.answers().PaidGeneration = true
	if err := r.advance(t.ctx, t.job, domain.StepFinalize); err != nil {
		return Reply{}, err
	}
	return r.finalizeJob(t)
}
