package usecase

import (
	"context"
	"strings"

	"careerbuddy/internal/domain"
)

const minRevampChars = 200

// Revamp takes an existing resume as pasted text (or an uploaded text file,
// which the transport extracts before calling HandleDocumentUpload) and runs
// it through the enhancer.

func (r *Router) revampUpload(t *turn) (Reply, error) {
	if t.text == "" {
		return text("📄 *Resume Revamp*\n\n" +
			"Paste the full text of your current resume, or upload it as a .txt file.\n\n" +
			"I'll rewrite it with stronger wording and better structure."), nil
	}
	if len(t.text) < minRevampChars {
		return text("That looks too short to be a full resume. Paste the complete text, including your experience and education sections."), nil
	}
	return r.acceptRevampContent(t, t.text, "")
}

// HandleUpload is the entry for Telegram file uploads. The transport has
// already downloaded and decoded the file to plain text.
func (r *Router) HandleUpload(ctx context.Context, telegramUserID, username, msgID, content, filename string) (Reply, error) {
	user, err := r.ensureUser(ctx, telegramUserID, username)
	if err != nil {
		return Reply{}, err
	}

	job, err := r.jobs.ActiveAny(ctx, user.ID)
	if err == ErrNotFound {
		job = domain.NewJob(user.ID, domain.DocRevamp)
		if err := r.jobs.Save(ctx, job); err != nil {
			return Reply{}, err
		}
	} else if err != nil {
		return Reply{}, err
	}

	if job.Type != domain.DocRevamp || job.Answers.Step != domain.StepUpload {
		return text("I wasn't expecting a file here. Type *menu* to see what we can do."), nil
	}
	if dup, err := r.dedupe(ctx, job, msgID); err != nil {
		return Reply{}, err
	} else if dup {
		return Reply{}, nil
	}
	if len(content) < minRevampChars {
		return text("I couldn't read enough text from that file. Try pasting your resume as a message instead."), nil
	}

	t := &turn{ctx: ctx, user: user, job: job}
	return r.acceptRevampContent(t, content, filename)
}

func (r *Router) acceptRevampContent(t *turn, content, filename string) (Reply, error) {
	rv := &t.answers().Revamp
	rv.OriginalContent = content
	rv.FileName = filename
	rv.WordCount = len(strings.Fields(content))
	if err := r.advance(t.ctx, t.job, domain.StepRevampProcessing); err != nil {
		return Reply{}, err
	}
	return r.revampProcessing(t)
}

func (r *Router) revampProcessing(t *turn) (Reply, error) {
	rv := &t.answers().Revamp
	if rv.RevampedContent == "" {
		revamped, err := r.enhancer.Revamp(t.ctx, rv.OriginalContent, t.user.Tier)
		if err != nil {
			r.log.Error().Err(err).Str("job_id", t.job.ID.String()).Msg("revamp failed")
			return text("😕 I couldn't process your resume just now. Send any message to retry, or */reset* to start over."), nil
		}
		rv.RevampedContent = revamped
	}
	if err := r.advance(t.ctx, t.job, domain.StepPreview); err != nil {
		return Reply{}, err
	}
	return text(formatRevampPreview(t.answers()) + "\n\nReply *yes* to get it as a polished PDF."), nil
}

func (r *Router) revampPreview(t *turn) (Reply, error) {
	if !isYes(t.lower) {
		return text("Reply *yes* to get your revamped resume as a PDF, or */reset* to start over."), nil
	}
	if err := r.advance(t.ctx, t.job, domain.StepFinalize); err != nil {
		return Reply{}, err
	}
	return r.finalizeJob(t)
}

func (r *Router) revampPaymentRequired(t *turn) (Reply, error) {
	return r.resumePaymentRequired(t)
}
