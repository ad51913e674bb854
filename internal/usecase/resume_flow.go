package usecase

import (
	"fmt"
	"strings"

	"careerbuddy/internal/domain"
)

// Resume and CV share one workflow; only the rendered layout differs.

func (r *Router) resumeBasics(t *turn) (Reply, error) {
	if t.text == "" {
		return text(question(domain.StepBasics)), nil
	}
	if !strings.Contains(t.text, ",") {
		return text("I couldn't read that. Please send your details comma-separated:\n\n" +
			question(domain.StepBasics)), nil
	}
	t.answers().Basics = parseBasics(t.text)
	if err := r.advance(t.ctx, t.job, domain.StepTargetRole); err != nil {
		return Reply{}, err
	}
	return text("Perfect! 👍\n\n" + question(domain.StepTargetRole)), nil
}

func (r *Router) resumeTargetRole(t *turn) (Reply, error) {
	role := strings.TrimSpace(t.text)
	if role == "" {
		return text(question(domain.StepTargetRole)), nil
	}
	if !CanGenerateForRole(t.user, role) {
		return text(fmt.Sprintf("⚠️ You've already generated %d documents for *%s*, which is the limit per role.\n\n"+
			"Try a different target role, or reply */reset* to start over.", MaxGenerationsPerRole, role)), nil
	}
	t.answers().TargetRole = role
	if err := r.advance(t.ctx, t.job, domain.StepExperienceHeader); err != nil {
		return Reply{}, err
	}
	return text(fmt.Sprintf("Targeting *%s* — nice.\n\n%s", role, question(domain.StepExperienceHeader))), nil
}

func (r *Router) resumeExperienceHeader(t *turn) (Reply, error) {
	if t.lower == "skip" {
		if err := r.advance(t.ctx, t.job, domain.StepEducation); err != nil {
			return Reply{}, err
		}
		return text(question(domain.StepEducation)), nil
	}
	exp := parseExperienceHeader(t.text)
	if exp.Role == "" || exp.Company == "" {
		return text("I need at least a role and a company.\n\n" + question(domain.StepExperienceHeader)), nil
	}
	t.answers().Experiences = append(t.answers().Experiences, exp)
	if err := r.advance(t.ctx, t.job, domain.StepExperienceBullets); err != nil {
		return Reply{}, err
	}
	return text(fmt.Sprintf("Got it: *%s at %s*.\n\n"+
		"Now send your achievements for this role, one per message.\n\n"+
		"Example: Reduced deployment time by 40%% by automating CI pipelines\n\n"+
		"Type *done* when finished.", exp.Role, exp.Company)), nil
}

func (r *Router) resumeExperienceBullets(t *turn) (Reply, error) {
	if t.lower == "done" {
		if err := r.advance(t.ctx, t.job, domain.StepAddAnotherExp); err != nil {
			return Reply{}, err
		}
		return text("Add another work experience? (*yes*/*no*)"), nil
	}
	if t.text == "" {
		return text("Send an achievement for this role, or type *done* to continue."), nil
	}
	exp := t.answers().LastExperience()
	if exp == nil {
		// Bullets step with no experience on record; walk back.
		if err := r.advance(t.ctx, t.job, domain.StepExperienceHeader); err != nil {
			return Reply{}, err
		}
		return text(question(domain.StepExperienceHeader)), nil
	}
	exp.Bullets = append(exp.Bullets, t.text)
	if err := r.saveAnswers(t.ctx, t.job); err != nil {
		return Reply{}, err
	}
	return text(fmt.Sprintf("Added ✅ (%d so far). Send another, or type *done*.", len(exp.Bullets))), nil
}

func (r *Router) resumeAddAnotherExperience(t *turn) (Reply, error) {
	if isYes(t.lower) {
		if err := r.advance(t.ctx, t.job, domain.StepExperienceHeader); err != nil {
			return Reply{}, err
		}
		return text(question(domain.StepExperienceHeader)), nil
	}
	if err := r.advance(t.ctx, t.job, domain.StepEducation); err != nil {
		return Reply{}, err
	}
	return text(question(domain.StepEducation)), nil
}

func (r *Router) resumeEducation(t *turn) (Reply, error) {
	if isDoneOrSkip(t.lower) {
		if err := r.advance(t.ctx, t.job, domain.StepCertifications); err != nil {
			return Reply{}, err
		}
		return text(question(domain.StepCertifications)), nil
	}
	edu, ok := parseEducation(t.text)
	if !ok {
		return text("Format: Degree, School, Year\n\nExample: B.Sc. Computer Science, University of Lagos, 2020\n\nOr type *skip*."), nil
	}
	t.answers().Education = append(t.answers().Education, edu)
	if err := r.saveAnswers(t.ctx, t.job); err != nil {
		return Reply{}, err
	}
	return text("Added ✅ Send another, or type *done* to continue."), nil
}

func (r *Router) resumeCertifications(t *turn) (Reply, error) {
	if isDoneOrSkip(t.lower) {
		if err := r.advance(t.ctx, t.job, domain.StepProfiles); err != nil {
			return Reply{}, err
		}
		return text(question(domain.StepProfiles)), nil
	}
	if t.text == "" {
		return text(question(domain.StepCertifications)), nil
	}
	t.answers().Certifications = append(t.answers().Certifications, t.text)
	if err := r.saveAnswers(t.ctx, t.job); err != nil {
		return Reply{}, err
	}
	return text("Added ✅ Send another, or type *done* to continue."), nil
}

func (r *Router) resumeProfiles(t *turn) (Reply, error) {
	if isDoneOrSkip(t.lower) {
		if err := r.advance(t.ctx, t.job, domain.StepProjects); err != nil {
			return Reply{}, err
		}
		return text(question(domain.StepProjects)), nil
	}
	profile, ok := parseProfile(t.text)
	if !ok {
		return text("Format: Platform, URL\n\nExample: LinkedIn, https://linkedin.com/in/yourname\n\nOr type *done*."), nil
	}
	t.answers().Profiles = append(t.answers().Profiles, profile)
	if err := r.saveAnswers(t.ctx, t.job); err != nil {
		return Reply{}, err
	}
	return text("Added ✅ Send another, or type *done* to continue."), nil
}

func (r *Router) resumeProjects(t *turn) (Reply, error) {
	if isDoneOrSkip(t.lower) {
		if err := r.advance(t.ctx, t.job, domain.StepSkills); err != nil {
			return Reply{}, err
		}
		return r.enterSkills(t)
	}
	if t.text == "" {
		return text(question(domain.StepProjects)), nil
	}
	t.answers().Projects = append(t.answers().Projects, t.text)
	if err := r.saveAnswers(t.ctx, t.job); err != nil {
		return Reply{}, err
	}
	return text("Added ✅ Send another, or type *done* to finish."), nil
}

// enterSkills shows the AI skill suggestion menu. Suggestions are cached on
// the answers document so a redelivered or repeated entry never re-invokes
// the enhancer.
func (r *Router) enterSkills(t *turn) (Reply, error) {
	ans := t.answers()
	if len(ans.AISuggestedSkills) > 0 {
		return text(formatSkillsSelection(ans.AISuggestedSkills)), nil
	}

	skills, err := r.enhancer.SuggestSkills(t.ctx, ans.TargetRole, ans.Basics, ans.Experiences, t.user.Tier)
	if err != nil || len(skills) == 0 {
		r.log.Warn().Err(err).Str("job_id", t.job.ID.String()).Msg("skill suggestion unavailable")
		return text("Send your top skills, comma-separated.\n\nExample: Python, SQL, Data Visualization, Communication"), nil
	}

	ans.AISuggestedSkills = skills
	if err := r.saveAnswers(t.ctx, t.job); err != nil {
		return Reply{}, err
	}
	return text(formatSkillsSelection(skills)), nil
}

func (r *Router) resumeSkills(t *turn) (Reply, error) {
	if t.text == "" {
		return r.enterSkills(t)
	}
	selected := parseSkillSelection(t.text, t.answers().AISuggestedSkills)
	if len(selected) == 0 {
		return text("I couldn't match that selection. Send numbers like *1,3,5* or type your skills comma-separated."), nil
	}
	t.answers().Skills = selected
	if err := r.advance(t.ctx, t.job, domain.StepPersonalInfo); err != nil {
		return Reply{}, err
	}
	return text(fmt.Sprintf("Skills locked in: %s\n\n%s",
		strings.Join(selected, ", "), question(domain.StepPersonalInfo))), nil
}

func (r *Router) resumePersonalInfo(t *turn) (Reply, error) {
	if t.text == "" {
		return text(question(domain.StepPersonalInfo)), nil
	}
	if t.lower != "skip" {
		t.answers().PersonalTraits = t.text
	}
	if err := r.advance(t.ctx, t.job, domain.StepSummary); err != nil {
		return Reply{}, err
	}
	return r.enterSummary(t)
}

// enterSummary drafts the professional summary, reusing a cached draft when
// one exists.
func (r *Router) enterSummary(t *turn) (Reply, error) {
	ans := t.answers()
	if ans.Summary == "" {
		summary, err := r.enhancer.DraftSummary(t.ctx, ans, t.user.Tier)
		if err != nil {
			r.log.Warn().Err(err).Str("job_id", t.job.ID.String()).Msg("summary draft unavailable")
			summary = fallbackSummary(ans)
		}
		ans.Summary = summary
		if err := r.saveAnswers(t.ctx, t.job); err != nil {
			return Reply{}, err
		}
	}
	return text(fmt.Sprintf("✍️ Here's a professional summary I drafted for you:\n\n_%s_\n\n"+
		"Reply *yes* to use it, or send your own summary to replace it.", ans.Summary)), nil
}

// fallbackSummary is the static degradation when the enhancer is down.
func fallbackSummary(ans *domain.Answers) string {
	role := ans.TargetRole
	if role == "" {
		role = "professional"
	}
	return fmt.Sprintf("Results-driven %s with hands-on experience delivering measurable outcomes. "+
		"Known for strong problem-solving skills and a commitment to continuous improvement.", role)
}

func (r *Router) resumeSummary(t *turn) (Reply, error) {
	if t.text == "" {
		return r.enterSummary(t)
	}
	if !isYes(t.lower) {
		t.answers().Summary = t.text
	}
	if err := r.advance(t.ctx, t.job, domain.StepPreview); err != nil {
		return Reply{}, err
	}
	return text(formatPreview(t.job) + "\n\nReply *yes* to generate your document."), nil
}

func (r *Router) resumePreview(t *turn) (Reply, error) {
	if !isYes(t.lower) {
		return text(formatPreview(t.job) + "\n\nReply *yes* when you're happy with it, or */reset* to start over."), nil
	}
	if t.user.Tier == domain.TierPro {
		if err := r.advance(t.ctx, t.job, domain.StepTemplateSelection); err != nil {
			return Reply{}, err
		}
		return Reply{
			Text:   "🎨 As a Premium member you can pick a template for your document:",
			Action: ActionShowTemplateMenu,
		}, nil
	}
	if err := r.advance(t.ctx, t.job, domain.StepFinalize); err != nil {
		return Reply{}, err
	}
	return r.finalizeJob(t)
}

func (r *Router) resumeTemplateSelection(t *turn) (Reply, error) {
	template, ok := parseTemplateChoice(t.lower)
	if !ok {
		return Reply{
			Text:   "Pick one of the templates below:",
			Action: ActionShowTemplateMenu,
		}, nil
	}
	t.answers().Template = template
	if err := r.advance(t.ctx, t.job, domain.StepFinalize); err != nil {
		return Reply{}, err
	}
	return r.finalizeJob(t)
}

func parseTemplateChoice(lower string) (string, bool) {
	switch strings.TrimPrefix(lower, "template_") {
	case "classic", "1":
		return "classic", true
	case "modern", "2":
		return "modern", true
	case "elegant", "3":
		return "elegant", true
	}
	return "", false
}

func (r *Router) resumePaymentRequired(t *turn) (Reply, error) {
	if strings.Contains(t.lower, "upgrade") {
		return text(r.upgradeMessage(t.ctx, t.user)), nil
	}
	ref := t.answers().PaymentReference
	if ref == "" {
		// No transaction was initialized; retry the gate path.
		return r.enterPaymentRequired(t)
	}
	return text(fmt.Sprintf("⏳ Waiting for your payment (ref: `%s`).\n\n"+
		"Once you've completed it, reply *paid* and I'll confirm it.\n"+
		"Need help? Contact %s.", ref, r.supportContact)), nil
}

func (r *Router) resumeFinalize(t *turn) (Reply, error) {
	return r.finalizeJob(t)
}
