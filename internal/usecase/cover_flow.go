package usecase

import (
	"fmt"
	"strings"

	"careerbuddy/internal/domain"
)

// Cover letters collect a fixed question sequence instead of the open-ended
// resume sections. Premium only; the router blocks free users before a cover
// job is ever created.

func (r *Router) coverBasics(t *turn) (Reply, error) {
	if t.text == "" {
		return text("Let's write your cover letter! ✉️\n\n" +
			"First, your details in one line (comma-separated):\n" +
			"Full Name, Email, Phone, City Country"), nil
	}
	if !strings.Contains(t.text, ",") {
		return text("Please send your details comma-separated:\n\nFull Name, Email, Phone, City Country"), nil
	}
	t.answers().Basics = parseBasics(t.text)
	if err := r.advance(t.ctx, t.job, domain.StepRoleCompany); err != nil {
		return Reply{}, err
	}
	return text("What role and company are you applying to?\n\n" +
		"Format: Role, Company\n\nExample: Product Manager, Flutterwave"), nil
}

func (r *Router) coverRoleCompany(t *turn) (Reply, error) {
	parts := splitCommas(t.text)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return text("Format: Role, Company\n\nExample: Product Manager, Flutterwave"), nil
	}
	t.answers().Cover.Role = parts[0]
	t.answers().Cover.Company = parts[1]
	t.answers().TargetRole = parts[0]
	if err := r.advance(t.ctx, t.job, domain.StepExperienceOverview); err != nil {
		return Reply{}, err
	}
	return text("How many years of experience do you have, and in which industries?\n\n" +
		"Example: 5 years, fintech and e-commerce"), nil
}

func (r *Router) coverExperienceOverview(t *turn) (Reply, error) {
	if t.text == "" {
		return text("Example: 5 years, fintech and e-commerce"), nil
	}
	parts := splitCommas(t.text)
	t.answers().Cover.YearsExperience = parts[0]
	if len(parts) > 1 {
		t.answers().Cover.Industries = strings.Join(parts[1:], ", ")
	}
	if err := r.advance(t.ctx, t.job, domain.StepInterestReason); err != nil {
		return Reply{}, err
	}
	return text(fmt.Sprintf("Why are you interested in %s specifically?\n\n"+
		"One or two sentences is perfect.", t.answers().Cover.Company)), nil
}

func (r *Router) coverInterestReason(t *turn) (Reply, error) {
	if t.text == "" {
		return text("Tell me why this company interests you. One or two sentences is perfect."), nil
	}
	t.answers().Cover.InterestReason = t.text
	if err := r.advance(t.ctx, t.job, domain.StepCurrentRole); err != nil {
		return Reply{}, err
	}
	return text("What's your current role and employer?\n\n" +
		"Format: Title, Employer\n\nOr type *skip* if not currently employed."), nil
}

func (r *Router) coverCurrentRole(t *turn) (Reply, error) {
	if t.lower != "skip" {
		parts := splitCommas(t.text)
		t.answers().Cover.CurrentTitle = parts[0]
		if len(parts) > 1 {
			t.answers().Cover.CurrentEmployer = parts[1]
		}
	}
	if err := r.advance(t.ctx, t.job, domain.StepAchievement1); err != nil {
		return Reply{}, err
	}
	return text("Share your most impressive achievement, ideally with a number.\n\n" +
		"Example: Grew monthly active users from 10k to 150k in one year"), nil
}

func (r *Router) coverAchievement1(t *turn) (Reply, error) {
	if t.text == "" {
		return text("Share your most impressive achievement, ideally with a number."), nil
	}
	t.answers().Cover.Achievement1 = t.text
	if err := r.advance(t.ctx, t.job, domain.StepAchievement2); err != nil {
		return Reply{}, err
	}
	return text("Great one! 💪 Share a second achievement, or type *skip*."), nil
}

func (r *Router) coverAchievement2(t *turn) (Reply, error) {
	if t.lower != "skip" && t.text != "" {
		t.answers().Cover.Achievement2 = t.text
	}
	if err := r.advance(t.ctx, t.job, domain.StepKeySkills); err != nil {
		return Reply{}, err
	}
	return text("Which 3-5 skills should this letter highlight? (comma-separated)\n\n" +
		"Example: Stakeholder management, SQL, A/B testing"), nil
}

func (r *Router) coverKeySkills(t *turn) (Reply, error) {
	skills := parseSkills(t.text)
	if len(skills) == 0 {
		return text("Send 3-5 skills, comma-separated.\n\nExample: Stakeholder management, SQL, A/B testing"), nil
	}
	t.answers().Cover.KeySkills = skills
	if err := r.advance(t.ctx, t.job, domain.StepCompanyGoal); err != nil {
		return Reply{}, err
	}
	return text(fmt.Sprintf("Last one! How would you help %s reach its goals?\n\n"+
		"One sentence is enough.", t.answers().Cover.Company)), nil
}

func (r *Router) coverCompanyGoal(t *turn) (Reply, error) {
	if t.text == "" {
		return text("One sentence on how you'd contribute is enough."), nil
	}
	t.answers().Cover.CompanyGoal = t.text
	if err := r.advance(t.ctx, t.job, domain.StepPreview); err != nil {
		return Reply{}, err
	}
	return text(formatCoverPreview(t.answers()) + "\n\nReply *yes* to generate your cover letter."), nil
}

func (r *Router) coverPreview(t *turn) (Reply, error) {
	if !isYes(t.lower) {
		return text(formatCoverPreview(t.answers()) + "\n\nReply *yes* when you're happy with it, or */reset* to start over."), nil
	}
	if err := r.advance(t.ctx, t.job, domain.StepFinalize); err != nil {
		return Reply{}, err
	}
	return r.finalizeJob(t)
}

func (r *Router) coverPaymentRequired(t *turn) (Reply, error) {
	return r.resumePaymentRequired(t)
}
