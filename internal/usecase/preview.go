package usecase

import (
	"fmt"
	"strings"

	"careerbuddy/internal/domain"
)

// formatPreview renders the collected answers as a Telegram-friendly recap.
func formatPreview(job *domain.Job) string {
	switch job.Type {
	case domain.DocCover:
		return formatCoverPreview(job.Answers)
	case domain.DocRevamp:
		return formatRevampPreview(job.Answers)
	}

	ans := job.Answers
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Here's your %s so far:*\n\n", job.Type.DisplayName())
	fmt.Fprintf(&b, "👤 *%s*\n", ans.Basics.Name)
	if ans.TargetRole != "" {
		fmt.Fprintf(&b, "🎯 %s\n", ans.TargetRole)
	}
	contact := joinNonEmpty(" | ", ans.Basics.Email, ans.Basics.Phone, ans.Basics.Location)
	if contact != "" {
		fmt.Fprintf(&b, "📞 %s\n", contact)
	}

	if ans.Summary != "" {
		fmt.Fprintf(&b, "\n*Summary*\n%s\n", ans.Summary)
	}

	if len(ans.Experiences) > 0 {
		b.WriteString("\n*Experience*\n")
		for _, exp := range ans.Experiences {
			fmt.Fprintf(&b, "• %s at %s (%s – %s)\n", exp.Role, exp.Company, exp.Start, exp.End)
			for _, bullet := range exp.Bullets {
				fmt.Fprintf(&b, "   - %s\n", bullet)
			}
		}
	}

	if len(ans.Education) > 0 {
		b.WriteString("\n*Education*\n")
		for _, edu := range ans.Education {
			line := edu.Degree + ", " + edu.School
			if edu.Year != "" {
				line += " (" + edu.Year + ")"
			}
			fmt.Fprintf(&b, "• %s\n", line)
		}
	}

	if len(ans.Skills) > 0 {
		fmt.Fprintf(&b, "\n*Skills*\n%s\n", strings.Join(ans.Skills, ", "))
	}
	if len(ans.Certifications) > 0 {
		fmt.Fprintf(&b, "\n*Certifications*\n• %s\n", strings.Join(ans.Certifications, "\n• "))
	}
	if len(ans.Projects) > 0 {
		fmt.Fprintf(&b, "\n*Projects*\n• %s\n", strings.Join(ans.Projects, "\n• "))
	}
	if len(ans.Profiles) > 0 {
		b.WriteString("\n*Profiles*\n")
		for _, p := range ans.Profiles {
			fmt.Fprintf(&b, "• %s: %s\n", p.Platform, p.URL)
		}
	}
	return b.String()
}

func formatCoverPreview(ans *domain.Answers) string {
	c := ans.Cover
	var b strings.Builder
	b.WriteString("📋 *Here's your cover letter outline:*\n\n")
	fmt.Fprintf(&b, "👤 *%s*\n", ans.Basics.Name)
	fmt.Fprintf(&b, "🎯 %s at %s\n", c.Role, c.Company)
	if c.YearsExperience != "" {
		fmt.Fprintf(&b, "📅 Experience: %s (%s)\n", c.YearsExperience, c.Industries)
	}
	if c.CurrentTitle != "" {
		fmt.Fprintf(&b, "💼 Currently: %s at %s\n", c.CurrentTitle, c.CurrentEmployer)
	}
	if c.InterestReason != "" {
		fmt.Fprintf(&b, "\n*Why this company*\n%s\n", c.InterestReason)
	}
	if c.Achievement1 != "" {
		fmt.Fprintf(&b, "\n*Key achievements*\n• %s\n", c.Achievement1)
		if c.Achievement2 != "" {
			fmt.Fprintf(&b, "• %s\n", c.Achievement2)
		}
	}
	if len(c.KeySkills) > 0 {
		fmt.Fprintf(&b, "\n*Skills to highlight*\n%s\n", strings.Join(c.KeySkills, ", "))
	}
	if c.CompanyGoal != "" {
		fmt.Fprintf(&b, "\n*How you'll contribute*\n%s\n", c.CompanyGoal)
	}
	return b.String()
}

func formatRevampPreview(ans *domain.Answers) string {
	rv := ans.Revamp
	preview := rv.RevampedContent
	if len(preview) > 1500 {
		preview = preview[:1500] + "\n\n_...(truncated preview)..._"
	}
	return fmt.Sprintf("✨ *Here's your revamped content:*\n\n%s", preview)
}

// draftText is the plain-text fallback delivered when PDF rendering fails.
func draftText(job *domain.Job) string {
	if job.Type == domain.DocRevamp {
		return job.Answers.Revamp.RevampedContent
	}
	text := formatPreview(job)
	return strings.NewReplacer("*", "", "_", "").Replace(text)
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
