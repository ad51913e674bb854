package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"careerbuddy/internal/domain"
)

// Prompts keyed by step. The dispatcher re-emits the current step's prompt
// whenever input fails validation, so these double as the retry messages.
var questions = map[domain.Step]string{
	domain.StepBasics: "Great! Let's start with your details.\n" +
		"Please send in one line (comma-separated):\n" +
		"Full Name, Email, Phone, City Country\n\n" +
		"Example: John Doe, user@example.com, +234-xxx, Lagos Nigeria",
	domain.StepTargetRole: "What role/position are you applying for?\n\n" +
		"Example: Data Analyst\n" +
		"Example: Backend Engineer\n" +
		"Example: Marketing Manager",
	domain.StepExperienceHeader: "Let's add a work experience.\n\n" +
		"Send: Role, Company, City, Start (MMM YYYY), End (MMM YYYY or Present)\n\n" +
		"Example: Backend Engineer, TechCorp, Lagos, Jan 2020, Present\n\n" +
		"Or type *skip* to continue without work experience.",
	domain.StepEducation: "Education: Degree, School, Year\n\n" +
		"Example: B.Sc. Computer Science, University of Lagos, 2020\n\n" +
		"You can add multiple—send one per message, or type *skip*.",
	domain.StepCertifications: "Any certifications to add?\n\n" +
		"Example: AWS Certified Solutions Architect\n\n" +
		"Send one per message, or type *done* to continue.",
	domain.StepProfiles: "Any professional profiles to include?\n\n" +
		"Format: Platform, URL\n\n" +
		"Example: LinkedIn, https://linkedin.com/in/yourname\n\n" +
		"Send one per message, or type *done* to continue.",
	domain.StepProjects: "Almost done! Any projects or volunteer work to add?\n\n" +
		"Example: Built an e-commerce platform using React and Node.js\n\n" +
		"Send one per message, or type *done* to finish.",
	domain.StepPersonalInfo: "Tell me a little about your working style or strengths (one line).\n\n" +
		"Example: Detail-oriented team player who enjoys mentoring juniors\n\n" +
		"Or type *skip* to continue.",
}

func question(step domain.Step) string {
	if q, ok := questions[step]; ok {
		return q
	}
	return questions[domain.StepBasics]
}

func splitCommas(line string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// parseBasics parses "Full Name, Email, Phone, City Country". Missing
// trailing fields are left empty; the caller only requires a comma present.
func parseBasics(line string) domain.Basics {
	parts := splitCommas(line)
	for len(parts) < 4 {
		parts = append(parts, "")
	}
	return domain.Basics{
		Name:     parts[0],
		Email:    parts[1],
		Phone:    parts[2],
		Location: parts[3],
	}
}

// parseExperienceHeader parses "Role, Company, City, Start, End".
func parseExperienceHeader(line string) domain.Experience {
	parts := splitCommas(line)
	for len(parts) < 5 {
		parts = append(parts, "")
	}
	return domain.Experience{
		Role:     parts[0],
		Company:  parts[1],
		Location: parts[2],
		Start:    parts[3],
		End:      parts[4],
		Bullets:  []string{},
	}
}

// parseEducation parses "Degree, School, Year"; degree and school are
// required, year is optional.
func parseEducation(line string) (domain.Education, bool) {
	parts := splitCommas(line)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return domain.Education{}, false
	}
	edu := domain.Education{Degree: parts[0], School: parts[1]}
	if len(parts) > 2 {
		edu.Year = parts[2]
	}
	return edu, true
}

// parseProfile parses "Platform, URL".
func parseProfile(line string) (domain.Profile, bool) {
	parts := splitCommas(line)
	if len(parts) < 2 || parts[0] == "" || !strings.Contains(parts[1], ".") {
		return domain.Profile{}, false
	}
	return domain.Profile{Platform: parts[0], URL: parts[1]}, true
}

func parseSkills(text string) []string {
	var out []string
	for _, s := range splitCommas(text) {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// formatSkillsSelection renders suggested skills as a numbered menu.
func formatSkillsSelection(skills []string) string {
	var b strings.Builder
	b.WriteString("🤖 Based on your target role, here are some suggested skills:\n\n")
	for i, s := range skills {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	b.WriteString("\n📌 *Select up to 5 skills* by sending their numbers (comma-separated).\n")
	b.WriteString("Example: 1,3,5,7\n\n")
	b.WriteString("Or type your own skills (comma-separated) to skip AI suggestions.")
	return b.String()
}

// parseSkillSelection resolves the user's reply against the suggested list:
// all-numeric input picks by 1-based index (capped at 5), anything else is
// treated as a custom comma-separated skill list.
func parseSkillSelection(text string, available []string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	numeric := true
	for _, c := range text {
		if c != ',' && c != ' ' && (c < '0' || c > '9') {
			numeric = false
			break
		}
	}

	if numeric {
		var selected []string
		for _, tok := range strings.Split(text, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			n, err := strconv.Atoi(tok)
			if err != nil {
				continue
			}
			if n >= 1 && n <= len(available) {
				selected = append(selected, available[n-1])
			}
		}
		if len(selected) > 5 {
			selected = selected[:5]
		}
		return selected
	}

	return parseSkills(text)
}

func isYes(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes", "y", "confirm", "ok", "okay", "good":
		return true
	}
	return false
}

func isDoneOrSkip(lower string) bool {
	return lower == "done" || lower == "skip"
}
