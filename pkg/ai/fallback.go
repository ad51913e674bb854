package ai

import "strings"

// fallbackSkills are served when the completion API is down or unconfigured.
// Keyed by substrings of common target roles.
var fallbackSkills = map[string][]string{
	"data": {"SQL", "Python", "Excel", "Data Visualization", "Statistical Analysis", "Power BI", "Critical Thinking", "Attention to Detail", "Communication", "Problem Solving"},
	"engineer": {"Problem Solving", "Git", "Code Review", "Testing", "System Design", "Debugging", "Agile Collaboration", "Documentation", "CI/CD", "Communication"},
	"market": {"SEO", "Content Strategy", "Social Media Management", "Google Analytics", "Email Marketing", "Copywriting", "Campaign Planning", "A/B Testing", "Brand Management", "Communication"},
	"product": {"Roadmap Planning", "Stakeholder Management", "User Research", "Data Analysis", "Agile Methodologies", "Prioritization", "A/B Testing", "Communication", "SQL", "Presentation Skills"},
	"sales": {"Negotiation", "CRM Software", "Lead Generation", "Relationship Building", "Presentation Skills", "Pipeline Management", "Active Listening", "Closing Techniques", "Market Research", "Resilience"},
	"design": {"Figma", "User Research", "Wireframing", "Prototyping", "Visual Design", "Design Systems", "Usability Testing", "Collaboration", "Typography", "Attention to Detail"},
}

var genericSkills = []string{
	"Communication", "Problem Solving", "Time Management", "Teamwork", "Adaptability",
	"Attention to Detail", "Leadership", "Critical Thinking", "Organization", "Microsoft Office",
}

// FallbackSkills returns a static suggestion list for the role.
func FallbackSkills(targetRole string) []string {
	role := strings.ToLower(targetRole)
	for key, skills := range fallbackSkills {
		if strings.Contains(role, key) {
			return skills
		}
	}
	return genericSkills
}
