package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBasicsPadsMissingFields(t *testing.T) {
	b := parseBasics("Jane Doe, jane@example.com")
	assert.Equal(t, "Jane Doe", b.Name)
	assert.Equal(t, "jane@example.com", b.Email)
	assert.Empty(t, b.Phone)
	assert.Empty(t, b.Location)
}

func TestParseBasicsTrimsWhitespace(t *testing.T) {
	b := parseBasics("  Jane Doe ,  jane@x.com , +234 , Lagos Nigeria ")
	assert.Equal(t, "Jane Doe", b.Name)
	assert.Equal(t, "Lagos Nigeria", b.Location)
}

func TestParseExperienceHeader(t *testing.T) {
	exp := parseExperienceHeader("Backend Engineer, TechCorp, Lagos, Jan 2020, Present")
	assert.Equal(t, "Backend Engineer", exp.Role)
	assert.Equal(t, "TechCorp", exp.Company)
	assert.Equal(t, "Present", exp.End)
	assert.NotNil(t, exp.Bullets)
	assert.Empty(t, exp.Bullets)
}

func TestParseEducation(t *testing.T) {
	edu, ok := parseEducation("B.Sc. Computer Science, University of Lagos, 2020")
	assert.True(t, ok)
	assert.Equal(t, "2020", edu.Year)

	_, ok = parseEducation("just a degree")
	assert.False(t, ok)
}

func TestParseProfileRequiresURL(t *testing.T) {
	p, ok := parseProfile("LinkedIn, https://linkedin.com/in/jane")
	assert.True(t, ok)
	assert.Equal(t, "LinkedIn", p.Platform)

	_, ok = parseProfile("LinkedIn, notaurl")
	assert.False(t, ok)
}

func TestParseSkillSelectionNumeric(t *testing.T) {
	available := []string{"SQL", "Python", "Excel", "Communication", "Teamwork", "Leadership", "Git"}
	picked := parseSkillSelection("1, 3, 5", available)
	assert.Equal(t, []string{"SQL", "Excel", "Teamwork"}, picked)
}

func TestParseSkillSelectionCapsAtFive(t *testing.T) {
	available := []string{"A", "B", "C", "D", "E", "F", "G"}
	picked := parseSkillSelection("1,2,3,4,5,6,7", available)
	assert.Len(t, picked, 5)
}

func TestParseSkillSelectionCustomList(t *testing.T) {
	picked := parseSkillSelection("Rust, Kubernetes", []string{"SQL"})
	assert.Equal(t, []string{"Rust", "Kubernetes"}, picked)
}

func TestParseSkillSelectionIgnoresOutOfRange(t *testing.T) {
	picked := parseSkillSelection("1, 99", []string{"SQL", "Python"})
	assert.Equal(t, []string{"SQL"}, picked)
}

func TestIsYes(t *testing.T) {
	assert.True(t, isYes("Yes"))
	assert.True(t, isYes(" ok "))
	assert.False(t, isYes("nope"))
}

func TestInferType(t *testing.T) {
	dt, ok := inferType("I want a resume")
	assert.True(t, ok)
	assert.Equal(t, "resume", string(dt))

	dt, ok = inferType("choose_cv")
	assert.True(t, ok)
	assert.Equal(t, "cv", string(dt))

	dt, ok = inferType("cover letter")
	assert.True(t, ok)
	assert.Equal(t, "cover", string(dt))

	_, ok = inferType("hello")
	assert.False(t, ok)
}

func TestDocumentFilenameSanitizes(t *testing.T) {
	f := newFixture(t)
	f.send(t, "100", "resume")
	job := f.activeJob(t, "100")
	job.Answers.Basics.Name = `Jane/Doe:?`
	assert.Equal(t, "JaneDoe - Resume.pdf", documentFilename(job))
}
