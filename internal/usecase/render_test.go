package usecase

import (
	"testing"

	"careerbuddy/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplates(t *testing.T) *TemplateSet {
	t.Helper()
	ts, err := NewTemplateSet("../../templates")
	require.NoError(t, err)
	return ts
}

func resumeJob() *domain.Job {
	job := domain.NewJob(uuid.New(), domain.DocResume)
	job.Answers.Basics = domain.Basics{Name: "Jane Doe", Email: "jane@example.com", Location: "Lagos Nigeria"}
	job.Answers.TargetRole = "Data Analyst"
	job.Answers.Summary = "Analytical and driven."
	job.Answers.Skills = []string{"SQL", "Python"}
	job.Answers.Experiences = []domain.Experience{{
		Role: "Analyst", Company: "FinServe", Start: "Jan 2021", End: "Present",
		Bullets: []string{"Cut reporting time by 60%"},
	}}
	return job
}

func TestBuildResumeHTML(t *testing.T) {
	html, err := testTemplates(t).Build(resumeJob())
	require.NoError(t, err)

	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "Data Analyst")
	assert.Contains(t, html, "FinServe")
	assert.Contains(t, html, "Cut reporting time by 60%")
	assert.Contains(t, html, `class="classic"`)
}

func TestBuildUsesChosenTemplateStyle(t *testing.T) {
	job := resumeJob()
	job.Answers.Template = "modern"
	html, err := testTemplates(t).Build(job)
	require.NoError(t, err)
	assert.Contains(t, html, `class="modern"`)
}

func TestBuildEscapesUserInput(t *testing.T) {
	job := resumeJob()
	job.Answers.Summary = `<script>alert("x")</script>`
	html, err := testTemplates(t).Build(job)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestBuildCoverHTML(t *testing.T) {
	job := domain.NewJob(uuid.New(), domain.DocCover)
	job.Answers.Basics.Name = "Jane Doe"
	job.Answers.Cover = domain.CoverAnswers{
		Role: "Product Manager", Company: "Flutterwave",
		Achievement1: "Grew MAU from 10k to 150k",
		KeySkills:    []string{"SQL", "A/B testing"},
	}
	html, err := testTemplates(t).Build(job)
	require.NoError(t, err)

	assert.Contains(t, html, "Dear Hiring Manager")
	assert.Contains(t, html, "Flutterwave")
	assert.Contains(t, html, "Grew MAU from 10k to 150k")
}

func TestBuildRevampHTML(t *testing.T) {
	job := domain.NewJob(uuid.New(), domain.DocRevamp)
	job.Answers.Revamp.RevampedContent = "SUMMARY\nA rewritten resume.\n\nEXPERIENCE\nThings."
	html, err := testTemplates(t).Build(job)
	require.NoError(t, err)

	assert.Contains(t, html, "A rewritten resume.")
	assert.Contains(t, html, "EXPERIENCE")
}

func TestFormatPreviewIncludesSections(t *testing.T) {
	job := resumeJob()
	preview := formatPreview(job)

	assert.Contains(t, preview, "Jane Doe")
	assert.Contains(t, preview, "*Experience*")
	assert.Contains(t, preview, "*Skills*")
	assert.Contains(t, preview, "SQL, Python")
}

func TestDraftTextStripsMarkdown(t *testing.T) {
	job := resumeJob()
	txt := draftText(job)
	assert.NotContains(t, txt, "*")
	assert.Contains(t, txt, "Jane Doe")
}
