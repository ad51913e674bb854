package model

import (
	"testing"

	"careerbuddy/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidAnswers(t *testing.T) {
	ans := domain.NewAnswers(domain.StepDone)
	ans.Basics.Name = "Jane Doe"
	ans.Experiences = []domain.Experience{{Role: "Analyst", Company: "Acme", Bullets: []string{}}}
	assert.NoError(t, ValidateAnswers(domain.DocResume, ans))
}

func TestMissingNameRejected(t *testing.T) {
	ans := domain.NewAnswers(domain.StepDone)
	assert.Error(t, ValidateAnswers(domain.DocResume, ans))
}

func TestExperienceWithoutCompanyRejected(t *testing.T) {
	ans := domain.NewAnswers(domain.StepDone)
	ans.Basics.Name = "Jane Doe"
	ans.Experiences = []domain.Experience{{Role: "Analyst", Bullets: []string{}}}
	assert.Error(t, ValidateAnswers(domain.DocResume, ans))
}

func TestRevampRequiresContent(t *testing.T) {
	ans := domain.NewAnswers(domain.StepDone)
	assert.Error(t, ValidateAnswers(domain.DocRevamp, ans))

	ans.Revamp.RevampedContent = "Rewritten resume text"
	assert.NoError(t, ValidateAnswers(domain.DocRevamp, ans))
}
