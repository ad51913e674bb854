package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackSkillsByRole(t *testing.T) {
	skills := FallbackSkills("Senior Data Analyst")
	assert.Contains(t, skills, "SQL")

	skills = FallbackSkills("Backend Engineer")
	assert.Contains(t, skills, "Git")
}

func TestFallbackSkillsUnknownRole(t *testing.T) {
	skills := FallbackSkills("Zookeeper")
	assert.Equal(t, genericSkills, skills)
	assert.Len(t, skills, 10)
}
