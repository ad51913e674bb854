package domain

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocResume DocumentType = "resume"
	DocCV     DocumentType = "cv"
	DocCover  DocumentType = "cover"
	DocRevamp DocumentType = "revamp"
)

func (dt DocumentType) DisplayName() string {
	switch dt {
	case DocResume:
		return "Resume"
	case DocCV:
		return "CV"
	case DocCover:
		return "Cover Letter"
	case DocRevamp:
		return "Revamp"
	}
	return string(dt)
}

type JobStatus string

const (
	StatusCollecting   JobStatus = "collecting"
	StatusDraftReady   JobStatus = "draft_ready"
	StatusPreviewReady JobStatus = "preview_ready"
	StatusDone         JobStatus = "done"
	StatusClosed       JobStatus = "closed"
)

// Step is the named state of a job's conversation within its workflow.
// Each document type has its own table of recognized steps; a stored step
// outside that table means the answers document is reinitialized.
type Step string

const (
	StepBasics            Step = "basics"
	StepTargetRole        Step = "target_role"
	StepExperienceHeader  Step = "experience_header"
	StepExperienceBullets Step = "experience_bullets"
	StepAddAnotherExp     Step = "add_another_experience"
	StepEducation         Step = "education"
	StepCertifications    Step = "certifications"
	StepProfiles          Step = "profiles"
	StepProjects          Step = "projects"
	StepSkills            Step = "skills"
	StepPersonalInfo      Step = "personal_info"
	StepSummary           Step = "summary"
	StepPreview           Step = "preview"
	StepTemplateSelection Step = "template_selection"
	StepPaymentRequired   Step = "payment_required"
	StepFinalize          Step = "finalize"
	StepDone              Step = "done"

	// Cover letter flow.
	StepRoleCompany        Step = "role_company"
	StepExperienceOverview Step = "experience_overview"
	StepInterestReason     Step = "interest_reason"
	StepCurrentRole        Step = "current_role"
	StepAchievement1       Step = "achievement_1"
	StepAchievement2       Step = "achievement_2"
	StepKeySkills          Step = "key_skills"
	StepCompanyGoal        Step = "company_goal"

	// Revamp flow.
	StepUpload           Step = "upload"
	StepRevampProcessing Step = "revamp_processing"
)

// Job is one in-progress document-creation conversation. A user has at most
// one collecting job per document type, enforced by query.
type Job struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	Type      DocumentType `json:"type"`
	Status    JobStatus    `json:"status"`
	Answers   *Answers     `json:"answers"`
	DraftText string       `json:"draft_text,omitempty"`
	LastMsgID string       `json:"last_msg_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func NewJob(userID uuid.UUID, dt DocumentType) *Job {
	now := time.Now()
	initial := StepBasics
	if dt == DocRevamp {
		initial = StepUpload
	}
	return &Job{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      dt,
		Status:    StatusCollecting,
		Answers:   NewAnswers(initial),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
