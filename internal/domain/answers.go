package domain

// Answers is the accumulated conversation state for a job, persisted as one
// JSONB document. Step outputs live alongside the current step name so a
// restart resumes exactly where the last commit left off.
type Answers struct {
	Step              Step         `json:"_step"`
	Basics            Basics       `json:"basics"`
	TargetRole        string       `json:"target_role,omitempty"`
	Summary           string       `json:"summary,omitempty"`
	Skills            []string     `json:"skills,omitempty"`
	AISuggestedSkills []string     `json:"ai_suggested_skills,omitempty"`
	Experiences       []Experience `json:"experiences,omitempty"`
	Education         []Education  `json:"education,omitempty"`
	Certifications    []string     `json:"certifications,omitempty"`
	Profiles          []Profile    `json:"profiles,omitempty"`
	Projects          []string     `json:"projects,omitempty"`
	PersonalTraits    string       `json:"personal_traits,omitempty"`
	Template          string       `json:"template,omitempty"`

	PaymentReference string `json:"payment_reference,omitempty"`
	PaidGeneration   bool   `json:"paid_generation,omitempty"`

	Cover  CoverAnswers  `json:"cover,omitempty"`
	Revamp RevampAnswers `json:"revamp,omitempty"`
}

type Basics struct {
	Name     string `json:"name,omitempty"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

type Experience struct {
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Location string   `json:"location,omitempty"`
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
	Bullets  []string `json:"bullets"`
}

type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year,omitempty"`
}

type Profile struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type CoverAnswers struct {
	Role            string   `json:"role,omitempty"`
	Company         string   `json:"company,omitempty"`
	YearsExperience string   `json:"years_experience,omitempty"`
	Industries      string   `json:"industries,omitempty"`
	InterestReason  string   `json:"interest_reason,omitempty"`
	CurrentTitle    string   `json:"current_title,omitempty"`
	CurrentEmployer string   `json:"current_employer,omitempty"`
	Achievement1    string   `json:"achievement_1,omitempty"`
	Achievement2    string   `json:"achievement_2,omitempty"`
	KeySkills       []string `json:"key_skills,omitempty"`
	CompanyGoal     string   `json:"company_goal,omitempty"`
}

type RevampAnswers struct {
	OriginalContent string `json:"original_content,omitempty"`
	RevampedContent string `json:"revamped_content,omitempty"`
	FileName        string `json:"file_name,omitempty"`
	WordCount       int    `json:"word_count,omitempty"`
}

func NewAnswers(initial Step) *Answers {
	return &Answers{Step: initial}
}

// LastExperience returns the experience currently collecting bullets, or nil.
func (a *Answers) LastExperience() *Experience {
	if len(a.Experiences) == 0 {
		return nil
	}
	return &a.Experiences[len(a.Experiences)-1]
}
