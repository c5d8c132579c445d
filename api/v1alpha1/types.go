package v1alpha1

// ContactInfo holds the contact details located in the resume header.
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// WorkExperience is a single employment entry extracted from the resume.
type WorkExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education is a single education entry extracted from the resume.
type Education struct {
	Institution  string   `json:"institution"`
	Degree       string   `json:"degree,omitempty"`
	FieldOfStudy string   `json:"field_of_study,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	GPA          float64  `json:"gpa,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
	Years int    `json:"years,omitempty"`
}

type Certification struct {
	Name    string `json:"name"`
	Issuer  string `json:"issuer,omitempty"`
	Date    string `json:"date,omitempty"`
	Expires string `json:"expires,omitempty"`
	URL     string `json:"url,omitempty"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
}

// StructuredData is the full structured representation of a resume,
// accumulated across the extraction stages.
type StructuredData struct {
	Name           string            `json:"name,omitempty"`
	Email          string            `json:"email,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	Location       string            `json:"location,omitempty"`
	Summary        string            `json:"summary,omitempty"`
	WorkExperience []WorkExperience  `json:"work_experience"`
	Education      []Education       `json:"education"`
	Skills         []Skill           `json:"skills"`
	Certifications []Certification   `json:"certifications,omitempty"`
	Projects       []Project         `json:"projects,omitempty"`
	Languages      []string          `json:"languages,omitempty"`
	Websites       map[string]string `json:"websites,omitempty"`
}

// Insights holds the derived assessment of a candidate.
type Insights struct {
	Strengths         []string `json:"strengths"`
	ImprovementAreas  []string `json:"improvement_areas"`
	KeySkills         []string `json:"key_skills"`
	ExperienceSummary string   `json:"experience_summary,omitempty"`
	CareerLevel       string   `json:"career_level,omitempty"`
	IndustryFit       []string `json:"industry_fit"`
}

// InterviewQuestion is a single generated interview question.
type InterviewQuestion struct {
	Question   string `json:"question"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
	Intent     string `json:"intent,omitempty"`
}

// AnalyzeRequest is the body of the analyze endpoints.
type AnalyzeRequest struct {
	ResumeText string `json:"resume_text" validate:"required,notblank"`
}

// QuestionsRequest is the body of the question generation endpoint.
type QuestionsRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,notblank"`
	JobDescription string `json:"job_description,omitempty"`
	NumQuestions   int    `json:"num_questions,omitempty" validate:"omitempty,min=1,max=10"`
}

// AnalysisResponse is returned by the blocking analyze endpoint and carried
// in the final frame of the streaming endpoints.
type AnalysisResponse struct {
	StructuredData *StructuredData `json:"structured_data"`
	Insights       *Insights       `json:"insights"`
}

// QuestionsResponse is returned by the question generation endpoint.
type QuestionsResponse struct {
	Questions []InterviewQuestion `json:"questions"`
	Overview  string              `json:"overview,omitempty"`
}

// Error is the common error response body.
type Error struct {
	Message   string  `json:"message"`
	RequestID *string `json:"request_id,omitempty"`
}

// Health is the health check response body.
type Health struct {
	Status  string `json:"status"`
	App     string `json:"app,omitempty"`
	Version string `json:"version,omitempty"`
}
