package pipeline

import (
	"maps"
	"slices"

	api "github.com/ayushvishnoipro/SkillzoAI-Assignment/api/v1alpha1"
)

// Status marks how far a pipeline run has progressed. It advances
// monotonically through the stage vocabulary and settles on Completed or
// Error exactly once, in the terminal stage.
type Status string

const (
	StatusProcessing              Status = "processing"
	StatusStructuredDataExtracted Status = "structured_data_extracted"
	StatusWorkExperienceExtracted Status = "work_experience_extracted"
	StatusEducationExtracted      Status = "education_extracted"
	StatusSummaryGenerating       Status = "summary_generating"
	StatusSummaryGenerated        Status = "summary_generated"
	StatusInsightsGenerated       Status = "insights_generated"
	StatusQuestionsGenerated      Status = "questions_generated"
	StatusCompleted               Status = "completed"
	StatusError                   Status = "error"
)

// State is the shared object threaded through a pipeline run. Stages
// receive the whole accumulated state and return a whole replacement;
// they never hand back partial deltas.
type State struct {
	ResumeText  string            `json:"resume_text"`
	TrackingID  string            `json:"tracking_id"`
	CleanedText string            `json:"cleaned_text,omitempty"`
	ContactInfo *api.ContactInfo  `json:"contact_info,omitempty"`
	Sections    map[string]string `json:"sections,omitempty"`

	StructuredData *api.StructuredData     `json:"structured_data,omitempty"`
	Insights       *api.Insights           `json:"insights,omitempty"`
	Questions      []api.InterviewQuestion `json:"questions,omitempty"`

	JobDescription   string `json:"job_description,omitempty"`
	NumQuestions     int    `json:"num_questions,omitempty"`
	StreamingEnabled bool   `json:"streaming_enabled,omitempty"`

	Status   Status `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
	Complete bool   `json:"complete"`
}

// Failed reports whether a stage has recorded a terminal failure.
func (s *State) Failed() bool {
	return s.Error != ""
}

// Clone returns a replacement copy a stage can mutate without touching
// the state observed by earlier checkpoints.
func (s *State) Clone() *State {
	out := *s
	out.Sections = maps.Clone(s.Sections)
	out.Questions = slices.Clone(s.Questions)
	if s.ContactInfo != nil {
		ci := *s.ContactInfo
		out.ContactInfo = &ci
	}
	if s.StructuredData != nil {
		sd := *s.StructuredData
		sd.WorkExperience = slices.Clone(s.StructuredData.WorkExperience)
		sd.Education = slices.Clone(s.StructuredData.Education)
		sd.Skills = slices.Clone(s.StructuredData.Skills)
		out.StructuredData = &sd
	}
	if s.Insights != nil {
		in := *s.Insights
		in.Strengths = slices.Clone(s.Insights.Strengths)
		in.ImprovementAreas = slices.Clone(s.Insights.ImprovementAreas)
		in.KeySkills = slices.Clone(s.Insights.KeySkills)
		in.IndustryFit = slices.Clone(s.Insights.IndustryFit)
		out.Insights = &in
	}
	return &out
}

// fail returns a replacement state carrying a terminal failure. The
// engine's branch rule routes failed states straight to the terminal
// stage.
func (s *State) fail(msg string) *State {
	out := s.Clone()
	out.Error = msg
	out.Status = StatusError
	return out
}
