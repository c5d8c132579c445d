package pipeline

import (
	"fmt"
	"strings"

	api "github.com/ayushvishnoipro/SkillzoAI-Assignment/api/v1alpha1"
)

const structurePromptTemplate = `Extract structured information from the following resume text.
Include:
- Name
- Email
- Phone number
- Location
- Empty arrays for work_experience, education, and skills (will be filled in later steps)

Format as a JSON object.

RESUME TEXT:
%s`

const workExperiencePromptTemplate = `Extract detailed work experience information from the following resume text.
For each work experience entry, extract:
- Company name
- Position/title
- Start date (formatted as YYYY-MM if available)
- End date (formatted as YYYY-MM or "Present" if current)
- Description
- Skills used (extracted from descriptions)
- Achievements (if any)

Format as a JSON array of objects.

RESUME TEXT:
%s`

const educationPromptTemplate = `Extract detailed education information from the following resume text.
For each education entry, extract:
- Institution name
- Degree (e.g., B.S., M.S., Ph.D.)
- Field of study
- Start date (year)
- End date (year or "Present" if ongoing)
- GPA (if available)
- Achievements or honors (if any)

Format as a JSON array of objects.

RESUME TEXT:
%s`

const summaryPromptTemplate = `Create a concise professional summary paragraph for a resume based on the following information:

Name: %s
Work Experience: %s
Education: %s

The summary should be a single paragraph highlighting key qualifications and experience.
Write in third-person perspective.`

const insightsPromptTemplate = `Analyze the following resume information and provide professional insights.
Include:
1. A list of professional strengths (4-5 items)
2. Areas for improvement (1-2 items)
3. Key skills (both explicit and implicit from experience)
4. A brief experience summary (one sentence)
5. Career level assessment (Junior, Mid, Senior, Executive)
6. Industry fit (3-4 relevant industries)

Format the response as a JSON object with the following keys:
- strengths (array of strings)
- improvement_areas (array of strings)
- key_skills (array of strings)
- experience_summary (string)
- career_level (string)
- industry_fit (array of strings)

RESUME INFORMATION:
Work Experience:
%s

Education:
%s

Summary: %s`

func structurePrompt(resumeText string) string {
	return fmt.Sprintf(structurePromptTemplate, resumeText)
}

func workExperiencePrompt(resumeText string) string {
	return fmt.Sprintf(workExperiencePromptTemplate, resumeText)
}

func educationPrompt(resumeText string) string {
	return fmt.Sprintf(educationPromptTemplate, resumeText)
}

func summaryPrompt(data *api.StructuredData) string {
	name := data.Name
	if name == "" {
		name = "The candidate"
	}

	work := make([]string, 0, len(data.WorkExperience))
	for _, exp := range data.WorkExperience {
		position := exp.Position
		if position == "" {
			position = "role"
		}
		company := exp.Company
		if company == "" {
			company = "a company"
		}
		work = append(work, fmt.Sprintf("%s at %s", position, company))
	}

	education := make([]string, 0, len(data.Education))
	for _, edu := range data.Education {
		field := edu.FieldOfStudy
		if field == "" {
			field = "a field"
		}
		institution := edu.Institution
		if institution == "" {
			institution = "an institution"
		}
		education = append(education, fmt.Sprintf("%s in %s from %s", edu.Degree, field, institution))
	}

	return fmt.Sprintf(summaryPromptTemplate, name, orNotProvided(work), orNotProvided(education))
}

func insightsPrompt(data *api.StructuredData) string {
	work := make([]string, 0, len(data.WorkExperience))
	for _, exp := range data.WorkExperience {
		description := exp.Description
		if description == "" {
			description = "No description"
		}
		work = append(work, fmt.Sprintf("- %s at %s (%s to %s): %s",
			exp.Position, exp.Company, exp.StartDate, exp.EndDate, description))
	}

	education := make([]string, 0, len(data.Education))
	for _, edu := range data.Education {
		education = append(education, fmt.Sprintf("- %s in %s from %s (%s to %s)",
			edu.Degree, edu.FieldOfStudy, edu.Institution, edu.StartDate, edu.EndDate))
	}

	summary := data.Summary
	if summary == "" {
		summary = "Not provided"
	}

	return fmt.Sprintf(insightsPromptTemplate,
		strings.Join(work, "\n"), strings.Join(education, "\n"), summary)
}

func questionsPrompt(resumeText, jobDescription string, numQuestions int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d interview questions for a job candidate based on their resume", numQuestions)
	if jobDescription != "" {
		b.WriteString(" and the job description")
	}
	b.WriteString(`.

For each question:
1. Create a challenging but fair interview question
2. Assign a difficulty level (Easy, Medium, Hard)
3. Categorize the question (e.g., Technical, Behavioral, Problem-solving)
4. Explain the intent of the question (what you're trying to assess)

Format as a JSON array of objects with these properties:
- question (string)
- difficulty (string: Easy, Medium, or Hard)
- category (string)
- intent (string)

RESUME:
`)
	b.WriteString(resumeText)
	if jobDescription != "" {
		b.WriteString("\n\nJOB DESCRIPTION:\n")
		b.WriteString(jobDescription)
	}
	return b.String()
}

func orNotProvided(items []string) string {
	if len(items) == 0 {
		return "Not provided"
	}
	return strings.Join(items, ", ")
}
