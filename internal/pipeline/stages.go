package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	api "github.com/ayushvishnoipro/SkillzoAI-Assignment/api/v1alpha1"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/llm"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/parser"
)

const (
	AnalysisWorkflow  = "analysis"
	QuestionsWorkflow = "questions"

	summaryFallback    = "Professional summary not available."
	experienceFallback = "Could not generate experience summary."
)

// NewAnalysisPipeline assembles the full resume analysis workflow:
// cleaning and local parsing, three model extraction passes, summary
// generation and insight generation.
func NewAnalysisPipeline(gateway llm.Gateway, saver CheckpointSaver, emitter *Emitter) *Pipeline {
	return New(AnalysisWorkflow, saver, emitter,
		Stage{Name: "clean_parse", Run: cleanAndParse},
		Stage{Name: "extract_structure", Run: extractStructure(gateway)},
		Stage{Name: "extract_work_experience", Run: extractWorkExperience(gateway)},
		Stage{Name: "extract_education", Run: extractEducation(gateway)},
		Stage{Name: "generate_summary", Run: generateSummary(gateway, emitter)},
		Stage{Name: "generate_insights", Run: generateInsights(gateway)},
	)
}

// NewQuestionPipeline assembles the interview question workflow. It
// shares the cleaning stage with the analysis workflow but skips the
// extraction passes, the question prompt works on the cleaned text
// directly.
func NewQuestionPipeline(gateway llm.Gateway, saver CheckpointSaver, emitter *Emitter) *Pipeline {
	return New(QuestionsWorkflow, saver, emitter,
		Stage{Name: "clean_parse", Run: cleanAndParse},
		Stage{Name: "generate_questions", Run: generateQuestions(gateway)},
	)
}

// cleanAndParse normalizes the raw text and runs the local extractors.
// It is the only stage that rejects input outright.
func cleanAndParse(_ context.Context, state *State) *State {
	if strings.TrimSpace(state.ResumeText) == "" {
		return state.fail("No resume text provided")
	}

	out := state.Clone()
	out.CleanedText = parser.CleanText(state.ResumeText)
	contact := parser.ExtractContactInfo(out.CleanedText)
	out.ContactInfo = &contact
	out.Sections = parser.ExtractSections(out.CleanedText)
	out.Status = StatusProcessing
	return out
}

// extractStructure runs the first model pass. Its output is the skeleton
// every later stage fills in, so a failure here ends the run.
func extractStructure(gateway llm.Gateway) StageFunc {
	return func(ctx context.Context, state *State) *State {
		response, err := gateway.Complete(ctx, structurePrompt(state.CleanedText))
		if err != nil {
			return state.fail("failed to extract structured data: " + err.Error())
		}

		data, err := llm.DecodeJSON[api.StructuredData](response, "structured data")
		if err != nil {
			return state.fail("failed to extract structured data: " + err.Error())
		}

		// The local header parse backfills anything the model missed.
		if contact := state.ContactInfo; contact != nil {
			if data.Name == "" {
				data.Name = contact.Name
			}
			if data.Email == "" {
				data.Email = contact.Email
			}
			if data.Phone == "" {
				data.Phone = contact.Phone
			}
			if data.Location == "" {
				data.Location = contact.Location
			}
		}
		if data.WorkExperience == nil {
			data.WorkExperience = []api.WorkExperience{}
		}
		if data.Education == nil {
			data.Education = []api.Education{}
		}
		if data.Skills == nil {
			data.Skills = []api.Skill{}
		}

		out := state.Clone()
		out.StructuredData = &data
		out.Status = StatusStructuredDataExtracted
		return out
	}
}

func extractWorkExperience(gateway llm.Gateway) StageFunc {
	logger := zap.S().Named("pipeline")
	return func(ctx context.Context, state *State) *State {
		out := state.Clone()
		out.Status = StatusWorkExperienceExtracted

		response, err := gateway.Complete(ctx, workExperiencePrompt(state.CleanedText))
		if err != nil {
			// The skeleton list from the structure pass stands in.
			logger.Warnw("work experience extraction failed, keeping prior data", "error", err)
			return out
		}

		entries, err := decodeList[api.WorkExperience](response, "work_experience")
		if err != nil {
			logger.Warnw("work experience extraction failed, keeping prior data", "error", err)
			return out
		}

		out.StructuredData.WorkExperience = entries
		return out
	}
}

func extractEducation(gateway llm.Gateway) StageFunc {
	logger := zap.S().Named("pipeline")
	return func(ctx context.Context, state *State) *State {
		out := state.Clone()
		out.Status = StatusEducationExtracted

		response, err := gateway.Complete(ctx, educationPrompt(state.CleanedText))
		if err != nil {
			logger.Warnw("education extraction failed, keeping prior data", "error", err)
			return out
		}

		entries, err := decodeList[api.Education](response, "education")
		if err != nil {
			logger.Warnw("education extraction failed, keeping prior data", "error", err)
			return out
		}

		out.StructuredData.Education = entries
		return out
	}
}

// generateSummary produces the professional summary. When the run has
// streaming enabled, each model delta is published through the emitter
// so the streaming adapter can forward partial text to the client.
func generateSummary(gateway llm.Gateway, emitter *Emitter) StageFunc {
	logger := zap.S().Named("pipeline")
	return func(ctx context.Context, state *State) *State {
		out := state.Clone()
		out.Status = StatusSummaryGenerated

		prompt := summaryPrompt(state.StructuredData)

		var response string
		var err error
		if state.StreamingEnabled {
			response, err = gateway.CompleteStream(ctx, prompt, func(cumulative string) error {
				emitter.Emit(Event{
					Stage:  "generate_summary",
					Status: StatusSummaryGenerating,
					Data:   map[string]any{"partial_summary": cumulative},
				})
				return nil
			})
		} else {
			response, err = gateway.Complete(ctx, prompt)
		}
		if err != nil {
			logger.Warnw("summary generation failed, using fallback", "error", err)
			out.StructuredData.Summary = summaryFallback
			return out
		}

		summary := strings.TrimSpace(response)
		summary = strings.TrimPrefix(summary, `"`)
		summary = strings.TrimSuffix(summary, `"`)
		out.StructuredData.Summary = summary
		return out
	}
}

func generateInsights(gateway llm.Gateway) StageFunc {
	logger := zap.S().Named("pipeline")
	return func(ctx context.Context, state *State) *State {
		out := state.Clone()
		out.Status = StatusInsightsGenerated

		insights := api.Insights{
			Strengths:        []string{},
			ImprovementAreas: []string{},
			KeySkills:        []string{},
			IndustryFit:      []string{},
		}

		response, err := gateway.Complete(ctx, insightsPrompt(state.StructuredData))
		if err == nil {
			insights, err = llm.DecodeJSON[api.Insights](response, "insights")
		}
		if err != nil {
			logger.Warnw("insight generation failed, using fallback", "error", err)
			insights = api.Insights{
				Strengths:         []string{},
				ImprovementAreas:  []string{},
				KeySkills:         []string{},
				ExperienceSummary: experienceFallback,
				CareerLevel:       "Unknown",
				IndustryFit:       []string{},
			}
		}

		out.Insights = &insights
		return out
	}
}

func generateQuestions(gateway llm.Gateway) StageFunc {
	return func(ctx context.Context, state *State) *State {
		response, err := gateway.Complete(ctx, questionsPrompt(state.CleanedText, state.JobDescription, state.NumQuestions))
		if err != nil {
			out := state.fail("failed to generate questions: " + err.Error())
			out.Questions = []api.InterviewQuestion{}
			return out
		}

		questions, err := decodeList[api.InterviewQuestion](response, "questions")
		if err != nil {
			out := state.fail("failed to generate questions: " + err.Error())
			out.Questions = []api.InterviewQuestion{}
			return out
		}

		if len(questions) > state.NumQuestions {
			questions = questions[:state.NumQuestions]
		}

		out := state.Clone()
		out.Questions = questions
		out.Status = StatusQuestionsGenerated
		return out
	}
}

// decodeList handles the two shapes models return for list prompts: a
// bare JSON array, or an object wrapping the array under a known key.
func decodeList[T any](response, key string) ([]T, error) {
	entries, err := llm.DecodeJSON[[]T](response, key)
	if err == nil {
		return entries, nil
	}

	wrapped, wrapErr := llm.DecodeJSON[map[string][]T](response, key)
	if wrapErr == nil {
		if entries, ok := wrapped[key]; ok {
			return entries, nil
		}
	}
	return nil, err
}
