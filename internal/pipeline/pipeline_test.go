package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/ayushvishnoipro/SkillzoAI-Assignment/api/v1alpha1"
)

func TestPipeline(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pipeline Suite")
}

const structureResponse = `{
	"name": "Jane Roe",
	"email": "jane.roe@example.com",
	"work_experience": [],
	"education": [],
	"skills": [{"name": "Go"}]
}`

const workResponse = `[
	{"company": "Acme", "position": "Engineer", "start_date": "2019-01", "end_date": "Present"}
]`

const educationResponse = "```json\n[{\"institution\": \"State University\", \"degree\": \"B.S.\", \"field_of_study\": \"Computer Science\"}]\n```"

const insightsResponse = `{
	"strengths": ["ships software"],
	"improvement_areas": ["documentation"],
	"key_skills": ["Go"],
	"experience_summary": "Engineer with production experience.",
	"career_level": "Mid",
	"industry_fit": ["software"]
}`

const questionsResponse = `[
	{"question": "q1", "difficulty": "Easy", "category": "Technical"},
	{"question": "q2", "difficulty": "Medium", "category": "Technical"},
	{"question": "q3", "difficulty": "Hard", "category": "Technical"},
	{"question": "q4", "difficulty": "Medium", "category": "Behavioral"},
	{"question": "q5", "difficulty": "Easy", "category": "Behavioral"}
]`

const sampleResume = `Jane Roe
jane.roe@example.com | 555-123-4567

EXPERIENCE
Engineer at Acme, 2019 to present

EDUCATION
B.S. in Computer Science, State University`

var _ = Describe("analysis pipeline", func() {
	var (
		gateway *fakeGateway
		saver   *fakeSaver
	)

	BeforeEach(func() {
		gateway = newFakeGateway()
		saver = &fakeSaver{}
	})

	Context("run", func() {
		It("produces a completed state with structured data and insights", func() {
			p := NewAnalysisPipeline(gateway, saver, nil)
			state := p.Run(context.TODO(), &State{ResumeText: sampleResume, TrackingID: "ckpt-test"})

			Expect(state.Failed()).To(BeFalse())
			Expect(state.Complete).To(BeTrue())
			Expect(state.Status).To(Equal(StatusCompleted))

			Expect(state.StructuredData).NotTo(BeNil())
			Expect(state.StructuredData.Name).To(Equal("Jane Roe"))
			Expect(state.StructuredData.WorkExperience).To(HaveLen(1))
			Expect(state.StructuredData.WorkExperience[0].Company).To(Equal("Acme"))
			Expect(state.StructuredData.Education).To(HaveLen(1))
			Expect(state.StructuredData.Education[0].Institution).To(Equal("State University"))
			Expect(state.StructuredData.Summary).To(Equal("Jane Roe is an engineer."))

			Expect(state.Insights).NotTo(BeNil())
			Expect(state.Insights.CareerLevel).To(Equal("Mid"))
		})

		It("publishes a checkpoint after every stage", func() {
			p := NewAnalysisPipeline(gateway, saver, nil)
			state := p.Run(context.TODO(), &State{ResumeText: sampleResume, TrackingID: "ckpt-test"})

			Expect(state.Failed()).To(BeFalse())
			Expect(saver.statuses).To(Equal([]Status{
				StatusProcessing,
				StatusStructuredDataExtracted,
				StatusWorkExperienceExtracted,
				StatusEducationExtracted,
				StatusSummaryGenerated,
				StatusInsightsGenerated,
				StatusCompleted,
			}))
		})

		It("rejects an empty resume without calling the model", func() {
			p := NewAnalysisPipeline(gateway, saver, nil)
			state := p.Run(context.TODO(), &State{ResumeText: "   \n  ", TrackingID: "ckpt-test"})

			Expect(state.Failed()).To(BeTrue())
			Expect(state.Error).To(Equal("No resume text provided"))
			Expect(state.Complete).To(BeTrue())
			Expect(state.Status).To(Equal(StatusError))
			Expect(gateway.calls).To(BeEmpty())
		})

		It("ends the run when structure extraction fails", func() {
			gateway.errs["Extract structured information"] = errors.New("rate limited")

			p := NewAnalysisPipeline(gateway, saver, nil)
			state := p.Run(context.TODO(), &State{ResumeText: sampleResume, TrackingID: "ckpt-test"})

			Expect(state.Failed()).To(BeTrue())
			Expect(state.Error).To(ContainSubstring("failed to extract structured data"))
			Expect(state.Complete).To(BeTrue())
			// No stage after the failure may touch the model.
			Expect(gateway.calls).To(HaveLen(1))
		})

		It("keeps the prior education list when the extraction pass fails", func() {
			gateway.errs["Extract detailed education information"] = errors.New("timeout")

			p := NewAnalysisPipeline(gateway, saver, nil)
			state := p.Run(context.TODO(), &State{ResumeText: sampleResume, TrackingID: "ckpt-test"})

			Expect(state.Failed()).To(BeFalse())
			Expect(state.Complete).To(BeTrue())
			Expect(state.StructuredData.Education).To(BeEmpty())
			Expect(state.StructuredData.WorkExperience).To(HaveLen(1))
		})

		It("falls back to a placeholder summary when generation fails", func() {
			gateway.errs["Create a concise professional summary"] = errors.New("timeout")

			p := NewAnalysisPipeline(gateway, saver, nil)
			state := p.Run(context.TODO(), &State{ResumeText: sampleResume, TrackingID: "ckpt-test"})

			Expect(state.Failed()).To(BeFalse())
			Expect(state.StructuredData.Summary).To(Equal("Professional summary not available."))
		})

		It("falls back to minimal insights when generation fails", func() {
			gateway.errs["provide professional insights"] = errors.New("timeout")

			p := NewAnalysisPipeline(gateway, saver, nil)
			state := p.Run(context.TODO(), &State{ResumeText: sampleResume, TrackingID: "ckpt-test"})

			Expect(state.Failed()).To(BeFalse())
			Expect(state.Insights).NotTo(BeNil())
			Expect(state.Insights.ExperienceSummary).To(Equal("Could not generate experience summary."))
			Expect(state.Insights.CareerLevel).To(Equal("Unknown"))
			Expect(state.Insights.Strengths).To(BeEmpty())
		})
	})

	Context("streaming summary", func() {
		It("emits partial summary events while the summary is produced", func() {
			emitter := NewEmitter(64)
			p := NewAnalysisPipeline(gateway, saver, emitter)

			state := p.Run(context.TODO(), &State{
				ResumeText:       sampleResume,
				TrackingID:       "ckpt-test",
				StreamingEnabled: true,
			})
			Expect(state.Failed()).To(BeFalse())

			var partials []string
			for ev := range emitter.Events() {
				if ev.Status != StatusSummaryGenerating {
					continue
				}
				partials = append(partials, ev.Data["partial_summary"].(string))
			}

			Expect(partials).NotTo(BeEmpty())
			Expect(partials[len(partials)-1]).To(Equal("Jane Roe is an engineer."))
			// Each partial extends the previous one.
			for i := 1; i < len(partials); i++ {
				Expect(strings.HasPrefix(partials[i], partials[i-1])).To(BeTrue())
			}
		})
	})
})

var _ = Describe("question pipeline", func() {
	var (
		gateway *fakeGateway
		saver   *fakeSaver
	)

	BeforeEach(func() {
		gateway = newFakeGateway()
		saver = &fakeSaver{}
	})

	It("caps the question list at the requested count", func() {
		p := NewQuestionPipeline(gateway, saver, nil)
		state := p.Run(context.TODO(), &State{
			ResumeText:   sampleResume,
			TrackingID:   "ckpt-test",
			NumQuestions: 3,
		})

		Expect(state.Failed()).To(BeFalse())
		Expect(state.Complete).To(BeTrue())
		Expect(state.Questions).To(HaveLen(3))
		Expect(state.Questions[0].Question).To(Equal("q1"))
	})

	It("escalates a generation failure", func() {
		gateway.errs["interview questions"] = errors.New("rate limited")

		p := NewQuestionPipeline(gateway, saver, nil)
		state := p.Run(context.TODO(), &State{
			ResumeText:   sampleResume,
			TrackingID:   "ckpt-test",
			NumQuestions: 5,
		})

		Expect(state.Failed()).To(BeTrue())
		Expect(state.Error).To(ContainSubstring("failed to generate questions"))
		Expect(state.Questions).To(BeEmpty())
	})
})

var _ = Describe("state", func() {
	It("clone isolates nested data", func() {
		original := &State{
			Sections: map[string]string{"HEADER": "Jane"},
			StructuredData: &api.StructuredData{
				WorkExperience: []api.WorkExperience{{Company: "Acme"}},
				Education:      []api.Education{},
				Skills:         []api.Skill{},
			},
		}

		clone := original.Clone()
		clone.Sections["HEADER"] = "changed"
		clone.StructuredData.WorkExperience[0].Company = "Other"

		Expect(original.Sections["HEADER"]).To(Equal("Jane"))
		Expect(original.StructuredData.WorkExperience[0].Company).To(Equal("Acme"))
	})
})

// fakeGateway scripts responses by prompt fragment. Unmatched prompts
// fail the test loudly instead of returning an empty string.
type fakeGateway struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		responses: map[string]string{
			"Extract structured information":          structureResponse,
			"Extract detailed work experience":        workResponse,
			"Extract detailed education information":  educationResponse,
			"Create a concise professional summary":   "Jane Roe is an engineer.",
			"provide professional insights":           insightsResponse,
			"interview questions":                     questionsResponse,
		},
		errs: map[string]error{},
	}
}

func (g *fakeGateway) lookup(prompt string) (string, error) {
	for fragment, err := range g.errs {
		if strings.Contains(prompt, fragment) {
			return "", err
		}
	}
	for fragment, response := range g.responses {
		if strings.Contains(prompt, fragment) {
			return response, nil
		}
	}
	return "", errors.New("unexpected prompt: " + prompt)
}

func (g *fakeGateway) Complete(_ context.Context, prompt string) (string, error) {
	g.calls = append(g.calls, prompt)
	return g.lookup(prompt)
}

func (g *fakeGateway) CompleteStream(_ context.Context, prompt string, fn func(string) error) (string, error) {
	g.calls = append(g.calls, prompt)
	response, err := g.lookup(prompt)
	if err != nil {
		return "", err
	}
	// Deliver in word-sized deltas to exercise cumulative streaming.
	var acc strings.Builder
	for i, word := range strings.Fields(response) {
		if i > 0 {
			acc.WriteString(" ")
		}
		acc.WriteString(word)
		if fn != nil {
			if err := fn(acc.String()); err != nil {
				return "", err
			}
		}
	}
	return acc.String(), nil
}

type fakeSaver struct {
	statuses []Status
}

func (s *fakeSaver) Put(_ context.Context, id string, state *State) error {
	s.statuses = append(s.statuses, state.Status)
	return nil
}
