// Package service holds the application logic between the HTTP handlers
// and the pipeline: it owns run construction, tracking ids and the
// detachment rules for streaming runs.
package service

import (
	"context"

	"go.uber.org/zap"

	api "github.com/ayushvishnoipro/SkillzoAI-Assignment/api/v1alpha1"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/checkpoint"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/llm"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/pipeline"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/streaming"
)

const (
	defaultNumQuestions = 5

	questionsOverview = "These questions are tailored to the candidate's background and skills, designed to assess their technical abilities and fit for the role."
)

type ResumeService struct {
	gateway     llm.Gateway
	checkpoints *checkpoint.Store
	log         *zap.SugaredLogger
}

func NewResumeService(gateway llm.Gateway, checkpoints *checkpoint.Store) *ResumeService {
	return &ResumeService{
		gateway:     gateway,
		checkpoints: checkpoints,
		log:         zap.S().Named("service"),
	}
}

// Analyze runs the full analysis workflow and blocks until it finishes.
func (s *ResumeService) Analyze(ctx context.Context, resumeText string) (*api.AnalysisResponse, error) {
	trackingID := checkpoint.GenerateID()
	s.log.Infow("starting resume analysis", "tracking_id", trackingID)

	p := pipeline.NewAnalysisPipeline(s.gateway, s.checkpoints, nil)
	state := p.Run(ctx, &pipeline.State{
		ResumeText: resumeText,
		TrackingID: trackingID,
	})

	if state.Failed() {
		return nil, NewErrAnalysisFailed(state.Error)
	}

	return &api.AnalysisResponse{
		StructuredData: state.StructuredData,
		Insights:       state.Insights,
	}, nil
}

// AnalyzeStream starts the analysis workflow detached from the request
// and returns an event channel fed by checkpoint polling. A client
// disconnect stops the polling; the run itself continues to completion
// so its checkpoints stay consistent.
func (s *ResumeService) AnalyzeStream(ctx context.Context, resumeText string) <-chan streaming.Event {
	trackingID := checkpoint.GenerateID()
	s.log.Infow("starting streaming resume analysis", "tracking_id", trackingID)

	p := pipeline.NewAnalysisPipeline(s.gateway, s.checkpoints, nil)
	initial := &pipeline.State{
		ResumeText: resumeText,
		TrackingID: trackingID,
	}

	done := make(chan *pipeline.State, 1)
	runCtx := context.WithoutCancel(ctx)
	go func() {
		done <- p.Run(runCtx, initial)
	}()

	return streaming.PollCheckpoints(ctx, s.checkpoints, trackingID, done)
}

// AnalyzeSummaryStream starts a single analysis run with live summary
// generation and returns an event channel carrying the partial summary
// text followed by the final result. The run is never invoked twice.
func (s *ResumeService) AnalyzeSummaryStream(ctx context.Context, resumeText string) <-chan streaming.Event {
	trackingID := checkpoint.GenerateID()
	s.log.Infow("starting streaming summary analysis", "tracking_id", trackingID)

	emitter := pipeline.NewEmitter(64)
	p := pipeline.NewAnalysisPipeline(s.gateway, s.checkpoints, emitter)
	initial := &pipeline.State{
		ResumeText:       resumeText,
		TrackingID:       trackingID,
		StreamingEnabled: true,
	}

	done := make(chan *pipeline.State, 1)
	runCtx := context.WithoutCancel(ctx)
	go func() {
		done <- p.Run(runCtx, initial)
	}()

	return streaming.FilterSummary(ctx, emitter.Events(), done)
}

// GenerateQuestions runs the question workflow and blocks until it
// finishes.
func (s *ResumeService) GenerateQuestions(ctx context.Context, req api.QuestionsRequest) (*api.QuestionsResponse, error) {
	numQuestions := req.NumQuestions
	if numQuestions == 0 {
		numQuestions = defaultNumQuestions
	}

	trackingID := checkpoint.GenerateID()
	s.log.Infow("generating interview questions", "tracking_id", trackingID, "num_questions", numQuestions)

	p := pipeline.NewQuestionPipeline(s.gateway, s.checkpoints, nil)
	state := p.Run(ctx, &pipeline.State{
		ResumeText:     req.ResumeText,
		TrackingID:     trackingID,
		JobDescription: req.JobDescription,
		NumQuestions:   numQuestions,
	})

	if state.Failed() {
		return nil, NewErrQuestionGenerationFailed(state.Error)
	}

	return &api.QuestionsResponse{
		Questions: state.Questions,
		Overview:  questionsOverview,
	}, nil
}
