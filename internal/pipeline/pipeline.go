// Package pipeline implements the workflow engine: an ordered sequence of
// stages run over a shared state object, short-circuiting to a terminal
// stage on failure, publishing a checkpoint after every stage so
// concurrent observers can follow progress.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ayushvishnoipro/SkillzoAI-Assignment/pkg/metrics"
)

// CheckpointSaver publishes the latest state snapshot for a tracking id.
// Implementations are best-effort: a failed save must not fail the run.
type CheckpointSaver interface {
	Put(ctx context.Context, id string, state *State) error
}

// StageFunc consumes the full accumulated state and returns a full
// replacement. Stage-level failures are recorded on the returned state,
// never raised.
type StageFunc func(ctx context.Context, state *State) *State

type Stage struct {
	Name string
	Run  StageFunc
}

// Pipeline executes its stages in order. Once a stage records a failure,
// remaining enrichment stages are skipped and only the terminal stage
// runs. The terminal stage always runs and is the only place Complete is
// set.
type Pipeline struct {
	name    string
	stages  []Stage
	saver   CheckpointSaver
	emitter *Emitter
}

// New builds a pipeline. saver may be nil when checkpointing is not
// wanted (tests); emitter may be nil when nobody is listening.
func New(name string, saver CheckpointSaver, emitter *Emitter, stages ...Stage) *Pipeline {
	return &Pipeline{
		name:    name,
		stages:  stages,
		saver:   saver,
		emitter: emitter,
	}
}

// Run executes the pipeline to completion and returns the final state.
// Stage failures never propagate: the returned state's Error field
// carries them. Only a genuine runtime fault (panic) escapes.
func (p *Pipeline) Run(ctx context.Context, initial *State) *State {
	logger := zap.S().Named("pipeline")
	logger.Infow("pipeline run started", "workflow", p.name, "tracking_id", initial.TrackingID)

	defer p.emitter.Close()

	state := initial
	for _, stage := range p.stages {
		if state.Failed() {
			break
		}

		start := time.Now()
		state = stage.Run(ctx, state)
		metrics.ObserveStageDuration(p.name, stage.Name, time.Since(start))

		p.checkpoint(ctx, state)
		if state.Failed() {
			logger.Warnw("stage failed", "workflow", p.name, "stage", stage.Name, "error", state.Error)
			p.emitter.Emit(Event{Stage: stage.Name, Status: StatusError, Message: state.Error})
		} else {
			p.emitter.Emit(Event{
				Stage:   stage.Name,
				Status:  state.Status,
				Message: "Completed: " + state.Status.Humanize(),
			})
		}
	}

	state = p.finalize(ctx, state)

	outcome := string(StatusCompleted)
	if state.Failed() {
		outcome = string(StatusError)
	}
	metrics.IncreasePipelineRuns(p.name, outcome)
	logger.Infow("pipeline run finished", "workflow", p.name, "tracking_id", state.TrackingID, "status", state.Status)

	return state
}

// finalize is the terminal stage: it normalizes whatever partial results
// exist, stamps the final status and publishes the last checkpoint.
func (p *Pipeline) finalize(ctx context.Context, state *State) *State {
	out := state.Clone()
	out.Complete = true
	if out.Failed() {
		out.Status = StatusError
	} else {
		out.Status = StatusCompleted
	}

	p.checkpoint(ctx, out)
	p.emitter.Emit(Event{Stage: "finalize", Status: out.Status, Message: "Analysis complete"})
	return out
}

func (p *Pipeline) checkpoint(ctx context.Context, state *State) {
	if p.saver == nil || state.TrackingID == "" {
		return
	}
	if err := p.saver.Put(ctx, state.TrackingID, state); err != nil {
		// Best-effort by contract: progress observation degrades, the run does not.
		zap.S().Named("pipeline").Warnw("failed to save checkpoint", "tracking_id", state.TrackingID, "error", err)
	}
}
