// Package streaming adapts pipeline progress into server-sent events.
// Two strategies produce event channels, checkpoint polling for coarse
// stage progress and event filtering for live summary text, and a single
// writer turns either channel into SSE frames.
package streaming

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lthibault/jitterbug/v2"
	"go.uber.org/zap"

	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/checkpoint"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/pipeline"
)

const (
	pollInterval = 500 * time.Millisecond
	pollJitter   = 50 * time.Millisecond
)

// Event is the payload of a single SSE data frame.
type Event struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// CheckpointSource is the read side of the checkpoint store.
type CheckpointSource interface {
	Get(ctx context.Context, id string) (*checkpoint.Checkpoint, error)
}

// PollCheckpoints observes a detached pipeline run through its
// checkpoints. Each new status is forwarded once, in the order observed;
// the final frame carries the full result or the run's error. The
// returned channel closes after the final frame.
func PollCheckpoints(ctx context.Context, source CheckpointSource, trackingID string, done <-chan *pipeline.State) <-chan Event {
	out := make(chan Event, 16)

	go func() {
		defer close(out)

		logger := zap.S().Named("streaming")
		out <- Event{Status: "started", Message: "Resume analysis started"}

		seen := make(map[pipeline.Status]bool)
		ticker := jitterbug.New(pollInterval, &jitterbug.Norm{Stdev: pollJitter})
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Debugw("client gone, stopping poll", "tracking_id", trackingID)
				return

			case final := <-done:
				select {
				case out <- finalEvent(final):
				case <-ctx.Done():
				}
				return

			case <-ticker.C:
				cp, err := source.Get(ctx, trackingID)
				if err != nil {
					// The first poll can beat the first checkpoint write.
					continue
				}
				status := cp.State.Status
				if status == "" || seen[status] {
					continue
				}
				// Terminal statuses are reported by the final frame only,
				// otherwise a tick landing after the finalize checkpoint
				// would duplicate them.
				if status == pipeline.StatusCompleted || status == pipeline.StatusError {
					continue
				}
				seen[status] = true
				select {
				case out <- Event{
					Status:  string(status),
					Message: "Completed: " + status.Humanize(),
				}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// FilterSummary observes a single pipeline run through its emitter and
// forwards only the live summary text, then the final result. The run is
// not invoked twice: the same execution feeds both the partial frames
// and the final frame.
func FilterSummary(ctx context.Context, events <-chan pipeline.Event, done <-chan *pipeline.State) <-chan Event {
	out := make(chan Event, 16)

	go func() {
		defer close(out)

		out <- Event{Status: "started", Message: "Analysis started"}

		for ev := range events {
			if ev.Status != pipeline.StatusSummaryGenerating {
				continue
			}
			select {
			case out <- Event{
				Status:  string(pipeline.StatusSummaryGenerating),
				Message: "Generating summary",
				Data:    ev.Data,
			}:
			case <-ctx.Done():
				return
			}
		}

		select {
		case final := <-done:
			select {
			case out <- finalEvent(final):
			case <-ctx.Done():
			}
		case <-ctx.Done():
		}
	}()

	return out
}

func finalEvent(state *pipeline.State) Event {
	if state.Failed() {
		return Event{Status: string(pipeline.StatusError), Message: state.Error}
	}
	return Event{
		Status:  string(pipeline.StatusCompleted),
		Message: "Analysis complete",
		Data: map[string]any{
			"structured_data": state.StructuredData,
			"insights":        state.Insights,
		},
	}
}

// WriteSSE drains the event channel into w as server-sent events. A
// keep-alive comment goes out first so proxies open the connection
// before the first real frame. Frames that fail to serialize degrade to
// an error frame instead of breaking the stream.
func WriteSSE(ctx context.Context, w http.ResponseWriter, events <-chan Event) {
	flusher, _ := w.(http.Flusher)
	flush := func() {
		if flusher != nil {
			flusher.Flush()
		}
	}

	logger := zap.S().Named("streaming")

	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("stream writer panicked", "panic", r)
			fmt.Fprint(w, "data: {\"status\": \"error\", \"message\": \"Stream interrupted\"}\n\n")
			flush()
		}
	}()

	fmt.Fprint(w, ": ping\n\n")
	flush()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				logger.Errorw("failed to serialize stream event", "error", err)
				fmt.Fprint(w, "data: {\"status\": \"error\", \"message\": \"Error serializing response\"}\n\n")
				flush()
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flush()
		}
	}
}
