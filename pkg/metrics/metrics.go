package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	resumeAnalyzer = "resume_analyzer"

	pipelineRunsTotal     = "pipeline_runs_total"
	stageDurationSeconds  = "pipeline_stage_duration_seconds"
	gatewayRequestsTotal  = "llm_gateway_requests_total"
	checkpointWritesTotal = "checkpoint_writes_total"

	workflowLabel = "workflow"
	outcomeLabel  = "outcome"
	stageLabel    = "stage"
	resultLabel   = "result"
)

/**
* Metrics definition
**/
var pipelineRunsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: resumeAnalyzer,
		Name:      pipelineRunsTotal,
		Help:      "number of pipeline runs partitioned by workflow and outcome",
	},
	[]string{workflowLabel, outcomeLabel},
)

var stageDurationMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: resumeAnalyzer,
		Name:      stageDurationSeconds,
		Help:      "time spent in each pipeline stage",
		Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60},
	},
	[]string{workflowLabel, stageLabel},
)

var gatewayRequestsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: resumeAnalyzer,
		Name:      gatewayRequestsTotal,
		Help:      "number of text-completion gateway calls partitioned by result",
	},
	[]string{resultLabel},
)

var checkpointWritesTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: resumeAnalyzer,
		Name:      checkpointWritesTotal,
		Help:      "number of checkpoint writes partitioned by result",
	},
	[]string{resultLabel},
)

func IncreasePipelineRuns(workflow, outcome string) {
	pipelineRunsTotalMetric.With(prometheus.Labels{workflowLabel: workflow, outcomeLabel: outcome}).Inc()
}

func ObserveStageDuration(workflow, stage string, d time.Duration) {
	stageDurationMetric.With(prometheus.Labels{workflowLabel: workflow, stageLabel: stage}).Observe(d.Seconds())
}

func IncreaseGatewayRequests(result string) {
	gatewayRequestsTotalMetric.With(prometheus.Labels{resultLabel: result}).Inc()
}

func IncreaseCheckpointWrites(result string) {
	checkpointWritesTotalMetric.With(prometheus.Labels{resultLabel: result}).Inc()
}

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(pipelineRunsTotalMetric)
	prometheus.MustRegister(stageDurationMetric)
	prometheus.MustRegister(gatewayRequestsTotalMetric)
	prometheus.MustRegister(checkpointWritesTotalMetric)
}
