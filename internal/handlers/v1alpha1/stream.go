package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	api "github.com/ayushvishnoipro/SkillzoAI-Assignment/api/v1alpha1"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/streaming"
)

func setSSEHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	// Proxies must not buffer progress frames.
	h.Set("X-Accel-Buffering", "no")
}

// (POST /api/v1/analyze-stream)
func (h *ResumeHandler) AnalyzeResumeStream(w http.ResponseWriter, r *http.Request) {
	logger := zap.S().Named("stream_handler")

	var req api.AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		logger.Warnw("failed to decode request body", "error", err)
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		logger.Warnw("request validation failed", "error", err)
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.streamAnalysis(w, r, req.ResumeText)
}

// (GET /api/v1/analyze-stream)
// The GET variant exists for browser EventSource, which cannot send a
// body; the resume text travels as a query parameter.
func (h *ResumeHandler) AnalyzeResumeStreamGet(w http.ResponseWriter, r *http.Request) {
	resumeText := r.URL.Query().Get("resume_text")
	if resumeText == "" {
		respondError(w, r, http.StatusBadRequest, "resume_text query parameter is required")
		return
	}

	h.streamAnalysis(w, r, resumeText)
}

func (h *ResumeHandler) streamAnalysis(w http.ResponseWriter, r *http.Request, resumeText string) {
	events := h.service.AnalyzeStream(r.Context(), resumeText)

	setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	streaming.WriteSSE(r.Context(), w, events)
}

// (POST /api/v1/analyze-streaming-summary)
func (h *ResumeHandler) AnalyzeResumeStreamingSummary(w http.ResponseWriter, r *http.Request) {
	logger := zap.S().Named("stream_handler")

	var req api.AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		logger.Warnw("failed to decode request body", "error", err)
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		logger.Warnw("request validation failed", "error", err)
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	events := h.service.AnalyzeSummaryStream(r.Context(), req.ResumeText)

	setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	streaming.WriteSSE(r.Context(), w, events)
}
