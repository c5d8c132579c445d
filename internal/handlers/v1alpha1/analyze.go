package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	api "github.com/ayushvishnoipro/SkillzoAI-Assignment/api/v1alpha1"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/service"
)

// (POST /api/v1/analyze)
func (h *ResumeHandler) AnalyzeResume(w http.ResponseWriter, r *http.Request) {
	logger := zap.S().Named("analyze_handler")

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

	result, err := h.service.Analyze(r.Context(), req.ResumeText)
	if err != nil {
		switch err.(type) {
		case *service.ErrAnalysisFailed:
			logger.Warnw("analysis failed", "error", err)
			respondError(w, r, http.StatusBadRequest, err.Error())
		default:
			logger.Errorw("analysis error", "error", err)
			respondError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	render.JSON(w, r, result)
}
