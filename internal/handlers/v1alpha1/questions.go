package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	api "github.com/ayushvishnoipro/SkillzoAI-Assignment/api/v1alpha1"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/service"
)

// (POST /api/v1/questions)
func (h *ResumeHandler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	logger := zap.S().Named("questions_handler")

	var req api.QuestionsRequest
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

	result, err := h.service.GenerateQuestions(r.Context(), req)
	if err != nil {
		switch err.(type) {
		case *service.ErrQuestionGenerationFailed:
			logger.Warnw("question generation failed", "error", err)
			respondError(w, r, http.StatusBadRequest, err.Error())
		default:
			logger.Errorw("question generation error", "error", err)
			respondError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	render.JSON(w, r, result)
}
