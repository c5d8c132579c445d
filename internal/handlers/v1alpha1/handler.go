// Package v1alpha1 exposes the analysis service over HTTP. The blocking
// endpoints speak JSON via go-chi/render; the streaming endpoints speak
// server-sent events through the streaming package.
package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	api "github.com/ayushvishnoipro/SkillzoAI-Assignment/api/v1alpha1"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/handlers/validator"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/service"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/pkg/requestid"
)

type ResumeHandler struct {
	service   *service.ResumeService
	validator *validator.Validator
}

func NewResumeHandler(srv *service.ResumeService) *ResumeHandler {
	v := validator.NewValidator()
	v.Register(validator.NotBlankRule())

	return &ResumeHandler{
		service:   srv,
		validator: v,
	}
}

// RegisterRoutes mounts the v1 API on the router.
func (h *ResumeHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", h.AnalyzeResume)
		r.Post("/analyze-stream", h.AnalyzeResumeStream)
		r.Get("/analyze-stream", h.AnalyzeResumeStreamGet)
		r.Post("/analyze-streaming-summary", h.AnalyzeResumeStreamingSummary)
		r.Post("/questions", h.GenerateQuestions)
	})
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
}

func respondError(w http.ResponseWriter, r *http.Request, code int, message string) {
	render.Status(r, code)
	render.JSON(w, r, api.Error{
		Message:   message,
		RequestID: requestid.FromContextPtr(r.Context()),
	})
}
