package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"

	api "github.com/ayushvishnoipro/SkillzoAI-Assignment/api/v1alpha1"
)

const (
	appName    = "Resume Analysis API"
	appVersion = "1.0.0"
)

// (GET /)
func (h *ResumeHandler) Root(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.Health{
		Status:  "ok",
		App:     appName,
		Version: appVersion,
	})
}

// (GET /health)
func (h *ResumeHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.Health{
		Status: "healthy",
	})
}
