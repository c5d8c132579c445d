package v1alpha1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/ayushvishnoipro/SkillzoAI-Assignment/api/v1alpha1"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/checkpoint"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/service"
)

const structureResponse = `{"name": "Jane Roe", "work_experience": [], "education": [], "skills": []}`

const insightsResponse = `{
	"strengths": ["ships software"],
	"improvement_areas": [],
	"key_skills": ["Go"],
	"experience_summary": "Engineer.",
	"career_level": "Mid",
	"industry_fit": ["software"]
}`

const questionsResponse = `[
	{"question": "q1", "difficulty": "Easy", "category": "Technical"},
	{"question": "q2", "difficulty": "Medium", "category": "Technical"},
	{"question": "q3", "difficulty": "Hard", "category": "Technical"},
	{"question": "q4", "difficulty": "Medium", "category": "Behavioral"}
]`

// fakeGateway scripts responses by prompt fragment.
type fakeGateway struct {
	errs  map[string]error
	calls int
}

func (g *fakeGateway) respond(prompt string) (string, error) {
	g.calls++
	for fragment, err := range g.errs {
		if strings.Contains(prompt, fragment) {
			return "", err
		}
	}
	switch {
	case strings.Contains(prompt, "Extract structured information"):
		return structureResponse, nil
	case strings.Contains(prompt, "Extract detailed work experience"):
		return "[]", nil
	case strings.Contains(prompt, "Extract detailed education information"):
		return "[]", nil
	case strings.Contains(prompt, "Create a concise professional summary"):
		return "Jane Roe is an engineer.", nil
	case strings.Contains(prompt, "provide professional insights"):
		return insightsResponse, nil
	case strings.Contains(prompt, "interview questions"):
		return questionsResponse, nil
	}
	return "", errors.New("unexpected prompt")
}

func (g *fakeGateway) Complete(_ context.Context, prompt string) (string, error) {
	return g.respond(prompt)
}

func (g *fakeGateway) CompleteStream(_ context.Context, prompt string, fn func(string) error) (string, error) {
	response, err := g.respond(prompt)
	if err != nil {
		return "", err
	}
	if fn != nil {
		if err := fn(response); err != nil {
			return "", err
		}
	}
	return response, nil
}

func newTestRouter(t *testing.T, gateway *fakeGateway) chi.Router {
	t.Helper()

	store, err := checkpoint.NewStore(t.TempDir())
	require.NoError(t, err)

	router := chi.NewRouter()
	NewResumeHandler(service.NewResumeService(gateway, store)).RegisterRoutes(router)
	return router
}

func TestRoot(t *testing.T) {
	router := newTestRouter(t, &fakeGateway{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var info api.Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "ok", info.Status)
	assert.Equal(t, "Resume Analysis API", info.App)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &fakeGateway{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var health api.Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
}

func TestAnalyzeResume(t *testing.T) {
	router := newTestRouter(t, &fakeGateway{})

	body := `{"resume_text": "Jane Roe\njane.roe@example.com\n\nEXPERIENCE\nEngineer at Acme"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.StructuredData)
	assert.Equal(t, "Jane Roe", resp.StructuredData.Name)
	assert.Equal(t, "Jane Roe is an engineer.", resp.StructuredData.Summary)
	require.NotNil(t, resp.Insights)
	assert.Equal(t, "Mid", resp.Insights.CareerLevel)
}

func TestAnalyzeResumeMissingText(t *testing.T) {
	router := newTestRouter(t, &fakeGateway{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeResumeBlankText(t *testing.T) {
	gateway := &fakeGateway{}
	router := newTestRouter(t, gateway)

	body := `{"resume_text": "   \n\t  "}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, gateway.calls, "whitespace-only input must be rejected before any model call")
}

func TestAnalyzeResumeGatewayFailure(t *testing.T) {
	gateway := &fakeGateway{errs: map[string]error{
		"Extract structured information": errors.New("rate limited"),
	}}
	router := newTestRouter(t, gateway)

	body := `{"resume_text": "Jane Roe, Engineer"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp api.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.Message, "failed to extract structured data")
}

func TestGenerateQuestions(t *testing.T) {
	router := newTestRouter(t, &fakeGateway{})

	body := `{"resume_text": "Jane Roe, Engineer", "num_questions": 3}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/questions", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.QuestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Questions, 3)
	assert.Contains(t, resp.Overview, "tailored to the candidate's background")
}

func TestGenerateQuestionsCountOutOfRange(t *testing.T) {
	router := newTestRouter(t, &fakeGateway{})

	body := `{"resume_text": "Jane Roe, Engineer", "num_questions": 20}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/questions", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeStreamGetRequiresResumeText(t *testing.T) {
	router := newTestRouter(t, &fakeGateway{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analyze-stream", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeStream(t *testing.T) {
	router := newTestRouter(t, &fakeGateway{})

	body := `{"resume_text": "Jane Roe, Engineer"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze-stream", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	streamed := rec.Body.String()
	require.True(t, strings.HasPrefix(streamed, ": ping\n\n"))
	assert.Contains(t, streamed, `"status":"started"`)
	assert.Contains(t, streamed, `"status":"completed"`)
	assert.Contains(t, streamed, "structured_data")
}

func TestAnalyzeStreamingSummary(t *testing.T) {
	router := newTestRouter(t, &fakeGateway{})

	body := `{"resume_text": "Jane Roe, Engineer"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze-streaming-summary", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	streamed := rec.Body.String()
	require.True(t, strings.HasPrefix(streamed, ": ping\n\n"))
	assert.Contains(t, streamed, `"status":"summary_generating"`)
	assert.Contains(t, streamed, "partial_summary")
	assert.Contains(t, streamed, `"status":"completed"`)
}
