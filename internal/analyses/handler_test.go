package analyses

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resumelens-backend/internal/cache"
	"resumelens-backend/internal/shared/apperror"
)

func newTestRouter(client *stubLLM) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewService(cache.New(cache.NewMemoryRepo()), client)
	NewHandler(svc).Register(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerAnalyzeSuccess(t *testing.T) {
	stub := &stubLLM{content: `{"overallScore": 88, "sections": [{"name": "Skills", "score": 85, "feedback": ["ok"], "improvements": ["Add more job-specific keywords"]}], "keywordMatches": []}`}
	r := newTestRouter(stub)

	w := doJSON(t, r, "/api/v1/analyses", `{"resumeText": "John Doe\nSkills: Go, Docker", "jobTitle": "Engineer"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get(resultSourceHeader); got != string(SourceInference) {
		t.Fatalf("%s = %q, want inference", resultSourceHeader, got)
	}

	var result AnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.OverallScore != 88 {
		t.Fatalf("overallScore = %d", result.OverallScore)
	}
	// evidence linking runs on the response path
	if len(result.Sections[0].Quotes) == 0 {
		t.Fatal("sections should carry linked quotes")
	}
}

func TestHandlerAnalyzeFallsBackOnTimeout(t *testing.T) {
	stub := &stubLLM{err: apperror.UpstreamTimeout("inference timed out", nil)}
	r := newTestRouter(stub)

	w := doJSON(t, r, "/api/v1/analyses", `{"resumeText": "John Doe\nemail: a@b.c phone: 1\nexperience with python"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("timeout must fall back to heuristic scoring, got status %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get(resultSourceHeader); got != string(SourceFallback) {
		t.Fatalf("%s = %q, want fallback", resultSourceHeader, got)
	}

	var result AnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.OverallScore < 60 || result.OverallScore > 90 {
		t.Fatalf("fallback overallScore = %d", result.OverallScore)
	}
}

func TestHandlerAnalyzeUpstreamErrorSurfaces(t *testing.T) {
	stub := &stubLLM{err: apperror.Upstream("inference account has insufficient balance", nil)}
	r := newTestRouter(stub)

	w := doJSON(t, r, "/api/v1/analyses", `{"resumeText": "John Doe resume"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if !strings.Contains(w.Body.String(), "insufficient balance") {
		t.Fatalf("body should name the balance condition: %s", w.Body.String())
	}
}

func TestHandlerAnalyzeValidation(t *testing.T) {
	r := newTestRouter(&stubLLM{})

	w := doJSON(t, r, "/api/v1/analyses", `{"jobTitle": "Engineer"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, "/api/v1/analyses", `not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for malformed body", w.Code)
	}
}

func TestHandlerAnalyzeRejectsMarkerText(t *testing.T) {
	stub := &stubLLM{content: "{}"}
	r := newTestRouter(stub)

	w := doJSON(t, r, "/api/v1/analyses", `{"resumeText": "[THIS IS MOCK RESUME DATA - NOT FROM USER UPLOAD] x"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if stub.callCount() != 0 {
		t.Fatal("marker text must not reach inference")
	}
}

func TestHandlerFallbackEndpoint(t *testing.T) {
	r := newTestRouter(&stubLLM{})

	w := doJSON(t, r, "/api/v1/analyses/fallback", `{"resumeText": "email phone experience education python docker", "jobDescription": "python"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var result AnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.Sections) != 6 {
		t.Fatalf("fallback should return six sections, got %d", len(result.Sections))
	}
	if result.JobMatch == nil {
		t.Fatal("fallback should set jobMatch")
	}
}
