package deepseek

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resumelens-backend/internal/llm"
	"resumelens-backend/internal/shared/apperror"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient("test-key", srv.URL, "deepseek-chat", timeout)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, srv
}

func TestAnalyzeResumeSuccess(t *testing.T) {
	var gotBody chatRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": `{"overallScore": 80}`}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}, 5*time.Second)

	content, err := c.AnalyzeResume(context.Background(), llm.AnalyzeInput{
		ResumeText: "John Doe\nEngineer",
		JobTitle:   "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("AnalyzeResume: %v", err)
	}
	if content != `{"overallScore": 80}` {
		t.Fatalf("content = %q", content)
	}

	if gotBody.Model != "deepseek-chat" {
		t.Errorf("model = %q", gotBody.Model)
	}
	if gotBody.Temperature != 0.7 {
		t.Errorf("temperature = %v", gotBody.Temperature)
	}
	if gotBody.MaxTokens != 2000 {
		t.Errorf("max_tokens = %d", gotBody.MaxTokens)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[1].Content, "Backend Engineer") {
		t.Error("user prompt missing job title")
	}
}

func TestAnalyzeResumeInsufficientBalance(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Insufficient Balance"}}`))
	}, 5*time.Second)

	_, err := c.AnalyzeResume(context.Background(), llm.AnalyzeInput{ResumeText: "x"})
	if !apperror.IsKind(err, apperror.KindUpstream) {
		t.Fatalf("kind = %v, want upstream_error (err: %v)", apperror.KindOf(err), err)
	}
	if !strings.Contains(err.Error(), "insufficient balance") {
		t.Fatalf("error message should name the balance condition, got %v", err)
	}
}

func TestAnalyzeResumeGatewayTimeout(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}, 5*time.Second)

	_, err := c.AnalyzeResume(context.Background(), llm.AnalyzeInput{ResumeText: "x"})
	if !apperror.IsKind(err, apperror.KindUpstreamTimeout) {
		t.Fatalf("kind = %v, want upstream_timeout", apperror.KindOf(err))
	}
}

func TestAnalyzeResumeClientTimeout(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}, 50*time.Millisecond)

	_, err := c.AnalyzeResume(context.Background(), llm.AnalyzeInput{ResumeText: "x"})
	if !apperror.IsKind(err, apperror.KindUpstreamTimeout) {
		t.Fatalf("kind = %v, want upstream_timeout (err: %v)", apperror.KindOf(err), err)
	}
}

func TestAnalyzeResumeUpstreamStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}, 5*time.Second)

	_, err := c.AnalyzeResume(context.Background(), llm.AnalyzeInput{ResumeText: "x"})
	if !apperror.IsKind(err, apperror.KindUpstream) {
		t.Fatalf("kind = %v, want upstream_error", apperror.KindOf(err))
	}
}

func TestAnalyzeResumeMissingChoices(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}, 5*time.Second)

	if _, err := c.AnalyzeResume(context.Background(), llm.AnalyzeInput{ResumeText: "x"}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestBuildUserPromptDefaults(t *testing.T) {
	prompt := BuildUserPrompt("resume body", "", "")
	if !strings.Contains(prompt, "General Position") {
		t.Error("empty job title should default to General Position")
	}
	if strings.Contains(prompt, "The job description is as follows") {
		t.Error("prompt should omit the job description block when none is given")
	}

	withJD := BuildUserPrompt("resume body", "SRE", "keeps systems up")
	if !strings.Contains(withJD, "keeps systems up") {
		t.Error("prompt should embed the job description")
	}
}
