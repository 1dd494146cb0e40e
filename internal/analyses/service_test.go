package analyses

import (
	"context"
	"strings"
	"sync"
	"testing"

	"resumelens-backend/internal/cache"
	"resumelens-backend/internal/llm"
	"resumelens-backend/internal/shared/apperror"
)

// stubLLM returns canned content and counts invocations.
type stubLLM struct {
	mu      sync.Mutex
	calls   int
	content string
	err     error
}

func (s *stubLLM) AnalyzeResume(ctx context.Context, input llm.AnalyzeInput) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

func (s *stubLLM) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestService(client llm.Client) (*Service, *cache.MemoryRepo) {
	repo := cache.NewMemoryRepo()
	return NewService(cache.New(repo), client), repo
}

func TestAnalyzeSuccessCachesResult(t *testing.T) {
	stub := &stubLLM{content: `{"overallScore": 82, "sections": [{"name": "Skills", "score": 80, "feedback": [], "improvements": []}], "keywordMatches": []}`}
	svc, repo := newTestService(stub)

	req := AnalyzeRequest{ResumeText: "John Doe\nSkills: Go", JobTitle: "Engineer"}

	out, err := svc.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if out.Source != SourceInference {
		t.Fatalf("source = %q, want inference", out.Source)
	}
	if out.Stage != StageDirect {
		t.Fatalf("stage = %q, want direct", out.Stage)
	}
	if out.Result.OverallScore != 82 {
		t.Fatalf("overallScore = %d", out.Result.OverallScore)
	}
	if repo.Len() != 1 {
		t.Fatalf("cache records = %d, want 1", repo.Len())
	}

	// Second identical request is served from the cache.
	out2, err := svc.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}
	if out2.Source != SourceCache {
		t.Fatalf("second source = %q, want cache", out2.Source)
	}
	if stub.callCount() != 1 {
		t.Fatalf("llm calls = %d, want 1", stub.callCount())
	}
	if out2.Result.OverallScore != out.Result.OverallScore {
		t.Fatal("cached result should round-trip unchanged")
	}
}

func TestAnalyzeRejectsEmptyText(t *testing.T) {
	svc, _ := newTestService(&stubLLM{})
	_, err := svc.Analyze(context.Background(), AnalyzeRequest{ResumeText: "   "})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("kind = %v, want validation_error", apperror.KindOf(err))
	}
}

func TestAnalyzeShortCircuitsInvalidMarkers(t *testing.T) {
	stub := &stubLLM{content: "{}"}
	svc, _ := newTestService(stub)

	texts := []string{
		`The uploaded document "x.bin" does not appear to be a resume. Please upload a resume document for analysis.`,
		"Oops! We couldn't detect any resume content in this image.",
		"[THIS IS MOCK RESUME DATA - NOT FROM USER UPLOAD]\n\nALEX CHEN",
	}
	for _, text := range texts {
		_, err := svc.Analyze(context.Background(), AnalyzeRequest{ResumeText: text})
		if !apperror.IsKind(err, apperror.KindValidation) {
			t.Fatalf("kind = %v for %q, want validation_error", apperror.KindOf(err), text[:30])
		}
	}
	if stub.callCount() != 0 {
		t.Fatalf("marker input must never reach inference, calls = %d", stub.callCount())
	}
}

func TestAnalyzePassesThroughUpstreamErrors(t *testing.T) {
	svc, _ := newTestService(&stubLLM{err: apperror.UpstreamTimeout("slow", nil)})
	_, err := svc.Analyze(context.Background(), AnalyzeRequest{ResumeText: "John Doe resume"})
	if !apperror.IsKind(err, apperror.KindUpstreamTimeout) {
		t.Fatalf("kind = %v, want upstream_timeout", apperror.KindOf(err))
	}
}

func TestCleanExtractionArtifacts(t *testing.T) {
	text := "[PDF DOCUMENT: resume.pdf - 2 pages]\n\n--- Page 1 ---\nJohn Doe\n\n--- Page 2 ---\nEducation\n\n"
	got := CleanExtractionArtifacts(text)
	if strings.Contains(got, "[PDF DOCUMENT") || strings.Contains(got, "--- Page") {
		t.Fatalf("markers not removed: %q", got)
	}
	if !strings.Contains(got, "John Doe") || !strings.Contains(got, "Education") {
		t.Fatalf("content lost: %q", got)
	}

	plain := "no markers here"
	if CleanExtractionArtifacts(plain) != plain {
		t.Fatal("text without markers should pass through unchanged")
	}
}

func TestConcurrentMissesBothWriteCache(t *testing.T) {
	stub := &stubLLM{content: `{"overallScore": 75, "sections": [], "keywordMatches": []}`}
	svc, repo := newTestService(stub)

	req := AnalyzeRequest{ResumeText: "John Doe\nconcurrent resume"}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Analyze(context.Background(), req)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
	}
	// No mutual exclusion: both requests may miss, call inference and
	// write their own record. Lookups take the first match either way.
	if repo.Len() < 1 || repo.Len() > 2 {
		t.Fatalf("cache records = %d, want 1 or 2", repo.Len())
	}
	if stub.callCount() < 1 || stub.callCount() > 2 {
		t.Fatalf("llm calls = %d", stub.callCount())
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	base := cache.Fingerprint("text", "title", "jd")
	if cache.Fingerprint("text", "title", "jd") != base {
		t.Fatal("fingerprint must be deterministic")
	}
	if cache.Fingerprint("text2", "title", "jd") == base {
		t.Fatal("text change must alter the fingerprint")
	}
	if cache.Fingerprint("text", "title2", "jd") == base {
		t.Fatal("job title change must alter the fingerprint")
	}
	if cache.Fingerprint("text", "title", "jd2") == base {
		t.Fatal("job description change must alter the fingerprint")
	}
	// field boundaries are delimited, not concatenated
	if cache.Fingerprint("textti", "tle", "jd") == base {
		t.Fatal("field boundary shift must alter the fingerprint")
	}
}
