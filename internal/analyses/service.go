package analyses

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"resumelens-backend/internal/cache"
	"resumelens-backend/internal/llm"
	"resumelens-backend/internal/shared/apperror"
	"resumelens-backend/internal/shared/metrics"
	"resumelens-backend/internal/shared/telemetry"
)

// Invalid-content markers emitted by the extraction heuristics. Scoring
// text carrying one of these is rejected before any inference call.
var invalidContentMarkers = []string{
	"does not appear to be a resume",
	"couldn't detect any resume content",
	"[THIS IS MOCK RESUME DATA",
}

var (
	pdfHeaderMarker = regexp.MustCompile(`\[PDF DOCUMENT: .+\]\s*`)
	pdfPageMarker   = regexp.MustCompile(`--- Page \d+ ---\s*`)
)

// Source records where an analysis result came from.
type Source string

const (
	SourceCache     Source = "cache"
	SourceInference Source = "inference"
	SourceFallback  Source = "fallback"
)

// Outcome pairs an analysis result with its provenance.
type Outcome struct {
	Result AnalysisResult
	Source Source
	// Stage is set for inference results and records the recovery
	// stage that produced the structured payload.
	Stage ParseStage
}

// Service runs the cache-fronted inference flow. It never substitutes
// the fallback analyzer itself; timeout handling belongs to the caller.
type Service struct {
	Cache *cache.Cache
	LLM   llm.Client
}

func NewService(c *cache.Cache, client llm.Client) *Service {
	return &Service{Cache: c, LLM: client}
}

// Analyze scores a resume. Flow: validate, strip extraction markers,
// check the fingerprint cache, call inference on a miss, recover and
// normalize the response, then cache the result best-effort.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (Outcome, error) {
	metrics.IncAnalysisStarted()
	started := time.Now()

	outcome, err := s.analyze(ctx, req)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Outcome{}, err
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Milliseconds()))
	return outcome, nil
}

func (s *Service) analyze(ctx context.Context, req AnalyzeRequest) (Outcome, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return Outcome{}, apperror.Validation("resume text is required")
	}
	if marker := matchInvalidContent(req.ResumeText); marker != "" {
		return Outcome{}, apperror.Validation("the supplied text is not analyzable resume content: " + marker)
	}

	text := CleanExtractionArtifacts(req.ResumeText)

	fp := cache.Fingerprint(text, req.JobTitle, req.JobDescription)

	if payload, ok := s.Cache.Lookup(ctx, fp); ok {
		var result AnalysisResult
		if err := json.Unmarshal(payload, &result); err == nil {
			return Outcome{Result: result, Source: SourceCache}, nil
		}
		telemetry.Warn("discarding undecodable cached analysis", map[string]any{
			"fingerprint": fp,
		})
	}

	content, err := s.LLM.AnalyzeResume(ctx, llm.AnalyzeInput{
		ResumeText:     text,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		return Outcome{}, err
	}

	parsed := RecoverResponse(content)
	result, err := NormalizeResult(parsed.Payload)
	if err != nil {
		return Outcome{}, err
	}

	if payload, err := json.Marshal(result); err == nil {
		s.Cache.Store(ctx, fp, payload, req.Owner)
	}

	return Outcome{Result: result, Source: SourceInference, Stage: parsed.Stage}, nil
}

// CleanExtractionArtifacts removes the synthetic headers the PDF
// extractor adds so they do not skew scoring.
func CleanExtractionArtifacts(text string) string {
	if !strings.Contains(text, "[PDF DOCUMENT:") {
		return text
	}
	text = pdfHeaderMarker.ReplaceAllString(text, "")
	return pdfPageMarker.ReplaceAllString(text, "")
}

func matchInvalidContent(text string) string {
	for _, marker := range invalidContentMarkers {
		if strings.Contains(text, marker) {
			return marker
		}
	}
	return ""
}
