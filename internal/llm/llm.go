// Package llm abstracts the inference provider used for resume scoring.
package llm

import "context"

// Client abstracts inference providers for resume analysis. The returned
// string is the model's raw completion content; callers own the work of
// recovering structured data from it.
type Client interface {
	AnalyzeResume(ctx context.Context, input AnalyzeInput) (string, error)
}

// AnalyzeInput captures the inputs needed for a scoring request.
type AnalyzeInput struct {
	ResumeText     string
	JobTitle       string
	JobDescription string
}
