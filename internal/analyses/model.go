// Package analyses orchestrates resume scoring: cache-fronted inference
// with staged response recovery, a deterministic heuristic fallback, and
// evidence linking back to the source text.
package analyses

// Section is one scored portion of the analysis.
type Section struct {
	Name         string   `json:"name"`
	Score        int      `json:"score"`
	Feedback     []string `json:"feedback"`
	Improvements []string `json:"improvements"`
	Quotes       []string `json:"quotes,omitempty"`
}

// KeywordMatch records whether a keyword appears in the resume.
type KeywordMatch struct {
	Keyword string `json:"keyword"`
	Found   bool   `json:"found"`
}

// AnalysisResult is the output contract shared by the inference path and
// the heuristic fallback. Sections is never empty after normalization.
type AnalysisResult struct {
	OverallScore   int            `json:"overallScore"`
	JobMatch       *int           `json:"jobMatch,omitempty"`
	Sections       []Section      `json:"sections"`
	KeywordMatches []KeywordMatch `json:"keywordMatches"`
	RawText        string         `json:"rawText,omitempty"`
}

// AnalyzeRequest is the JSON body of a scoring request.
type AnalyzeRequest struct {
	ResumeText     string `json:"resumeText" validate:"required"`
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
	Owner          string `json:"owner"`
}
