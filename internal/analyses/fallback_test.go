package analyses

import (
	"reflect"
	"testing"
)

const sampleResume = `John Doe
Email: john@example.com | Phone: 555-0100
Professional summary: seasoned backend engineer with a decade of experience building services.
Experience: Acme Corp, 2015-2025
Skills: Python, Docker, Kubernetes, PostgreSQL, Redis, Git, REST, SQL, HTML
Education: B.S. Computer Science`

func sectionByName(t *testing.T, result AnalysisResult, name string) Section {
	t.Helper()
	for _, s := range result.Sections {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("section %q not found in %+v", name, result.Sections)
	return Section{}
}

func TestFallbackContactScore(t *testing.T) {
	withBoth := FallbackAnalyze("email: a@b.c\nphone: 123", "")
	if got := sectionByName(t, withBoth, "Contact Information").Score; got != 90 {
		t.Fatalf("contact score with email+phone = %d, want 90", got)
	}

	missingPhone := FallbackAnalyze("email: a@b.c", "")
	if got := sectionByName(t, missingPhone, "Contact Information").Score; got != 70 {
		t.Fatalf("contact score without phone = %d, want 70", got)
	}
}

func TestFallbackSectionScores(t *testing.T) {
	result := FallbackAnalyze(sampleResume, "")

	cases := map[string]int{
		"Contact Information":  90,
		"Professional Summary": 85, // has a line over 50 chars
		"Experience":           80,
		"Skills":               85, // more than 5 vocabulary hits
		"Education":            80,
		"ATS Compatibility":    85, // more than 8 vocabulary hits
	}
	for name, want := range cases {
		if got := sectionByName(t, result, name).Score; got != want {
			t.Errorf("%s score = %d, want %d", name, got, want)
		}
	}
}

func TestFallbackScoreBands(t *testing.T) {
	inputs := []string{
		"",
		"short",
		sampleResume,
		"python docker kubernetes aws gcp azure react angular vue node express django flask leadership communication teamwork",
	}
	for _, input := range inputs {
		result := FallbackAnalyze(input, "requires python and docker")
		if result.OverallScore < 60 || result.OverallScore > 90 {
			t.Errorf("overallScore %d out of [60,90] for input %q", result.OverallScore, input)
		}
		if result.JobMatch == nil {
			t.Fatal("fallback should always set jobMatch")
		}
		if *result.JobMatch < 50 || *result.JobMatch > 90 {
			t.Errorf("jobMatch %d out of [50,90] for input %q", *result.JobMatch, input)
		}
	}
}

func TestFallbackDeterministic(t *testing.T) {
	a := FallbackAnalyze(sampleResume, "python docker role")
	b := FallbackAnalyze(sampleResume, "python docker role")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("fallback output should be identical for identical input")
	}
}

func TestFallbackKeywordMatchOrdering(t *testing.T) {
	resume := "I know python and docker."
	jd := "We need python experience."

	result := FallbackAnalyze(resume, jd)

	if len(result.KeywordMatches) < 2 {
		t.Fatalf("expected at least 2 keyword matches, got %+v", result.KeywordMatches)
	}
	first := result.KeywordMatches[0]
	if first.Keyword != "python" || !first.Found {
		t.Fatalf("first match should be the job-description keyword python found=true, got %+v", first)
	}
	var sawDocker bool
	for _, m := range result.KeywordMatches[1:] {
		if m.Keyword == "docker" {
			sawDocker = true
			if !m.Found {
				t.Fatal("resume-only keyword docker should be found=true")
			}
		}
	}
	if !sawDocker {
		t.Fatal("docker should be appended as a resume-only match")
	}
}

func TestFallbackKeywordMatchNotFound(t *testing.T) {
	result := FallbackAnalyze("I know docker.", "We need python.")

	var python KeywordMatch
	for _, m := range result.KeywordMatches {
		if m.Keyword == "python" {
			python = m
		}
	}
	if python.Keyword == "" {
		t.Fatal("job-description keyword python should be listed")
	}
	if python.Found {
		t.Fatal("python is absent from the resume and must be found=false")
	}
}

func TestFallbackNoJobDescription(t *testing.T) {
	result := FallbackAnalyze("python and docker here", "")
	for _, m := range result.KeywordMatches {
		if !m.Found {
			t.Fatalf("without a job description every match must be found=true, got %+v", m)
		}
	}
}

func TestExtractVocabularyKeywordsOrder(t *testing.T) {
	// matches come back in vocabulary order regardless of text order
	got := extractVocabularyKeywords("leadership before docker before python")
	want := []string{"python", "docker", "leadership"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("keywords = %v, want %v", got, want)
	}
}
