package analyses

import "strings"

// sectionKeywords maps canonical section names to the terms used to find
// supporting lines in the source text.
var sectionKeywords = map[string][]string{
	"Contact Information": {"phone", "email", "linkedin", "address", "website"},
	"Summary":             {"summary", "objective", "profile", "about"},
	"Experience":          {"experience", "work", "job", "position", "employment"},
	"Education":           {"education", "degree", "university", "college", "school", "gpa"},
	"Skills":              {"skills", "technologies", "tools", "languages", "frameworks"},
	"Projects":            {"project", "portfolio", "github"},
	"Certifications":      {"certification", "certificate", "license"},
	"Awards":              {"award", "honor", "recognition"},
}

var defaultSectionKeywords = []string{"experience", "skill", "education", "project"}

const improvementPunctuation = ".,/#!$%^&*;:{}=-_`~()"

// RelevantQuotes finds up to three source lines supporting a section's
// feedback. Matching is lexical overlap, not semantic.
func RelevantQuotes(sectionName string, improvements []string, resumeText string) []string {
	if strings.TrimSpace(resumeText) == "" {
		return []string{}
	}

	var lines []string
	for _, line := range strings.Split(resumeText, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	keywords, ok := sectionKeywords[sectionName]
	if !ok {
		keywords = defaultSectionKeywords
	}

	// Pass 1: lines mentioning any section keyword.
	var potential []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				potential = append(potential, line)
				break
			}
		}
	}

	// Pass 2: lines sharing significant terms with each improvement,
	// up to two per improvement.
	var quotes []string
	for _, improvement := range improvements {
		terms := improvementTerms(improvement)
		if len(terms) == 0 {
			continue
		}
		added := 0
		for _, line := range lines {
			if added == 2 {
				break
			}
			lower := strings.ToLower(line)
			for _, term := range terms {
				if strings.Contains(lower, term) {
					quotes = append(quotes, line)
					added++
					break
				}
			}
		}
	}

	// Top up from pass 1 when improvement matching came back thin.
	if len(quotes) < 2 {
		need := 2 - len(quotes)
		for _, line := range potential {
			if need == 0 {
				break
			}
			quotes = append(quotes, line)
			need--
		}
	}

	// Dedupe, cap at 3, trim.
	seen := make(map[string]bool, len(quotes))
	out := []string{}
	for _, q := range quotes {
		trimmed := strings.TrimSpace(q)
		if seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// improvementTerms extracts the lowercase words longer than four
// characters from an improvement suggestion, punctuation stripped.
func improvementTerms(improvement string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(improvementPunctuation, r) {
			return -1
		}
		return r
	}, strings.ToLower(improvement))

	var terms []string
	for _, word := range strings.Split(cleaned, " ") {
		if len(word) > 4 {
			terms = append(terms, word)
		}
	}
	return terms
}

// AttachQuotes links evidence quotes onto every section of a result.
func AttachQuotes(result *AnalysisResult, resumeText string) {
	for i := range result.Sections {
		result.Sections[i].Quotes = RelevantQuotes(result.Sections[i].Name, result.Sections[i].Improvements, resumeText)
	}
}
