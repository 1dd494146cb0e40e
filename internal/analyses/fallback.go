package analyses

import (
	"fmt"
	"strings"
)

var technicalKeywords = []string{
	"javascript", "typescript", "python", "java", "c++", "ruby", "php",
	"react", "angular", "vue", "node", "express", "django", "flask",
	"aws", "azure", "gcp", "docker", "kubernetes", "ci/cd",
	"git", "agile", "scrum", "rest", "graphql", "sql", "nosql",
	"mongodb", "postgresql", "mysql", "redis", "html", "css",
	"webpack", "babel", "jest", "testing", "api",
}

var softSkills = []string{
	"leadership", "communication", "teamwork", "problem-solving",
	"analytical", "project management", "time management", "collaboration",
	"initiative", "adaptability", "creativity", "organization",
}

// extractVocabularyKeywords returns the vocabulary entries present in
// text, case-insensitively, in vocabulary order.
func extractVocabularyKeywords(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range technicalKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	for _, kw := range softSkills {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// FallbackAnalyze is the network-free scorer used when the inference path
// is unavailable. It is deterministic: identical input yields identical
// output, with overallScore in [60,90] and jobMatch in [50,90].
func FallbackAnalyze(resumeText, jobDescription string) AnalysisResult {
	lower := strings.ToLower(resumeText)
	found := extractVocabularyKeywords(resumeText)

	matches := keywordMatchList(found, jobDescription)

	contactScore := 70
	if strings.Contains(lower, "email") && strings.Contains(lower, "phone") {
		contactScore = 90
	}

	summaryScore := 65
	for _, line := range strings.Split(resumeText, "\n") {
		if len(line) > 50 {
			summaryScore = 85
			break
		}
	}

	experienceScore := 60
	if strings.Contains(lower, "experience") {
		experienceScore = 80
	}

	skillsScore := 65
	if len(found) > 5 {
		skillsScore = 85
	}

	educationScore := 60
	if strings.Contains(lower, "education") {
		educationScore = 80
	}

	atsScore := 70
	if len(found) > 8 {
		atsScore = 85
	}

	jobMatch := fallbackJobMatch(found, jobDescription)

	return AnalysisResult{
		OverallScore: fallbackOverallScore(found),
		JobMatch:     &jobMatch,
		Sections: []Section{
			{
				Name:         "Contact Information",
				Score:        contactScore,
				Feedback:     []string{"Contact information is present"},
				Improvements: []string{"Consider adding your LinkedIn profile"},
			},
			{
				Name:     "Professional Summary",
				Score:    summaryScore,
				Feedback: []string{"Summary section identified"},
				Improvements: []string{
					"Make it more achievement-oriented",
					"Include specific metrics or results",
				},
			},
			{
				Name:  "Experience",
				Score: experienceScore,
				Feedback: []string{
					"Work experience section present",
					"Includes job titles and companies",
				},
				Improvements: []string{
					"Add more quantifiable achievements",
					"Use more action verbs",
				},
			},
			{
				Name:     "Skills",
				Score:    skillsScore,
				Feedback: []string{fmt.Sprintf("Found %d relevant skills", len(found))},
				Improvements: []string{
					"Consider organizing skills by category",
					"Add more job-specific keywords",
				},
			},
			{
				Name:         "Education",
				Score:        educationScore,
				Feedback:     []string{"Education section identified"},
				Improvements: []string{"Add relevant coursework if applicable"},
			},
			{
				Name:     "ATS Compatibility",
				Score:    atsScore,
				Feedback: []string{"Resume contains relevant keywords"},
				Improvements: []string{
					"Ensure consistent formatting",
					"Use standard section headings",
				},
			},
		},
		KeywordMatches: matches,
	}
}

// keywordMatchList builds the keyword match listing. Job-description
// vocabulary hits come first, flagged against the resume; resume-only
// hits follow as found entries.
func keywordMatchList(foundInResume []string, jobDescription string) []KeywordMatch {
	matches := []KeywordMatch{}
	inResume := make(map[string]bool, len(foundInResume))
	for _, kw := range foundInResume {
		inResume[kw] = true
	}

	if strings.TrimSpace(jobDescription) != "" {
		jobKeywords := extractVocabularyKeywords(jobDescription)
		inJob := make(map[string]bool, len(jobKeywords))
		for _, kw := range jobKeywords {
			inJob[kw] = true
			matches = append(matches, KeywordMatch{Keyword: kw, Found: inResume[kw]})
		}
		for _, kw := range foundInResume {
			if !inJob[kw] {
				matches = append(matches, KeywordMatch{Keyword: kw, Found: true})
			}
		}
		return matches
	}

	for _, kw := range foundInResume {
		matches = append(matches, KeywordMatch{Keyword: kw, Found: true})
	}
	return matches
}

// fallbackOverallScore maps keyword density into [60,90].
func fallbackOverallScore(found []string) int {
	bonus := len(found) * 2
	if bonus > 30 {
		bonus = 30
	}
	return 60 + bonus
}

// fallbackJobMatch maps the job-description match ratio into [50,90].
// Without a job description the resume keyword density stands in.
func fallbackJobMatch(found []string, jobDescription string) int {
	if strings.TrimSpace(jobDescription) != "" {
		jobTotal, jobFound := 0, 0
		inResume := make(map[string]bool, len(found))
		for _, kw := range found {
			inResume[kw] = true
		}
		for _, kw := range extractVocabularyKeywords(jobDescription) {
			jobTotal++
			if inResume[kw] {
				jobFound++
			}
		}
		if jobTotal > 0 {
			return 50 + int(float64(jobFound)/float64(jobTotal)*40+0.5)
		}
	}
	bonus := len(found) * 2
	if bonus > 40 {
		bonus = 40
	}
	return 50 + bonus
}
