package deepseek

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are an expert resume analyst and career coach. Analyze the resume and provide detailed feedback. " +
	"ONLY use the information provided in the resume text. If the text indicates it was extracted from an image " +
	"(contains \"[Image Analysis:\" tag), pay special attention to the formatting and structure. " +
	"Do NOT reference or assume information from external sources like LinkedIn or other profiles. " +
	"Only analyze what is explicitly stated in the resume text."

// BuildUserPrompt renders the scoring request for one resume. The model
// is instructed to answer with exactly one JSON object in the analysis
// result schema.
func BuildUserPrompt(resumeText, jobTitle, jobDescription string) string {
	var b strings.Builder

	role := strings.TrimSpace(jobTitle)
	if role == "" {
		role = "General Position"
	}
	fmt.Fprintf(&b, "I need you to analyze the following resume for a %s role.\n\n", role)

	if strings.TrimSpace(jobDescription) != "" {
		fmt.Fprintf(&b, "The job description is as follows:\n%s\n\n", jobDescription)
	}

	fmt.Fprintf(&b, "The resume text is as follows:\n%s\n\n", resumeText)

	b.WriteString(`Please provide a comprehensive analysis of this resume with the following:

1. Overall score (0-100)
2. Job match score (0-100) if a job description is provided
3. Section-by-section analysis with scores and feedback for each major section (e.g., Contact Information, Summary, Experience, Education, Skills, etc.)
4. Specific improvements for each section
5. Keyword matches if a job description is provided

Format your response as a JSON object with the following structure:
{
  "overallScore": number,
  "jobMatch": number,
  "sections": [
    {
      "name": string,
      "score": number,
      "feedback": string[],
      "improvements": string[]
    }
  ],
  "keywordMatches": [
    {
      "keyword": string,
      "found": boolean
    }
  ]
}

IMPORTANT INSTRUCTIONS:
1. Base your analysis ONLY on the resume text provided above.
2. Do NOT reference or assume information from external sources like LinkedIn or other profiles.
3. Do NOT use any default or template resume data.
4. Only analyze what is explicitly stated in the resume text provided.
5. If the resume appears to be invalid or not a proper resume, indicate this in your analysis.
6. If the resume text is from a PDF, focus on the actual content and ignore any formatting artifacts.
7. Provide specific, actionable feedback that will help improve the resume.

Return ONLY the JSON object with no additional text.`)

	return b.String()
}
