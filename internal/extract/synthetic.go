package extract

import (
	"path/filepath"
	"strings"
)

// MockDataMarker tags synthetic documents so downstream stages can refuse
// to run a full analysis on placeholder content.
const MockDataMarker = "[THIS IS MOCK RESUME DATA - NOT FROM USER UPLOAD]"

const imageNotResumeMessage = "Oops! We couldn't detect any resume content in this image. " +
	"Please try uploading a clearer image of your resume or a document file (.pdf, .docx) for the best results."

var resumeKeywords = []string{
	"resume", "cv", "curriculum", "vitae", "job", "career", "professional",
	"experience", "skills", "work", "employment", "developer", "engineer",
	"marketing", "sales", "design", "manager", "executive", "profile",
	"application", "hire", "position", "apply", "applicant", "candidate",
	"qualification", "portfolio", "bio", "background", "history",
}

// isResumeFilename reports whether the filename plausibly names a resume.
// Word-processor extensions always pass; anything else must contain one
// of the keyword substrings.
func isResumeFilename(fileName string) bool {
	lower := strings.ToLower(fileName)
	switch filepath.Ext(lower) {
	case ".pdf", ".doc", ".docx":
		return true
	}
	for _, kw := range resumeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// roleFor buckets a filename into one of the synthetic resume themes.
func roleFor(fileName string) string {
	lower := strings.ToLower(fileName)
	switch {
	case strings.Contains(lower, "developer") || strings.Contains(lower, "engineer") || strings.Contains(lower, "programming"):
		return "developer"
	case strings.Contains(lower, "marketing") || strings.Contains(lower, "sales"):
		return "marketing"
	case strings.Contains(lower, "design") || strings.Contains(lower, "creative"):
		return "design"
	case strings.Contains(lower, "manager") || strings.Contains(lower, "executive"):
		return "manager"
	default:
		return "default"
	}
}

func syntheticResume(fileName string) string {
	return MockDataMarker + "\n\n" + syntheticResumes[roleFor(fileName)]
}

var syntheticResumes = map[string]string{
	"developer": `ALEX CHEN
Senior Software Developer

CONTACT
Email: alex.chen@email.com
Phone: (555) 123-4567
LinkedIn: linkedin.com/in/alexchen
GitHub: github.com/alexchen

PROFESSIONAL SUMMARY
Experienced full-stack developer with 6+ years building scalable web applications using JavaScript, TypeScript, React, and Node.js in agile teams.

TECHNICAL SKILLS
Languages: JavaScript, TypeScript, Python, Java, SQL
Frontend: React, Angular, Vue, HTML, CSS, Webpack
Backend: Node.js, Express, Django, REST, GraphQL
Infrastructure: AWS, Docker, Kubernetes, CI/CD, Git
Databases: PostgreSQL, MongoDB, Redis, MySQL

EXPERIENCE
Senior Software Developer | TechCorp Inc. | 2021 - Present
- Led development of a customer-facing React application serving 2M monthly users
- Designed REST and GraphQL APIs backed by PostgreSQL and Redis caching
- Introduced CI/CD pipelines cutting deployment time from hours to minutes

Software Developer | StartupXYZ | 2018 - 2021
- Built microservices in Node.js deployed on AWS with Docker and Kubernetes
- Improved Jest test coverage from 40% to 85% across core services

EDUCATION
B.S. Computer Science, State University, 2018

CERTIFICATIONS
AWS Certified Solutions Architect`,

	"marketing": `JORDAN RIVERA
Digital Marketing Manager

CONTACT
Email: jordan.rivera@email.com
Phone: (555) 234-5678
LinkedIn: linkedin.com/in/jordanrivera

PROFESSIONAL SUMMARY
Results-driven marketing professional with 7 years of experience in digital campaigns, brand strategy, and growth marketing for B2B and B2C companies.

SKILLS
Digital Marketing, SEO, SEM, Content Strategy, Email Marketing, Social Media, Google Analytics, A/B Testing, Marketing Automation, CRM, Leadership, Communication, Project Management

EXPERIENCE
Digital Marketing Manager | GrowthBrand Co. | 2021 - Present
- Led a team of 5 marketers executing multi-channel campaigns with a $1.2M annual budget
- Increased organic traffic 140% year over year through SEO and content strategy
- Launched email nurture programs lifting conversion rates by 32%

Marketing Specialist | MediaWorks | 2017 - 2021
- Managed paid search and social campaigns across Google and Meta platforms
- Produced monthly performance reports and analytical dashboards for leadership

EDUCATION
B.A. Marketing, City University, 2017

CERTIFICATIONS
Google Analytics Certified, HubSpot Inbound Marketing`,

	"design": `SAM TAYLOR
Senior Product Designer

CONTACT
Email: sam.taylor@email.com
Phone: (555) 345-6789
Portfolio: samtaylor.design
LinkedIn: linkedin.com/in/samtaylor

PROFESSIONAL SUMMARY
Creative product designer with 8 years of experience crafting intuitive user experiences for web and mobile products, from research through polished visual design.

SKILLS
UX Design, UI Design, Figma, Sketch, Adobe Creative Suite, Prototyping, User Research, Design Systems, Wireframing, Accessibility, HTML, CSS, Collaboration, Creativity

EXPERIENCE
Senior Product Designer | AppStudio | 2020 - Present
- Own end-to-end design for a mobile product with 500K active users
- Built and maintain a cross-platform design system adopted by 4 product teams
- Run usability testing sessions and translate findings into design iterations

Product Designer | DesignHub | 2016 - 2020
- Designed responsive web experiences for enterprise clients
- Partnered with engineers to ship pixel-accurate implementations

EDUCATION
B.F.A. Graphic Design, Art Institute, 2016

AWARDS
Webby Honoree, Best Mobile UX, 2022`,

	"manager": `MORGAN LEE
Senior Operations Manager

CONTACT
Email: morgan.lee@email.com
Phone: (555) 456-7890
LinkedIn: linkedin.com/in/morganlee

PROFESSIONAL SUMMARY
Strategic operations leader with 10+ years of experience managing cross-functional teams, optimizing processes, and delivering measurable business outcomes.

SKILLS
Leadership, Project Management, Strategic Planning, Budget Management, Process Improvement, Team Building, Stakeholder Communication, Data Analysis, Agile, Time Management, Problem-Solving

EXPERIENCE
Senior Operations Manager | Enterprise Solutions Inc. | 2019 - Present
- Manage a 25-person operations organization across three departments
- Reduced operating costs 18% through process automation and vendor consolidation
- Led company-wide adoption of agile project management practices

Operations Manager | LogiCorp | 2014 - 2019
- Oversaw daily operations for a regional distribution business
- Built KPI dashboards improving on-time delivery from 87% to 96%

EDUCATION
M.B.A., Business School, 2014
B.S. Business Administration, State University, 2010

CERTIFICATIONS
PMP, Six Sigma Green Belt`,

	"default": `TAYLOR MORGAN
Professional

CONTACT
Email: taylor.morgan@email.com
Phone: (555) 567-8901
LinkedIn: linkedin.com/in/taylormorgan

PROFESSIONAL SUMMARY
Versatile professional with a strong record of delivering quality work, collaborating across teams, and adapting quickly to new challenges and responsibilities.

SKILLS
Communication, Teamwork, Problem-Solving, Analytical Thinking, Organization, Time Management, Initiative, Adaptability, Microsoft Office, Project Management

EXPERIENCE
Senior Associate | Professional Services Group | 2019 - Present
- Deliver client projects on schedule while coordinating across internal teams
- Recognized for consistently exceeding quarterly performance targets

Associate | Business Partners LLC | 2016 - 2019
- Supported project planning, reporting, and client communication
- Trained and mentored new team members

EDUCATION
B.A. Liberal Arts, State College, 2016`,
}
