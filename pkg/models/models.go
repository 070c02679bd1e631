package models

import "sort"

// SortJobsNewestFirst orders a job collection descending by creation
// time. ISO-8601 strings compare correctly as plain strings.
func SortJobsNewestFirst(jobs []Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].PostedDate > jobs[j].PostedDate
	})
}

// JobType classifies a posting
type JobType string

const (
	JobTypeEmprego       JobType = "emprego"
	JobTypeEstagio       JobType = "estagio"
	JobTypeJovemAprendiz JobType = "jovem-aprendiz"
	JobTypeCurso         JobType = "curso"
)

// ResumePreference is the per-job rule for what applicants must attach
type ResumePreference string

const (
	ResumeFileOnly ResumePreference = "file"
	ResumeTextOnly ResumePreference = "text"
	ResumeEither   ResumePreference = "both"
	ResumeNone     ResumePreference = "none"
)

// AcceptsFile reports whether the policy admits an uploaded resume
func (p ResumePreference) AcceptsFile() bool {
	return p == ResumeFileOnly || p == ResumeEither
}

// AcceptsText reports whether the policy admits a pasted resume
func (p ResumePreference) AcceptsText() bool {
	return p == ResumeTextOnly || p == ResumeEither
}

// ResumeFile is an uploaded resume descriptor
type ResumeFile struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content"` // base64
}

// Application is a candidate's submission against a job.
// ID and Date are assigned at submission and never change.
type Application struct {
	ID         string      `json:"id"`
	FullName   string      `json:"fullName"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	ResumeFile *ResumeFile `json:"resumeFile,omitempty"`
	ResumeText string      `json:"resumeText,omitempty"`
	Date       string      `json:"date"` // ISO-8601
}

// Requirements holds the free-text requirement fields of a job
type Requirements struct {
	Education  string `json:"education,omitempty"`
	Experience string `json:"experience,omitempty"`
	Profile    string `json:"profile,omitempty"`
}

// Job is a posted opportunity. ID and PostedDate are immutable after
// creation. Only the owning employer mutates a job, except candidates
// appending to Applications.
type Job struct {
	ID               string           `json:"id"`
	EmployerID       string           `json:"employerId"`
	JobType          JobType          `json:"jobType"`
	Title            string           `json:"title"`
	CompanyName      string           `json:"companyName,omitempty"`
	Area             string           `json:"area,omitempty"`
	Location         string           `json:"location"`
	Duration         string           `json:"duration,omitempty"`
	Salary           string           `json:"salary,omitempty"`
	Benefits         string           `json:"benefits,omitempty"`
	WorkHours        string           `json:"workHours,omitempty"`
	WorkSchedule     string           `json:"workSchedule,omitempty"`
	WorkScale        string           `json:"workScale,omitempty"`
	Requirements     Requirements     `json:"requirements"`
	Description      string           `json:"description,omitempty"`
	CourseContact    string           `json:"courseContact,omitempty"`
	PostedDate       string           `json:"postedDate"` // ISO-8601
	Applications     []Application    `json:"applications"`
	ResumePreference ResumePreference `json:"resumePreference"`
}

// Employer is a registered organization account
type Employer struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"` // empty when the remote backend manages credentials
}

// FeedbackKind classifies a feedback entry
type FeedbackKind string

const (
	FeedbackElogio   FeedbackKind = "elogio"
	FeedbackCritica  FeedbackKind = "critica"
	FeedbackDuvida   FeedbackKind = "duvida"
	FeedbackSugestao FeedbackKind = "sugestao"
)

// Feedback is a visitor comment, append-only
type Feedback struct {
	ID      string       `json:"id"`
	Author  string       `json:"author"`
	Kind    FeedbackKind `json:"kind"`
	Message string       `json:"message"`
	Date    string       `json:"date"` // ISO-8601
}

// NewsArticle is a static content item shown on the news page
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Source      string `json:"source"`
}

// Page identifies the view a consumer is currently rendering
type Page string

const (
	PageHome      Page = "home"
	PageEmployer  Page = "employer"
	PageNews      Page = "news"
	PageAbout     Page = "about"
	PageFeedback  Page = "feedback"
	PageEducation Page = "education"
)
