// Package board holds the canonical in-memory state of the job board:
// the job and employer collections and the logged-in session. It is the
// only place these collections are mutated. One of two implementations
// is chosen at startup and never swapped mid-session: Local keeps state
// on the device through the durable snapshot store, Remote delegates
// every mutation to the remote collaborator and folds its notifications
// back into memory.
package board

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vagalivre/vagalivre/pkg/models"
)

// Sentinel errors crossing the core boundary
var (
	ErrNotLoggedIn        = errors.New("employer login required")
	ErrJobNotFound        = errors.New("job not found")
	ErrResumeFileRequired = errors.New("this job requires an uploaded resume")
	ErrResumeTextRequired = errors.New("this job requires a pasted resume")
	ErrResumeRequired     = errors.New("this job requires a resume, uploaded or pasted")
)

var validate = validator.New()

// Board is the consumer-facing state core. Read methods return copies;
// consumers never mutate the collections directly.
type Board interface {
	// Credential operations. Failures come back as false, never as a
	// panic or an error the consumer has to branch on.
	Login(ctx context.Context, email, password string) bool
	Logout(ctx context.Context)
	Register(ctx context.Context, companyName, email, password string) bool

	// Job and application mutations
	AddJob(ctx context.Context, input JobInput) error
	UpdateJob(ctx context.Context, jobID string, input JobInput) error
	DeleteJob(ctx context.Context, jobID string)
	AddApplication(ctx context.Context, jobID string, input ApplicationInput) error
	AddFeedback(ctx context.Context, input FeedbackInput) error

	// Read model
	Jobs() []models.Job
	Employers() []models.Employer
	Session() *models.Employer
	Feedbacks() []models.Feedback
	Page() models.Page
	SetPage(page models.Page)

	// Close cancels subscriptions and releases resources. Safe to call
	// more than once.
	Close() error
}

// Collaborator is the narrow contract the Remote board expects from the
// cloud backend. internal/remote provides the Redis-backed
// implementation; tests provide fakes.
type Collaborator interface {
	SignUp(ctx context.Context, companyName, email, password string) (*models.Employer, error)
	SignIn(ctx context.Context, email, password string) (*models.Employer, error)
	SignOut(ctx context.Context) error
	Employer(ctx context.Context, id string) (*models.Employer, error)
	WatchAuth(ctx context.Context) (<-chan *models.Employer, error)
	WatchJobs(ctx context.Context) (<-chan []models.Job, error)
	CreateJob(ctx context.Context, job models.Job) error
	UpdateJob(ctx context.Context, id string, job models.Job) error
	DeleteJob(ctx context.Context, id string) error
	AppendApplication(ctx context.Context, jobID string, application models.Application) error
	AppendFeedback(ctx context.Context, fb models.Feedback) error
	FetchFeedback(ctx context.Context) ([]models.Feedback, error)
}

// JobInput carries the mutable fields of a job, for both creation and
// edits. Identifier, owner, creation time, and applications are managed
// by the board, never by input.
type JobInput struct {
	JobType          models.JobType `validate:"required,oneof=emprego estagio jovem-aprendiz curso"`
	Title            string         `validate:"required"`
	CompanyName      string
	Area             string
	Location         string `validate:"required"`
	Duration         string
	Salary           string
	Benefits         string
	WorkHours        string
	WorkSchedule     string
	WorkScale        string
	Requirements     models.Requirements
	Description      string
	CourseContact    string
	ResumePreference models.ResumePreference `validate:"omitempty,oneof=file text both none"`
}

// ApplicationInput carries a candidate submission before the board
// stamps identifier and date
type ApplicationInput struct {
	FullName   string `validate:"required"`
	Email      string `validate:"required,email"`
	Phone      string `validate:"required"`
	ResumeFile *models.ResumeFile
	ResumeText string
}

// FeedbackInput carries a visitor comment
type FeedbackInput struct {
	Author  string              `validate:"required"`
	Kind    models.FeedbackKind `validate:"required,oneof=elogio critica duvida sugestao"`
	Message string              `validate:"required"`
}

// newJob builds a canonical job from input, owned by employerID.
// Identifier and creation time are assigned here, once.
func newJob(input JobInput, employerID string) models.Job {
	pref := input.ResumePreference
	if pref == "" {
		pref = models.ResumeFileOnly
	}
	return models.Job{
		ID:               uuid.NewString(),
		EmployerID:       employerID,
		JobType:          input.JobType,
		Title:            input.Title,
		CompanyName:      input.CompanyName,
		Area:             input.Area,
		Location:         input.Location,
		Duration:         input.Duration,
		Salary:           input.Salary,
		Benefits:         input.Benefits,
		WorkHours:        input.WorkHours,
		WorkSchedule:     input.WorkSchedule,
		WorkScale:        input.WorkScale,
		Requirements:     input.Requirements,
		Description:      input.Description,
		CourseContact:    input.CourseContact,
		PostedDate:       time.Now().UTC().Format(time.RFC3339),
		Applications:     []models.Application{},
		ResumePreference: pref,
	}
}

// applyJobInput replaces the mutable fields of job with input, leaving
// identifier, owner, creation time, and applications untouched
func applyJobInput(job *models.Job, input JobInput) {
	job.JobType = input.JobType
	job.Title = input.Title
	job.CompanyName = input.CompanyName
	job.Area = input.Area
	job.Location = input.Location
	job.Duration = input.Duration
	job.Salary = input.Salary
	job.Benefits = input.Benefits
	job.WorkHours = input.WorkHours
	job.WorkSchedule = input.WorkSchedule
	job.WorkScale = input.WorkScale
	job.Requirements = input.Requirements
	job.Description = input.Description
	job.CourseContact = input.CourseContact
	if input.ResumePreference != "" {
		job.ResumePreference = input.ResumePreference
	}
}

// newApplication validates input against the job's resume policy and
// stamps identifier and submission time
func newApplication(policy models.ResumePreference, input ApplicationInput) (models.Application, error) {
	if err := validate.Struct(input); err != nil {
		return models.Application{}, err
	}

	hasFile := input.ResumeFile != nil && input.ResumeFile.Content != ""
	hasText := strings.TrimSpace(input.ResumeText) != ""

	switch policy {
	case models.ResumeFileOnly:
		if !hasFile {
			return models.Application{}, ErrResumeFileRequired
		}
	case models.ResumeTextOnly:
		if !hasText {
			return models.Application{}, ErrResumeTextRequired
		}
	case models.ResumeEither:
		if !hasFile && !hasText {
			return models.Application{}, ErrResumeRequired
		}
	case models.ResumeNone:
		// nothing required
	}

	application := models.Application{
		ID:       uuid.NewString(),
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Date:     time.Now().UTC().Format(time.RFC3339),
	}
	if hasFile {
		f := *input.ResumeFile
		application.ResumeFile = &f
	}
	if hasText {
		application.ResumeText = input.ResumeText
	}
	return application, nil
}

// newFeedback validates and stamps a feedback entry
func newFeedback(input FeedbackInput) (models.Feedback, error) {
	if err := validate.Struct(input); err != nil {
		return models.Feedback{}, err
	}
	return models.Feedback{
		ID:      uuid.NewString(),
		Author:  input.Author,
		Kind:    input.Kind,
		Message: input.Message,
		Date:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// cloneJobs copies the collection deeply enough that callers cannot
// reach board-internal application state through the result
func cloneJobs(jobs []models.Job) []models.Job {
	out := make([]models.Job, len(jobs))
	copy(out, jobs)
	for i := range out {
		apps := make([]models.Application, len(out[i].Applications))
		copy(apps, out[i].Applications)
		for j := range apps {
			if apps[j].ResumeFile != nil {
				f := *apps[j].ResumeFile
				apps[j].ResumeFile = &f
			}
		}
		out[i].Applications = apps
	}
	return out
}

// FilterJobs is the home-page query: title or company substring match,
// location substring match, and job-type tab. Empty arguments match
// everything.
func FilterJobs(jobs []models.Job, search, location string, jobType models.JobType) []models.Job {
	search = strings.ToLower(strings.TrimSpace(search))
	location = strings.ToLower(strings.TrimSpace(location))

	matched := []models.Job{}
	for _, job := range jobs {
		if search != "" &&
			!strings.Contains(strings.ToLower(job.Title), search) &&
			!strings.Contains(strings.ToLower(job.CompanyName), search) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		if jobType != "" && job.JobType != jobType {
			continue
		}
		matched = append(matched, job)
	}
	return matched
}
