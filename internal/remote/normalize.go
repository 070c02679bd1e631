package remote

import (
	"encoding/json"
	"time"

	"github.com/vagalivre/vagalivre/pkg/models"
)

// RawJob is the wire shape of a job document. Records written by older
// clients carry the creation time as an ISO string in postedDate, newer
// ones as a server-assigned unix-millisecond handle in createdAt, and
// records built in process may hold a native time value. Normalize
// reconciles all three.
type RawJob struct {
	ID               string               `json:"id"`
	EmployerID       string               `json:"employerId"`
	JobType          string               `json:"jobType,omitempty"`
	Title            string               `json:"title"`
	CompanyName      string               `json:"companyName,omitempty"`
	Area             string               `json:"area,omitempty"`
	Location         string               `json:"location"`
	Duration         string               `json:"duration,omitempty"`
	Salary           string               `json:"salary,omitempty"`
	Benefits         string               `json:"benefits,omitempty"`
	WorkHours        string               `json:"workHours,omitempty"`
	WorkSchedule     string               `json:"workSchedule,omitempty"`
	WorkScale        string               `json:"workScale,omitempty"`
	Requirements     models.Requirements  `json:"requirements"`
	Description      string               `json:"description,omitempty"`
	CourseContact    string               `json:"courseContact,omitempty"`
	PostedDate       string               `json:"postedDate,omitempty"`
	CreatedAt        any                  `json:"createdAt,omitempty"`
	UpdatedAt        any                  `json:"updatedAt,omitempty"`
	Applications     []models.Application `json:"applications,omitempty"`
	ResumePreference string               `json:"resumePreference,omitempty"`
}

// Normalize maps a raw job document into the canonical Job shape.
// Normalizing an already-normalized record is a no-op.
func Normalize(raw RawJob) models.Job {
	job := models.Job{
		ID:               raw.ID,
		EmployerID:       raw.EmployerID,
		JobType:          models.JobType(raw.JobType),
		Title:            raw.Title,
		CompanyName:      raw.CompanyName,
		Area:             raw.Area,
		Location:         raw.Location,
		Duration:         raw.Duration,
		Salary:           raw.Salary,
		Benefits:         raw.Benefits,
		WorkHours:        raw.WorkHours,
		WorkSchedule:     raw.WorkSchedule,
		WorkScale:        raw.WorkScale,
		Requirements:     raw.Requirements,
		Description:      raw.Description,
		CourseContact:    raw.CourseContact,
		PostedDate:       raw.PostedDate,
		Applications:     raw.Applications,
		ResumePreference: models.ResumePreference(raw.ResumePreference),
	}

	if job.PostedDate == "" {
		job.PostedDate = resolveTimestamp(raw.CreatedAt)
	}
	if job.JobType == "" {
		job.JobType = models.JobTypeEmprego
	}
	if job.Applications == nil {
		job.Applications = []models.Application{}
	}
	if job.ResumePreference == "" {
		job.ResumePreference = models.ResumeFileOnly
	}
	return job
}

// resolveTimestamp reduces the possible creation-time encodings to a
// single ISO-8601 string. An unrecognized or absent value yields the
// current time.
func resolveTimestamp(v any) string {
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case int64:
		return time.UnixMilli(t).UTC().Format(time.RFC3339)
	case float64:
		return time.UnixMilli(int64(t)).UTC().Format(time.RFC3339)
	case json.Number:
		if ms, err := t.Int64(); err == nil {
			return time.UnixMilli(ms).UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// rawFromJob builds the wire shape for a canonical job. The creation
// time travels in createdAt as unix milliseconds so the server-assigned
// value survives round trips.
func rawFromJob(job models.Job) RawJob {
	return RawJob{
		ID:               job.ID,
		EmployerID:       job.EmployerID,
		JobType:          string(job.JobType),
		Title:            job.Title,
		CompanyName:      job.CompanyName,
		Area:             job.Area,
		Location:         job.Location,
		Duration:         job.Duration,
		Salary:           job.Salary,
		Benefits:         job.Benefits,
		WorkHours:        job.WorkHours,
		WorkSchedule:     job.WorkSchedule,
		WorkScale:        job.WorkScale,
		Requirements:     job.Requirements,
		Description:      job.Description,
		CourseContact:    job.CourseContact,
		PostedDate:       job.PostedDate,
		Applications:     job.Applications,
		ResumePreference: string(job.ResumePreference),
	}
}
