package board

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vagalivre/vagalivre/internal/durable"
	"github.com/vagalivre/vagalivre/pkg/models"
)

// Local is the offline board. Mutations apply to memory immediately and
// are then snapshotted to the durable store; a failed snapshot never
// fails the mutation.
type Local struct {
	mu     sync.RWMutex
	store  *durable.Store
	logger *slog.Logger

	jobs      []models.Job
	employers []models.Employer
	session   *models.Employer
	feedback  []models.Feedback
	page      models.Page
}

// NewLocal loads the last snapshots (or the seed dataset) and restores
// any persisted session
func NewLocal(store *durable.Store, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	jobs := store.LoadJobs()
	models.SortJobsNewestFirst(jobs)
	return &Local{
		store:     store,
		logger:    logger,
		jobs:      jobs,
		employers: store.LoadEmployers(),
		session:   store.LoadSession(),
		feedback:  store.LoadFeedback(),
		page:      models.PageHome,
	}
}

// Login matches email and password against the employer collection
func (l *Local) Login(ctx context.Context, email, password string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.employers {
		e := l.employers[i]
		if e.Email == email && e.Password == password {
			l.session = &e
			l.page = models.PageEmployer
			l.store.SaveSession(&e)
			return true
		}
	}
	return false
}

// Logout clears the session
func (l *Local) Logout(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.session = nil
	l.store.SaveSession(nil)
}

// Register creates a new employer account. A duplicate email fails and
// leaves the collection unchanged.
func (l *Local) Register(ctx context.Context, companyName, email, password string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.employers {
		if e.Email == email {
			return false
		}
	}
	employer := models.Employer{
		ID:          uuid.NewString(),
		CompanyName: companyName,
		Email:       email,
		Password:    password,
	}
	l.employers = append(l.employers, employer)
	l.session = &employer
	l.page = models.PageEmployer
	l.store.SaveEmployers(l.employers)
	l.store.SaveSession(&employer)
	return true
}

// AddJob creates a job owned by the logged-in employer and prepends it
// to the collection
func (l *Local) AddJob(ctx context.Context, input JobInput) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.session == nil {
		return ErrNotLoggedIn
	}
	if err := validate.Struct(input); err != nil {
		return err
	}
	job := newJob(input, l.session.ID)
	l.jobs = append([]models.Job{job}, l.jobs...)
	models.SortJobsNewestFirst(l.jobs)
	l.store.SaveJobs(l.jobs)
	return nil
}

// UpdateJob replaces the mutable fields of the matching job. Unknown
// ids are a no-op.
func (l *Local) UpdateJob(ctx context.Context, jobID string, input JobInput) error {
	if err := validate.Struct(input); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.jobs {
		if l.jobs[i].ID == jobID {
			applyJobInput(&l.jobs[i], input)
			l.store.SaveJobs(l.jobs)
			return nil
		}
	}
	return nil
}

// DeleteJob removes the matching job; repeated deletion is harmless
func (l *Local) DeleteJob(ctx context.Context, jobID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.jobs[:0]
	removed := false
	for _, job := range l.jobs {
		if job.ID == jobID {
			removed = true
			continue
		}
		kept = append(kept, job)
	}
	l.jobs = kept
	if removed {
		l.store.SaveJobs(l.jobs)
	}
}

// AddApplication appends a candidate submission to the target job,
// honoring the job's resume policy
func (l *Local) AddApplication(ctx context.Context, jobID string, input ApplicationInput) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.jobs {
		if l.jobs[i].ID != jobID {
			continue
		}
		application, err := newApplication(l.jobs[i].ResumePreference, input)
		if err != nil {
			return err
		}
		l.jobs[i].Applications = append(l.jobs[i].Applications, application)
		l.store.SaveJobs(l.jobs)
		return nil
	}
	return ErrJobNotFound
}

// AddFeedback appends a visitor comment
func (l *Local) AddFeedback(ctx context.Context, input FeedbackInput) error {
	fb, err := newFeedback(input)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.feedback = append(l.feedback, fb)
	l.store.SaveFeedback(l.feedback)
	return nil
}

// Jobs returns a copy of the job collection, newest first
func (l *Local) Jobs() []models.Job {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneJobs(l.jobs)
}

// Employers returns a copy of the employer collection
func (l *Local) Employers() []models.Employer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Employer, len(l.employers))
	copy(out, l.employers)
	return out
}

// Session returns the logged-in employer, or nil
func (l *Local) Session() *models.Employer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.session == nil {
		return nil
	}
	e := *l.session
	return &e
}

// Feedbacks returns a copy of the feedback list
func (l *Local) Feedbacks() []models.Feedback {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Feedback, len(l.feedback))
	copy(out, l.feedback)
	return out
}

// Page returns the current view
func (l *Local) Page() models.Page {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.page
}

// SetPage switches the current view
func (l *Local) SetPage(page models.Page) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.page = page
}

// Close is a no-op; the durable store is owned by the caller
func (l *Local) Close() error {
	return nil
}
