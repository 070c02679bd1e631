package board

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vagalivre/vagalivre/pkg/models"
)

// Remote is the cloud-backed board. Every mutation is delegated to the
// collaborator; the in-memory job collection changes only when the
// subscription delivers the authoritative collection, never through a
// local echo of a delegated action. Update, delete, and application
// failures are logged and absorbed; creation failures reach the caller
// because an employer must know a post did not go live.
type Remote struct {
	mu     sync.RWMutex
	collab Collaborator
	logger *slog.Logger

	jobs     []models.Job
	session  *models.Employer
	feedback []models.Feedback
	page     models.Page

	cancel context.CancelFunc
	done   sync.WaitGroup
	once   sync.Once
}

// NewRemote wires the board to the collaborator and starts the job and
// auth subscriptions. Both are cancelled by Close.
func NewRemote(collab Collaborator, logger *slog.Logger) (*Remote, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())

	jobCh, err := collab.WatchJobs(ctx)
	if err != nil {
		cancel()
		return nil, err
	}
	authCh, err := collab.WatchAuth(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	r := &Remote{
		collab:   collab,
		logger:   logger,
		jobs:     []models.Job{},
		feedback: []models.Feedback{},
		page:     models.PageHome,
		cancel:   cancel,
	}

	if entries, err := collab.FetchFeedback(ctx); err == nil {
		r.feedback = entries
	} else {
		logger.Warn("feedback fetch failed", "error", err)
	}

	r.done.Add(2)
	go r.consumeJobs(jobCh)
	go r.consumeAuth(authCh)
	return r, nil
}

// consumeJobs folds each notification into the canonical collection.
// The collaborator delivers the full collection already normalized and
// newest-first.
func (r *Remote) consumeJobs(ch <-chan []models.Job) {
	defer r.done.Done()
	for jobs := range ch {
		r.mu.Lock()
		r.jobs = jobs
		r.mu.Unlock()
	}
}

// consumeAuth tracks the authenticated identity; nil means the backend
// reports no active user, which clears the session
func (r *Remote) consumeAuth(ch <-chan *models.Employer) {
	defer r.done.Done()
	for employer := range ch {
		r.mu.Lock()
		r.session = employer
		r.mu.Unlock()
	}
}

// Login delegates credential verification to the collaborator
func (r *Remote) Login(ctx context.Context, email, password string) bool {
	employer, err := r.collab.SignIn(ctx, email, password)
	if err != nil {
		r.logger.Debug("sign-in rejected", "error", err)
		return false
	}
	r.mu.Lock()
	r.session = employer
	r.page = models.PageEmployer
	r.mu.Unlock()
	return true
}

// Logout clears the session; the remote sign-out is best effort
func (r *Remote) Logout(ctx context.Context) {
	if err := r.collab.SignOut(ctx); err != nil {
		r.logger.Warn("remote sign-out failed", "error", err)
	}
	r.mu.Lock()
	r.session = nil
	r.mu.Unlock()
}

// Register delegates account creation; the collaborator enforces email
// uniqueness, and any failure yields false
func (r *Remote) Register(ctx context.Context, companyName, email, password string) bool {
	employer, err := r.collab.SignUp(ctx, companyName, email, password)
	if err != nil {
		r.logger.Debug("sign-up rejected", "error", err)
		return false
	}
	r.mu.Lock()
	r.session = employer
	r.page = models.PageEmployer
	r.mu.Unlock()
	return true
}

// AddJob delegates creation. The in-memory collection is not touched
// here; it changes when the subscription echoes the new record back.
func (r *Remote) AddJob(ctx context.Context, input JobInput) error {
	r.mu.RLock()
	session := r.session
	r.mu.RUnlock()
	if session == nil {
		return ErrNotLoggedIn
	}
	if err := validate.Struct(input); err != nil {
		return err
	}
	return r.collab.CreateJob(ctx, newJob(input, session.ID))
}

// UpdateJob delegates the edit; remote failures are absorbed
func (r *Remote) UpdateJob(ctx context.Context, jobID string, input JobInput) error {
	if err := validate.Struct(input); err != nil {
		return err
	}
	r.mu.RLock()
	var existing *models.Job
	for i := range r.jobs {
		if r.jobs[i].ID == jobID {
			j := r.jobs[i]
			existing = &j
			break
		}
	}
	r.mu.RUnlock()
	if existing == nil {
		return nil
	}
	applyJobInput(existing, input)
	if err := r.collab.UpdateJob(ctx, jobID, *existing); err != nil {
		r.logger.Warn("remote job update failed", "jobId", jobID, "error", err)
	}
	return nil
}

// DeleteJob delegates the removal; remote failures are absorbed
func (r *Remote) DeleteJob(ctx context.Context, jobID string) {
	if err := r.collab.DeleteJob(ctx, jobID); err != nil {
		r.logger.Warn("remote job delete failed", "jobId", jobID, "error", err)
	}
}

// AddApplication validates against the job's resume policy and
// delegates the append; remote failures are absorbed
func (r *Remote) AddApplication(ctx context.Context, jobID string, input ApplicationInput) error {
	r.mu.RLock()
	var policy models.ResumePreference
	found := false
	for i := range r.jobs {
		if r.jobs[i].ID == jobID {
			policy = r.jobs[i].ResumePreference
			found = true
			break
		}
	}
	r.mu.RUnlock()
	if !found {
		return ErrJobNotFound
	}
	application, err := newApplication(policy, input)
	if err != nil {
		return err
	}
	if err := r.collab.AppendApplication(ctx, jobID, application); err != nil {
		r.logger.Warn("remote application append failed", "jobId", jobID, "error", err)
	}
	return nil
}

// AddFeedback delegates the append and refreshes the cached list
func (r *Remote) AddFeedback(ctx context.Context, input FeedbackInput) error {
	fb, err := newFeedback(input)
	if err != nil {
		return err
	}
	if err := r.collab.AppendFeedback(ctx, fb); err != nil {
		r.logger.Warn("remote feedback append failed", "error", err)
		return nil
	}
	if entries, err := r.collab.FetchFeedback(ctx); err == nil {
		r.mu.Lock()
		r.feedback = entries
		r.mu.Unlock()
	}
	return nil
}

// Jobs returns a copy of the job collection, newest first
func (r *Remote) Jobs() []models.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneJobs(r.jobs)
}

// Employers returns the employer records known in remote mode, which is
// just the logged-in one; the collaborator owns the full collection
func (r *Remote) Employers() []models.Employer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.session == nil {
		return []models.Employer{}
	}
	return []models.Employer{*r.session}
}

// Session returns the logged-in employer, or nil
func (r *Remote) Session() *models.Employer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.session == nil {
		return nil
	}
	e := *r.session
	return &e
}

// Feedbacks returns a copy of the cached feedback list
func (r *Remote) Feedbacks() []models.Feedback {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Feedback, len(r.feedback))
	copy(out, r.feedback)
	return out
}

// Page returns the current view
func (r *Remote) Page() models.Page {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.page
}

// SetPage switches the current view
func (r *Remote) SetPage(page models.Page) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.page = page
}

// Close cancels both subscriptions and waits for their consumers to
// drain. Safe to call more than once.
func (r *Remote) Close() error {
	r.once.Do(func() {
		r.cancel()
		r.done.Wait()
	})
	return nil
}
