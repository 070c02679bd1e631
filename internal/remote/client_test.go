package remote

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/vagalivre/vagalivre/internal/config"
	"github.com/vagalivre/vagalivre/pkg/models"
)

// newTestClient connects a client to a throwaway in-process backend
func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	cfg := &config.Config{}
	cfg.Remote.URL = "redis://" + mr.Addr()
	cfg.Remote.PollInterval = 50 * time.Millisecond

	c, err := New(context.Background(), cfg, slog.Default())
	if err != nil {
		t.Fatalf("failed to connect test backend: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, mr
}

// receiveJobs reads one delivery from a job watch, failing on timeout
func receiveJobs(t *testing.T, ch <-chan []models.Job) []models.Job {
	t.Helper()
	select {
	case jobs, ok := <-ch:
		if !ok {
			t.Fatal("watch channel closed early")
		}
		return jobs
	case <-time.After(2 * time.Second):
		t.Fatal("no delivery in time")
	}
	return nil
}

// receiveAuth reads one delivery from an auth watch, failing on timeout
func receiveAuth(t *testing.T, ch <-chan *models.Employer) *models.Employer {
	t.Helper()
	select {
	case employer, ok := <-ch:
		if !ok {
			t.Fatal("watch channel closed early")
		}
		return employer
	case <-time.After(2 * time.Second):
		t.Fatal("no delivery in time")
	}
	return nil
}

func TestSignUpAndSignIn(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	employer, err := c.SignUp(ctx, "Tech Solutions", "RH@TechSolutions.com", "secret123")
	if err != nil {
		t.Fatalf("failed to sign up: %v", err)
	}
	if employer.ID == "" || employer.CompanyName != "Tech Solutions" {
		t.Errorf("employer = %+v, expected a stamped record", employer)
	}
	if employer.Email != "rh@techsolutions.com" {
		t.Errorf("email = %q, expected it lowercased", employer.Email)
	}

	if _, err := c.SignUp(ctx, "Other", "rh@techsolutions.com", "different"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate sign-up = %v, expected ErrEmailTaken", err)
	}

	signedIn, err := c.SignIn(ctx, "rh@techsolutions.com", "secret123")
	if err != nil {
		t.Fatalf("failed to sign in: %v", err)
	}
	if signedIn.ID != employer.ID {
		t.Errorf("signed-in id = %q, expected %q", signedIn.ID, employer.ID)
	}

	if _, err := c.SignIn(ctx, "rh@techsolutions.com", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("bad password = %v, expected ErrBadCredentials", err)
	}
	if _, err := c.SignIn(ctx, "nobody@x.com", "secret123"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("unknown email = %v, expected ErrBadCredentials", err)
	}

	looked, err := c.Employer(ctx, employer.ID)
	if err != nil || looked.CompanyName != "Tech Solutions" {
		t.Errorf("lookup = %+v, %v; expected the stored record", looked, err)
	}
	if _, err := c.Employer(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id = %v, expected ErrNotFound", err)
	}
}

func TestCreateAndFetchJobs(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	mr.SetTime(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	if err := c.CreateJob(ctx, models.Job{ID: "job-a", Title: "Dev", Location: "SP"}); err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	mr.SetTime(time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))
	if err := c.CreateJob(ctx, models.Job{ID: "job-b", Title: "Analista", Location: "RJ"}); err != nil {
		t.Fatalf("failed to create job: %v", err)
	}

	jobs, err := c.FetchJobs(ctx)
	if err != nil {
		t.Fatalf("failed to fetch jobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("fetched %d jobs, expected 2", len(jobs))
	}
	if jobs[0].ID != "job-b" || jobs[1].ID != "job-a" {
		t.Errorf("order = %s, %s; expected newest first", jobs[0].ID, jobs[1].ID)
	}
	// Fetched records come back normalized
	if jobs[0].JobType != models.JobTypeEmprego {
		t.Errorf("jobType = %q, expected the emprego default", jobs[0].JobType)
	}
	if jobs[0].Applications == nil {
		t.Error("applications should be an empty collection, not nil")
	}
	if jobs[0].ResumePreference != models.ResumeFileOnly {
		t.Errorf("resumePreference = %q, expected the file default", jobs[0].ResumePreference)
	}
	if jobs[0].PostedDate != "2025-06-02T12:00:00Z" {
		t.Errorf("postedDate = %q, expected the server-assigned time", jobs[0].PostedDate)
	}
}

func TestUpdateJobPreservesStoredFields(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	mr.SetTime(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	if err := c.CreateJob(ctx, models.Job{ID: "job-a", EmployerID: "e1", Title: "Dev", Location: "SP"}); err != nil {
		t.Fatalf("failed to create job: %v", err)
	}

	mr.SetTime(time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC))
	err := c.UpdateJob(ctx, "job-a", models.Job{
		ID: "spoofed", EmployerID: "intruder", Title: "Senior Dev", Location: "SP",
	})
	if err != nil {
		t.Fatalf("failed to update job: %v", err)
	}

	jobs, err := c.FetchJobs(ctx)
	if err != nil || len(jobs) != 1 {
		t.Fatalf("fetch after update = %v, %v", jobs, err)
	}
	if jobs[0].Title != "Senior Dev" {
		t.Errorf("title = %q, mutable field not replaced", jobs[0].Title)
	}
	if jobs[0].ID != "job-a" || jobs[0].EmployerID != "e1" {
		t.Errorf("identity = %s/%s, stored fields must survive an update", jobs[0].ID, jobs[0].EmployerID)
	}
	if jobs[0].PostedDate != "2025-06-01T12:00:00Z" {
		t.Errorf("postedDate = %q, creation time must survive an update", jobs[0].PostedDate)
	}
}

func TestUpdateMissingJobPublishesNothing(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	listener := c.rdb.Subscribe(ctx, jobsChannel)
	defer listener.Close()
	if _, err := listener.Receive(ctx); err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	if err := c.UpdateJob(ctx, "missing", models.Job{Title: "X", Location: "Y"}); err != nil {
		t.Fatalf("update of unknown id should be a no-op, got %v", err)
	}
	// Publishes from one connection arrive in order, so a marker sent
	// after the no-op must be the first message seen
	c.announce(ctx, "marker", "sentinel")

	select {
	case msg := <-listener.Channel():
		if msg.Payload != "marker:sentinel" {
			t.Errorf("first message = %q, the no-op update published a change notice", msg.Payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("marker never arrived")
	}
}

func TestAppendApplication(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	if err := c.CreateJob(ctx, models.Job{ID: "job-a", Title: "Dev", Location: "SP"}); err != nil {
		t.Fatalf("failed to create job: %v", err)
	}

	application := models.Application{ID: "a1", FullName: "Ana", Email: "ana@x.com", Phone: "11", ResumeText: "cv"}
	if err := c.AppendApplication(ctx, "job-a", application); err != nil {
		t.Fatalf("failed to append application: %v", err)
	}

	jobs, err := c.FetchJobs(ctx)
	if err != nil || len(jobs) != 1 {
		t.Fatalf("fetch = %v, %v", jobs, err)
	}
	if len(jobs[0].Applications) != 1 || jobs[0].Applications[0].FullName != "Ana" {
		t.Errorf("applications = %+v, expected the appended record", jobs[0].Applications)
	}

	if err := c.AppendApplication(ctx, "missing", application); !errors.Is(err, ErrNotFound) {
		t.Errorf("append to unknown job = %v, expected ErrNotFound", err)
	}
}

func TestDeleteJob(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	if err := c.CreateJob(ctx, models.Job{ID: "job-a", Title: "Dev", Location: "SP"}); err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	if err := c.DeleteJob(ctx, "job-a"); err != nil {
		t.Fatalf("failed to delete job: %v", err)
	}
	if jobs, _ := c.FetchJobs(ctx); len(jobs) != 0 {
		t.Errorf("fetched %d jobs after delete, expected none", len(jobs))
	}
	if err := c.DeleteJob(ctx, "job-a"); err != nil {
		t.Errorf("repeated delete should be harmless, got %v", err)
	}
}

func TestFeedbackRoundTrip(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	fb := models.Feedback{ID: "f1", Author: "Ana", Kind: models.FeedbackElogio, Message: "Muito útil", Date: "2025-06-01T12:00:00Z"}
	if err := c.AppendFeedback(ctx, fb); err != nil {
		t.Fatalf("failed to append feedback: %v", err)
	}
	entries, err := c.FetchFeedback(ctx)
	if err != nil || len(entries) != 1 || entries[0].Message != "Muito útil" {
		t.Errorf("feedback = %+v, %v; expected the stored entry", entries, err)
	}
}

func TestWatchJobsSingleWatch(t *testing.T) {
	c, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := c.WatchJobs(ctx)
	if err != nil {
		t.Fatalf("failed to start watch: %v", err)
	}
	if _, err := c.WatchJobs(ctx); !errors.Is(err, ErrAlreadyWatching) {
		t.Errorf("second watch = %v, expected ErrAlreadyWatching", err)
	}

	cancel()
	for range ch {
	}

	// Cancellation frees the slot for a new watch
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	if _, err := c.WatchJobs(ctx2); err != nil {
		t.Fatalf("watch after teardown = %v, expected a fresh subscription", err)
	}
}

func TestWatchAuthSingleWatch(t *testing.T) {
	c, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := c.WatchAuth(ctx)
	if err != nil {
		t.Fatalf("failed to start watch: %v", err)
	}
	if _, err := c.WatchAuth(ctx); !errors.Is(err, ErrAlreadyWatching) {
		t.Errorf("second watch = %v, expected ErrAlreadyWatching", err)
	}

	employer, err := c.SignUp(ctx, "Acme", "rh@acme.com", "secret123")
	if err != nil {
		t.Fatalf("failed to sign up: %v", err)
	}
	if got := receiveAuth(t, ch); got == nil || got.ID != employer.ID {
		t.Errorf("delivered identity = %+v, expected the signed-up employer", got)
	}

	if err := c.SignOut(ctx); err != nil {
		t.Fatalf("failed to sign out: %v", err)
	}
	if got := receiveAuth(t, ch); got != nil {
		t.Errorf("delivered identity = %+v, expected nil after sign-out", got)
	}
}

func TestWatchJobsDeliversOnChange(t *testing.T) {
	c, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := c.WatchJobs(ctx)
	if err != nil {
		t.Fatalf("failed to start watch: %v", err)
	}
	if initial := receiveJobs(t, ch); len(initial) != 0 {
		t.Fatalf("initial delivery = %d jobs, expected the empty collection", len(initial))
	}

	job := models.Job{ID: "job-a", Title: "Dev", Location: "SP"}
	if err := c.CreateJob(ctx, job); err != nil {
		t.Fatalf("failed to create job: %v", err)
	}

	// The creation notice can race the subscription handshake, so keep
	// re-announcing until the watcher reports the new record
	poke := time.NewTicker(50 * time.Millisecond)
	defer poke.Stop()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case jobs, ok := <-ch:
			if !ok {
				t.Fatal("watch channel closed early")
			}
			if len(jobs) == 1 && jobs[0].ID == "job-a" {
				return
			}
		case <-poke.C:
			c.announce(ctx, "created", job.ID)
		case <-deadline:
			t.Fatal("change never delivered")
		}
	}
}

func TestWatchJobsFallsBackToPolling(t *testing.T) {
	c, mr := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A closed transport makes the live subscription fail immediately
	dead := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	dead.Close()
	c.subscribeJobs = func(ctx context.Context) *redis.PubSub {
		return dead.Subscribe(ctx, jobsChannel)
	}

	ch, err := c.WatchJobs(ctx)
	if err != nil {
		t.Fatalf("failed to start watch: %v", err)
	}
	if initial := receiveJobs(t, ch); len(initial) != 0 {
		t.Fatalf("initial delivery = %d jobs, expected the empty collection", len(initial))
	}

	if err := c.CreateJob(ctx, models.Job{ID: "job-a", Title: "Dev", Location: "SP"}); err != nil {
		t.Fatalf("failed to create job: %v", err)
	}

	// No live subscription exists, so only the periodic re-fetch can
	// deliver the change
	deadline := time.After(2 * time.Second)
	for {
		select {
		case jobs, ok := <-ch:
			if !ok {
				t.Fatal("watch channel closed early")
			}
			if len(jobs) == 1 && jobs[0].ID == "job-a" {
				return
			}
		case <-deadline:
			t.Fatal("degraded polling never delivered the change")
		}
	}
}
