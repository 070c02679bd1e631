package board

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/vagalivre/vagalivre/internal/durable"
	"github.com/vagalivre/vagalivre/pkg/models"
)

// newTestBoard builds a Local board over a throwaway store
func newTestBoard(t *testing.T) *Local {
	t.Helper()
	store, err := durable.Open(t.TempDir(), slog.Default())
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewLocal(store, slog.Default())
}

// loginTestEmployer registers and returns a logged-in employer
func loginTestEmployer(t *testing.T, b *Local) *models.Employer {
	t.Helper()
	if !b.Register(context.Background(), "acme", "a@x.com", "pw123456") {
		t.Fatal("registration should succeed")
	}
	session := b.Session()
	if session == nil {
		t.Fatal("session should be set after registration")
	}
	return session
}

func TestRegisterAndLogin(t *testing.T) {
	b := newTestBoard(t)
	ctx := context.Background()

	if !b.Register(ctx, "acme", "a@x.com", "pw123456") {
		t.Fatal("registration should succeed")
	}

	b.Logout(ctx)
	if b.Session() != nil {
		t.Error("session should be nil after logout")
	}

	if !b.Login(ctx, "a@x.com", "pw123456") {
		t.Fatal("login with registered credentials should succeed")
	}
	session := b.Session()
	if session == nil || session.CompanyName != "acme" {
		t.Errorf("session company = %v, expected acme", session)
	}
	if b.Page() != models.PageEmployer {
		t.Errorf("page = %s, expected employer after login", b.Page())
	}

	if b.Login(ctx, "a@x.com", "wrong") {
		t.Error("login with wrong password should fail")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	b := newTestBoard(t)
	ctx := context.Background()

	if !b.Register(ctx, "acme", "a@x.com", "pw123456") {
		t.Fatal("first registration should succeed")
	}
	before := len(b.Employers())

	if b.Register(ctx, "other", "a@x.com", "different") {
		t.Error("registration with duplicate email should fail")
	}
	if len(b.Employers()) != before {
		t.Error("failed registration should leave the employer collection unchanged")
	}
}

func TestAddJobRequiresLogin(t *testing.T) {
	b := newTestBoard(t)

	err := b.AddJob(context.Background(), JobInput{
		JobType:  models.JobTypeEmprego,
		Title:    "Dev",
		Location: "SP",
	})
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("AddJob without session = %v, expected ErrNotLoggedIn", err)
	}
	if len(b.Jobs()) != len(durable.SeedJobs()) {
		t.Error("rejected AddJob should not mutate the job collection")
	}
}

func TestAddJob(t *testing.T) {
	b := newTestBoard(t)
	employer := loginTestEmployer(t, b)

	err := b.AddJob(context.Background(), JobInput{
		JobType:          models.JobTypeEmprego,
		Title:            "Dev",
		Location:         "SP",
		ResumePreference: models.ResumeTextOnly,
	})
	if err != nil {
		t.Fatalf("failed to add job: %v", err)
	}

	jobs := b.Jobs()
	job := jobs[0]
	if job.Title != "Dev" {
		t.Errorf("newest job title = %q, expected the new posting first", job.Title)
	}
	if job.ID == "" {
		t.Error("job ID not set")
	}
	if job.EmployerID != employer.ID {
		t.Errorf("job owner = %q, expected %q", job.EmployerID, employer.ID)
	}
	if job.PostedDate == "" {
		t.Error("posted date not stamped")
	}
	if job.Applications == nil || len(job.Applications) != 0 {
		t.Errorf("applications = %v, expected empty", job.Applications)
	}
}

func TestAddJobValidation(t *testing.T) {
	b := newTestBoard(t)
	loginTestEmployer(t, b)

	tests := []struct {
		name  string
		input JobInput
	}{
		{
			name:  "missing title",
			input: JobInput{JobType: models.JobTypeEmprego, Location: "SP"},
		},
		{
			name:  "missing location",
			input: JobInput{JobType: models.JobTypeEmprego, Title: "Dev"},
		},
		{
			name:  "bad job type",
			input: JobInput{JobType: "freelance", Title: "Dev", Location: "SP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.AddJob(context.Background(), tt.input); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestUpdateJobPreservesImmutables(t *testing.T) {
	b := newTestBoard(t)
	loginTestEmployer(t, b)

	if err := b.AddJob(context.Background(), JobInput{
		JobType: models.JobTypeEmprego, Title: "Dev", Location: "SP",
	}); err != nil {
		t.Fatalf("failed to add job: %v", err)
	}
	original := b.Jobs()[0]

	err := b.UpdateJob(context.Background(), original.ID, JobInput{
		JobType:  models.JobTypeEstagio,
		Title:    "Senior Dev",
		Location: "RJ",
		Salary:   "R$ 9.000,00",
	})
	if err != nil {
		t.Fatalf("failed to update job: %v", err)
	}

	var updated *models.Job
	for _, job := range b.Jobs() {
		if job.ID == original.ID {
			j := job
			updated = &j
		}
	}
	if updated == nil {
		t.Fatal("updated job disappeared")
	}
	if updated.Title != "Senior Dev" || updated.Location != "RJ" {
		t.Error("mutable fields not replaced")
	}
	if updated.EmployerID != original.EmployerID {
		t.Error("update must not change the owner")
	}
	if updated.PostedDate != original.PostedDate {
		t.Error("update must not change the creation time")
	}
	if len(updated.Applications) != len(original.Applications) {
		t.Error("update must not touch applications")
	}
}

func TestUpdateUnknownJobIsNoop(t *testing.T) {
	b := newTestBoard(t)
	before := b.Jobs()

	err := b.UpdateJob(context.Background(), "missing", JobInput{
		JobType: models.JobTypeEmprego, Title: "X", Location: "Y",
	})
	if err != nil {
		t.Fatalf("update of unknown id should be a no-op, got %v", err)
	}
	if len(b.Jobs()) != len(before) {
		t.Error("no-op update changed the collection")
	}
}

func TestDeleteJobIdempotent(t *testing.T) {
	b := newTestBoard(t)
	ctx := context.Background()

	target := b.Jobs()[0].ID
	before := len(b.Jobs())

	b.DeleteJob(ctx, target)
	if len(b.Jobs()) != before-1 {
		t.Fatalf("job count = %d, expected %d", len(b.Jobs()), before-1)
	}
	for _, job := range b.Jobs() {
		if job.ID == target {
			t.Error("deleted job still present")
		}
	}

	// Deleting again must not error or change anything
	b.DeleteJob(ctx, target)
	if len(b.Jobs()) != before-1 {
		t.Error("repeated deletion changed the collection")
	}
}

func TestAddApplication(t *testing.T) {
	b := newTestBoard(t)
	loginTestEmployer(t, b)

	if err := b.AddJob(context.Background(), JobInput{
		JobType:          models.JobTypeEstagio,
		Title:            "Estágio",
		Location:         "BH",
		ResumePreference: models.ResumeTextOnly,
	}); err != nil {
		t.Fatalf("failed to add job: %v", err)
	}
	target := b.Jobs()[0].ID
	countsBefore := map[string]int{}
	for _, job := range b.Jobs() {
		countsBefore[job.ID] = len(job.Applications)
	}

	err := b.AddApplication(context.Background(), target, ApplicationInput{
		FullName:   "Ana",
		Email:      "ana@x.com",
		Phone:      "11999990000",
		ResumeText: "Experiência: 2 anos",
	})
	if err != nil {
		t.Fatalf("failed to add application: %v", err)
	}

	for _, job := range b.Jobs() {
		want := countsBefore[job.ID]
		if job.ID == target {
			want++
		}
		if len(job.Applications) != want {
			t.Errorf("job %s has %d applications, expected %d", job.ID, len(job.Applications), want)
		}
	}
}

func TestAddApplicationResumePolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  models.ResumePreference
		input   ApplicationInput
		wantErr error
	}{
		{
			name:    "text policy rejects missing text",
			policy:  models.ResumeTextOnly,
			input:   ApplicationInput{FullName: "Ana", Email: "ana@x.com", Phone: "11"},
			wantErr: ErrResumeTextRequired,
		},
		{
			name:    "file policy rejects missing file",
			policy:  models.ResumeFileOnly,
			input:   ApplicationInput{FullName: "Ana", Email: "ana@x.com", Phone: "11", ResumeText: "cv"},
			wantErr: ErrResumeFileRequired,
		},
		{
			name:    "both policy accepts text alone",
			policy:  models.ResumeEither,
			input:   ApplicationInput{FullName: "Ana", Email: "ana@x.com", Phone: "11", ResumeText: "cv"},
			wantErr: nil,
		},
		{
			name:    "both policy rejects neither",
			policy:  models.ResumeEither,
			input:   ApplicationInput{FullName: "Ana", Email: "ana@x.com", Phone: "11"},
			wantErr: ErrResumeRequired,
		},
		{
			name:    "none policy requires nothing",
			policy:  models.ResumeNone,
			input:   ApplicationInput{FullName: "Ana", Email: "ana@x.com", Phone: "11"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			loginTestEmployer(t, b)
			if err := b.AddJob(context.Background(), JobInput{
				JobType:          models.JobTypeEmprego,
				Title:            "Vaga",
				Location:         "SP",
				ResumePreference: tt.policy,
			}); err != nil {
				t.Fatalf("failed to add job: %v", err)
			}
			target := b.Jobs()[0]

			err := b.AddApplication(context.Background(), target.ID, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddApplication error = %v, expected %v", err, tt.wantErr)
			}

			wantCount := 0
			if tt.wantErr == nil {
				wantCount = 1
			}
			for _, job := range b.Jobs() {
				if job.ID == target.ID && len(job.Applications) != wantCount {
					t.Errorf("applications = %d, expected %d", len(job.Applications), wantCount)
				}
			}
		})
	}
}

func TestAddApplicationUnknownJob(t *testing.T) {
	b := newTestBoard(t)
	err := b.AddApplication(context.Background(), "missing", ApplicationInput{
		FullName: "Ana", Email: "ana@x.com", Phone: "11", ResumeText: "cv",
	})
	if !errors.Is(err, ErrJobNotFound) {
		t.Errorf("AddApplication on unknown job = %v, expected ErrJobNotFound", err)
	}
}

func TestJobsSortedNewestFirst(t *testing.T) {
	store, err := durable.Open(t.TempDir(), slog.Default())
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	defer store.Close()

	// Snapshot deliberately out of order
	store.SaveJobs([]models.Job{
		{ID: "a", PostedDate: "2024-01-01", Applications: []models.Application{}},
		{ID: "c", PostedDate: "2024-03-01", Applications: []models.Application{}},
		{ID: "b", PostedDate: "2024-02-01", Applications: []models.Application{}},
	})

	b := NewLocal(store, slog.Default())
	jobs := b.Jobs()
	for i := 1; i < len(jobs); i++ {
		if jobs[i-1].PostedDate < jobs[i].PostedDate {
			t.Fatalf("jobs out of order: %s before %s", jobs[i-1].ID, jobs[i].ID)
		}
	}
}

func TestJobsReturnsIndependentCopy(t *testing.T) {
	b := newTestBoard(t)
	loginTestEmployer(t, b)

	if err := b.AddJob(context.Background(), JobInput{
		JobType:          models.JobTypeEmprego,
		Title:            "Dev",
		Location:         "SP",
		ResumePreference: models.ResumeTextOnly,
	}); err != nil {
		t.Fatalf("failed to add job: %v", err)
	}
	target := b.Jobs()[0].ID
	if err := b.AddApplication(context.Background(), target, ApplicationInput{
		FullName: "Ana", Email: "ana@x.com", Phone: "11", ResumeText: "cv",
	}); err != nil {
		t.Fatalf("failed to add application: %v", err)
	}

	// Scribbling on the returned copy must not reach board state
	jobs := b.Jobs()
	jobs[0].Applications[0].FullName = "Mallory"
	jobs[0].Applications = append(jobs[0].Applications, models.Application{ID: "bogus"})

	fresh := b.Jobs()
	if len(fresh[0].Applications) != 1 {
		t.Fatalf("applications = %d, expected 1", len(fresh[0].Applications))
	}
	if fresh[0].Applications[0].FullName != "Ana" {
		t.Errorf("applicant = %q, internal state was mutated through the copy", fresh[0].Applications[0].FullName)
	}
}

func TestAddFeedback(t *testing.T) {
	b := newTestBoard(t)

	err := b.AddFeedback(context.Background(), FeedbackInput{
		Author:  "Ana",
		Kind:    models.FeedbackSugestao,
		Message: "Seria ótimo ter alertas de vagas",
	})
	if err != nil {
		t.Fatalf("failed to add feedback: %v", err)
	}
	entries := b.Feedbacks()
	if len(entries) != 1 || entries[0].ID == "" || entries[0].Date == "" {
		t.Errorf("feedback = %+v, expected one stamped entry", entries)
	}

	if err := b.AddFeedback(context.Background(), FeedbackInput{Author: "Ana"}); err == nil {
		t.Error("feedback without message should fail validation")
	}
}

func TestFilterJobs(t *testing.T) {
	jobs := []models.Job{
		{ID: "1", Title: "Auxiliar Administrativo", CompanyName: "Tech Solutions", Location: "São Paulo, SP", JobType: models.JobTypeEmprego},
		{ID: "2", Title: "Mecânico", CompanyName: "Metalúrgica", Location: "Rio de Janeiro, RJ", JobType: models.JobTypeEmprego},
		{ID: "3", Title: "Estágio em Marketing", Location: "Belo Horizonte, MG", JobType: models.JobTypeEstagio},
	}

	tests := []struct {
		name     string
		search   string
		location string
		jobType  models.JobType
		want     []string
	}{
		{name: "no filters", want: []string{"1", "2", "3"}},
		{name: "title substring", search: "marketing", want: []string{"3"}},
		{name: "company substring", search: "tech", want: []string{"1"}},
		{name: "location", location: "rio", want: []string{"2"}},
		{name: "job type", jobType: models.JobTypeEstagio, want: []string{"3"}},
		{name: "combined", search: "a", location: "sp", want: []string{"1"}},
		{name: "no match", search: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterJobs(jobs, tt.search, tt.location, tt.jobType)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d jobs, expected %d", len(got), len(tt.want))
			}
			for i, job := range got {
				if job.ID != tt.want[i] {
					t.Errorf("result[%d] = %s, expected %s", i, job.ID, tt.want[i])
				}
			}
		})
	}
}
