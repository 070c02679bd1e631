package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/vagalivre/vagalivre/internal/config"
	"github.com/vagalivre/vagalivre/pkg/models"
)

// Sentinel errors returned by credential operations
var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrBadCredentials  = errors.New("invalid email or password")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyWatching = errors.New("subscription already active")
)

const (
	jobKeyPrefix   = "vagalivre:job:"
	employersKey   = "vagalivre:employers"
	credentialsKey = "vagalivre:auth"
	feedbackKey    = "vagalivre:feedback"
	jobsChannel    = "vagalivre:jobs.changed"

	appendRetries = 5
)

// Client talks to the remote document backend. Job records live as
// individual JSON documents, employers in a hash keyed by identity, and
// credentials in a hash keyed by email. Changes to the job collection
// are announced on a pub/sub channel; WatchJobs degrades to periodic
// polling when the live subscription cannot be held.
type Client struct {
	rdb          *redis.Client
	logger       *slog.Logger
	pollInterval time.Duration

	// subscribeJobs opens the live change subscription. Held as a field
	// so tests can substitute a failing transport.
	subscribeJobs func(ctx context.Context) *redis.PubSub

	mu           sync.Mutex
	authCh       chan *models.Employer
	jobWatching  bool
	authWatching bool
}

// New connects to the backend configured in cfg. The caller decided
// remote mode is on; a backend that cannot be reached is an error here,
// not a silent fallback to offline mode.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	opts, err := redis.ParseURL(cfg.Remote.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse remote url: %w", err)
	}
	if cfg.Remote.Password != "" {
		opts.Password = cfg.Remote.Password
	}
	if cfg.Remote.DB != 0 {
		opts.DB = cfg.Remote.DB
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to reach remote backend: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	poll := cfg.Remote.PollInterval
	if poll <= 0 {
		poll = 30 * time.Second
	}

	c := &Client{rdb: rdb, logger: logger, pollInterval: poll}
	c.subscribeJobs = func(ctx context.Context) *redis.PubSub {
		return rdb.Subscribe(ctx, jobsChannel)
	}
	return c, nil
}

// Close releases the connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// credential is the stored login record for one employer
type credential struct {
	ID           string `json:"id"`
	PasswordHash string `json:"passwordHash"`
}

// SignUp registers a new employer. Email uniqueness is enforced by the
// backend via an atomic set-if-absent on the credential record.
func (c *Client) SignUp(ctx context.Context, companyName, email, password string) (*models.Employer, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := credential{ID: uuid.NewString(), PasswordHash: string(hash)}
	data, err := json.Marshal(cred)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credential: %w", err)
	}

	set, err := c.rdb.HSetNX(ctx, credentialsKey, email, string(data)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to store credential: %w", err)
	}
	if !set {
		return nil, ErrEmailTaken
	}

	employer := &models.Employer{
		ID:          cred.ID,
		CompanyName: companyName,
		Email:       email,
	}
	doc, err := json.Marshal(employer)
	if err != nil {
		return nil, fmt.Errorf("failed to encode employer: %w", err)
	}
	if err := c.rdb.HSet(ctx, employersKey, employer.ID, string(doc)).Err(); err != nil {
		// Roll the credential back so the email is not burned
		c.rdb.HDel(ctx, credentialsKey, email)
		return nil, fmt.Errorf("failed to store employer: %w", err)
	}

	c.notifyAuth(employer)
	return employer, nil
}

// SignIn verifies credentials and returns the employer record. Bad
// email and bad password collapse into the same error on purpose.
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.Employer, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	data, err := c.rdb.HGet(ctx, credentialsKey, email).Result()
	if err == redis.Nil {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}

	var cred credential
	if err := json.Unmarshal([]byte(data), &cred); err != nil {
		return nil, fmt.Errorf("failed to decode credential: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}

	employer, err := c.Employer(ctx, cred.ID)
	if err != nil {
		return nil, err
	}

	c.notifyAuth(employer)
	return employer, nil
}

// SignOut ends the authenticated session
func (c *Client) SignOut(ctx context.Context) error {
	c.notifyAuth(nil)
	return nil
}

// Employer looks up an employer by identity
func (c *Client) Employer(ctx context.Context, id string) (*models.Employer, error) {
	data, err := c.rdb.HGet(ctx, employersKey, id).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read employer: %w", err)
	}
	var employer models.Employer
	if err := json.Unmarshal([]byte(data), &employer); err != nil {
		return nil, fmt.Errorf("failed to decode employer: %w", err)
	}
	return &employer, nil
}

// notifyAuth pushes the new authenticated identity to the auth watcher,
// if one is live. Sends never block a credential operation.
func (c *Client) notifyAuth(employer *models.Employer) {
	c.mu.Lock()
	ch := c.authCh
	c.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- employer:
	default:
		c.logger.Warn("auth notification dropped, watcher not keeping up")
	}
}

// WatchAuth delivers the authenticated identity every time it changes;
// nil means signed out. At most one watch may be live; cancel ctx to
// release it.
func (c *Client) WatchAuth(ctx context.Context) (<-chan *models.Employer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.authWatching {
		return nil, ErrAlreadyWatching
	}
	c.authWatching = true
	in := make(chan *models.Employer, 8)
	c.authCh = in

	out := make(chan *models.Employer)
	go func() {
		defer func() {
			c.mu.Lock()
			c.authWatching = false
			c.authCh = nil
			c.mu.Unlock()
			close(out)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case employer := <-in:
				select {
				case out <- employer:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// FetchJobs reads the full job collection, normalized and newest-first
func (c *Client) FetchJobs(ctx context.Context) ([]models.Job, error) {
	var keys []string
	iter := c.rdb.Scan(ctx, 0, jobKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}

	jobs := []models.Job{}
	if len(keys) == 0 {
		return jobs, nil
	}

	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	for _, v := range values {
		data, ok := v.(string)
		if !ok {
			continue // deleted between scan and fetch
		}
		var raw RawJob
		if err := json.Unmarshal([]byte(data), &raw); err != nil {
			c.logger.Warn("skipping undecodable job record", "error", err)
			continue
		}
		jobs = append(jobs, Normalize(raw))
	}

	models.SortJobsNewestFirst(jobs)
	return jobs, nil
}

// WatchJobs delivers the full normalized job collection on every remote
// change. The first delivery is the current collection. When the live
// pub/sub subscription cannot be established or dies, the watch falls
// back to polling every pollInterval rather than going quiet. At most
// one watch may be live; cancel ctx to release it.
func (c *Client) WatchJobs(ctx context.Context) (<-chan []models.Job, error) {
	c.mu.Lock()
	if c.jobWatching {
		c.mu.Unlock()
		return nil, ErrAlreadyWatching
	}
	c.jobWatching = true
	c.mu.Unlock()

	out := make(chan []models.Job)
	go c.runJobWatch(ctx, out)
	return out, nil
}

func (c *Client) runJobWatch(ctx context.Context, out chan<- []models.Job) {
	defer func() {
		c.mu.Lock()
		c.jobWatching = false
		c.mu.Unlock()
		close(out)
	}()

	c.deliverJobs(ctx, out)

	pubsub := c.subscribeJobs(ctx)
	defer pubsub.Close()

	// Confirm the subscription actually went through before trusting it
	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		c.logger.Warn("live subscription unavailable, polling instead", "error", err)
		c.pollJobs(ctx, out)
		return
	}

	msgs := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return
				}
				c.logger.Warn("live subscription lost, polling instead")
				c.pollJobs(ctx, out)
				return
			}
			c.deliverJobs(ctx, out)
		}
	}
}

// pollJobs is the degraded mode: periodic full re-fetch
func (c *Client) pollJobs(ctx context.Context, out chan<- []models.Job) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.deliverJobs(ctx, out)
		}
	}
}

func (c *Client) deliverJobs(ctx context.Context, out chan<- []models.Job) {
	jobs, err := c.FetchJobs(ctx)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Warn("job fetch failed", "error", err)
		}
		return
	}
	select {
	case out <- jobs:
	case <-ctx.Done():
	}
}

// CreateJob stores a new job document. The creation time is assigned by
// the server clock so records sort consistently across clients.
func (c *Client) CreateJob(ctx context.Context, job models.Job) error {
	raw := rawFromJob(job)
	raw.PostedDate = ""
	raw.CreatedAt = c.serverNowMillis(ctx)

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}
	if err := c.rdb.Set(ctx, jobKeyPrefix+job.ID, string(data), 0).Err(); err != nil {
		return fmt.Errorf("failed to store job: %w", err)
	}
	c.announce(ctx, "created", job.ID)
	return nil
}

// UpdateJob replaces the mutable fields of an existing job document,
// preserving owner, creation time, and the applications list as stored
// remotely. Unknown ids are a no-op.
func (c *Client) UpdateJob(ctx context.Context, id string, job models.Job) error {
	key := jobKeyPrefix + id
	found := false
	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		var existing RawJob
		if err := json.Unmarshal([]byte(data), &existing); err != nil {
			return fmt.Errorf("failed to decode job: %w", err)
		}

		updated := rawFromJob(job)
		updated.ID = existing.ID
		updated.EmployerID = existing.EmployerID
		updated.PostedDate = existing.PostedDate
		updated.CreatedAt = existing.CreatedAt
		updated.Applications = existing.Applications
		updated.UpdatedAt = c.serverNowMillis(ctx)

		out, err := json.Marshal(updated)
		if err != nil {
			return fmt.Errorf("failed to encode job: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, string(out), 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	// A missing key is a no-op; announcing it would make every
	// subscriber re-fetch for nothing
	if found {
		c.announce(ctx, "updated", id)
	}
	return nil
}

// DeleteJob removes a job document; deleting a missing id is fine
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	if err := c.rdb.Del(ctx, jobKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	c.announce(ctx, "deleted", id)
	return nil
}

// AppendApplication appends one application to the job's embedded list.
// The read-modify-write runs under an optimistic transaction so two
// candidates applying at once cannot lose a submission.
func (c *Client) AppendApplication(ctx context.Context, jobID string, application models.Application) error {
	key := jobKeyPrefix + jobID

	for i := 0; i < appendRetries; i++ {
		err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Result()
			if err == redis.Nil {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			var raw RawJob
			if err := json.Unmarshal([]byte(data), &raw); err != nil {
				return fmt.Errorf("failed to decode job: %w", err)
			}
			raw.Applications = append(raw.Applications, application)

			out, err := json.Marshal(raw)
			if err != nil {
				return fmt.Errorf("failed to encode job: %w", err)
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, string(out), 0)
				return nil
			})
			return err
		}, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return err
		}
		c.announce(ctx, "applied", jobID)
		return nil
	}
	return fmt.Errorf("failed to append application after %d attempts", appendRetries)
}

// AppendFeedback appends one feedback entry to the shared list
func (c *Client) AppendFeedback(ctx context.Context, fb models.Feedback) error {
	data, err := json.Marshal(fb)
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}
	if err := c.rdb.RPush(ctx, feedbackKey, string(data)).Err(); err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}
	return nil
}

// FetchFeedback reads the full feedback list, oldest first
func (c *Client) FetchFeedback(ctx context.Context) ([]models.Feedback, error) {
	values, err := c.rdb.LRange(ctx, feedbackKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}
	entries := []models.Feedback{}
	for _, v := range values {
		var fb models.Feedback
		if err := json.Unmarshal([]byte(v), &fb); err != nil {
			c.logger.Warn("skipping undecodable feedback entry", "error", err)
			continue
		}
		entries = append(entries, fb)
	}
	return entries, nil
}

// announce publishes a change notice. Listeners re-fetch, so the
// payload only needs to identify the event for debugging.
func (c *Client) announce(ctx context.Context, event, id string) {
	if err := c.rdb.Publish(ctx, jobsChannel, event+":"+id).Err(); err != nil {
		c.logger.Warn("change notice not published", "event", event, "error", err)
	}
}

// serverNowMillis returns the backend's clock in unix milliseconds,
// falling back to the local clock when the call fails
func (c *Client) serverNowMillis(ctx context.Context) int64 {
	t, err := c.rdb.Time(ctx).Result()
	if err != nil {
		return time.Now().UnixMilli()
	}
	return t.UnixMilli()
}
