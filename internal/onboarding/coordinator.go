package onboarding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
)

// Credentials supplies the bearer token for backend calls.
type Credentials interface {
	Token(ctx context.Context) (string, error)
}

// QuestionSource fetches the ordered question sequence for a language.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, token string, lang entities.Language) ([]entities.Question, error)
}

// ResponseSink transmits a submission to the backend.
type ResponseSink interface {
	SubmitResponses(ctx context.Context, token string, s entities.Submission) error
}

// Observer receives the outcome of every network call.
type Observer interface {
	ObserveLoad(lang entities.Language, err error, elapsed time.Duration)
	ObserveSubmit(err error, elapsed time.Duration)
}

// Outcome is what applying a Result did to a flow.
type Outcome int

const (
	OutcomeStale Outcome = iota
	OutcomeLoaded
	OutcomeEmpty
	OutcomeLoadFailed
	OutcomeCompleted
	OutcomeSubmitFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStale:
		return "stale"
	case OutcomeLoaded:
		return "loaded"
	case OutcomeEmpty:
		return "empty"
	case OutcomeLoadFailed:
		return "load_failed"
	case OutcomeCompleted:
		return "completed"
	case OutcomeSubmitFailed:
		return "submit_failed"
	default:
		return "unknown"
	}
}

// LoadResult carries a finished fetch.
type LoadResult struct {
	Ticket    LoadTicket
	Questions []entities.Question
	Err       error
}

// SubmitResult carries a finished submission.
type SubmitResult struct {
	Ticket SubmitTicket
	Err    error
}

// Key routes a Result back to the flow that requested it.
type Key struct {
	Owner int64  // the party the flow belongs to, e.g. a chat
	Flow  uint64 // tells successive flows of one owner apart
}

// Result is delivered on the Coordinator channel for the flow identified by Key.
// Exactly one of Load and Submit is set.
type Result struct {
	Key    Key
	Load   *LoadResult
	Submit *SubmitResult
}

// Coordinator runs fetches and submissions off the caller's goroutine and
// reports them on Results.
type Coordinator struct {
	source   QuestionSource
	sink     ResponseSink
	observer Observer
	logger   *zap.Logger
	timeout  time.Duration

	results chan Result
	wg      sync.WaitGroup
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTimeout bounds every network call.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.timeout = d }
}

// WithObserver reports call outcomes to o.
func WithObserver(o Observer) Option {
	return func(c *Coordinator) { c.observer = o }
}

// WithBuffer sets the capacity of the results channel.
func WithBuffer(n int) Option {
	return func(c *Coordinator) { c.results = make(chan Result, n) }
}

// NewCoordinator creates a coordinator over the given backend.
func NewCoordinator(source QuestionSource, sink ResponseSink, logger *zap.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		source:  source,
		sink:    sink,
		logger:  logger,
		timeout: 15 * time.Second,
		results: make(chan Result, 64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Results returns the channel on which finished calls are delivered.
func (c *Coordinator) Results() <-chan Result {
	return c.results
}

// Wait blocks until every started call has delivered or given up.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Load fetches questions for ticket t in the background.
func (c *Coordinator) Load(ctx context.Context, key Key, creds Credentials, t LoadTicket) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		start := time.Now()
		questions, err := c.fetch(ctx, creds, t.Language)
		if c.observer != nil {
			c.observer.ObserveLoad(t.Language, err, time.Since(start))
		}
		if err != nil {
			c.logger.Warn("load questions failed",
				zap.Int64("owner", key.Owner),
				zap.Uint64("flow", key.Flow),
				zap.String("lang", t.Language.String()),
				zap.Uint64("generation", t.Generation),
				zap.Error(err),
			)
		}

		c.deliver(ctx, Result{
			Key:  key,
			Load: &LoadResult{Ticket: t, Questions: questions, Err: err},
		})
	}()
}

// Submit sends submission s for ticket t in the background.
func (c *Coordinator) Submit(ctx context.Context, key Key, creds Credentials, t SubmitTicket, s entities.Submission) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		start := time.Now()
		err := c.send(ctx, creds, s)
		if c.observer != nil {
			c.observer.ObserveSubmit(err, time.Since(start))
		}
		if err != nil {
			c.logger.Warn("submit responses failed",
				zap.Int64("owner", key.Owner),
				zap.Uint64("flow", key.Flow),
				zap.Uint64("generation", t.Generation),
				zap.Int("responses", len(s.Responses)),
				zap.Error(err),
			)
		}

		c.deliver(ctx, Result{
			Key:    key,
			Submit: &SubmitResult{Ticket: t, Err: err},
		})
	}()
}

func (c *Coordinator) fetch(ctx context.Context, creds Credentials, lang entities.Language) ([]entities.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	token, err := resolveToken(ctx, creds)
	if err != nil {
		return nil, err
	}

	return c.source.FetchQuestions(ctx, token, lang)
}

func (c *Coordinator) send(ctx context.Context, creds Credentials, s entities.Submission) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	token, err := resolveToken(ctx, creds)
	if err != nil {
		return err
	}

	return c.sink.SubmitResponses(ctx, token, s)
}

func (c *Coordinator) deliver(ctx context.Context, r Result) {
	select {
	case c.results <- r:
	case <-ctx.Done():
		c.logger.Debug("result dropped on shutdown",
			zap.Int64("owner", r.Key.Owner),
			zap.Uint64("flow", r.Key.Flow),
		)
	}
}

func resolveToken(ctx context.Context, creds Credentials) (string, error) {
	if creds == nil {
		return "", ErrNoCredentials
	}
	token, err := creds.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoCredentials, err)
	}
	if token == "" {
		return "", ErrNoCredentials
	}
	return token, nil
}

// Apply feeds r into f and reports what happened.
func Apply(f *Flow, r Result) Outcome {
	switch {
	case r.Load != nil:
		if !f.CompleteLoad(r.Load.Ticket, r.Load.Questions, r.Load.Err) {
			return OutcomeStale
		}
		switch f.Phase() {
		case PhaseError:
			return OutcomeLoadFailed
		case PhaseEmpty:
			return OutcomeEmpty
		}
		return OutcomeLoaded

	case r.Submit != nil:
		if !f.CompleteSubmit(r.Submit.Ticket, r.Submit.Err) {
			return OutcomeStale
		}
		if f.Phase() == PhaseComplete {
			return OutcomeCompleted
		}
		return OutcomeSubmitFailed
	}

	return OutcomeStale
}
