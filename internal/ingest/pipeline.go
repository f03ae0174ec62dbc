// Package ingest fetches the inbox and turns it into a WorkingSet of triage
// records.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	gmailapi "google.golang.org/api/gmail/v1"

	"go.withmatt.com/triage/internal/log"
	"go.withmatt.com/triage/internal/triage"
)

const (
	DefaultListLimit   = 100
	DefaultFetchLimit  = 50
	DefaultConcurrency = 10
)

const (
	OpList = "list"
	OpGet  = "get"
)

var (
	// ErrFetch is matched by every error Refresh returns for a failed batch.
	ErrFetch = errors.New("failed to load emails")
	// ErrRefreshInFlight is returned when Refresh is called while another
	// refresh is still running.
	ErrRefreshInFlight = errors.New("refresh already in progress")
)

// Transport lists and fetches inbox messages.
type Transport interface {
	ListInboxMessageIDs(ctx context.Context, limit int64) ([]string, error)
	GetMessage(ctx context.Context, id string) (*gmailapi.Message, error)
}

// Authenticator reports whether a signed-in account is available.
type Authenticator interface {
	IsAuthenticated() bool
}

// FetchError describes the request that aborted a refresh.
type FetchError struct {
	Op  string
	ID  string
	Err error
}

func (e *FetchError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s message %s: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s messages: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

// Options bounds a single refresh.
type Options struct {
	ListLimit   int
	FetchLimit  int
	Concurrency int
	Timeout     time.Duration
}

func (o Options) withDefaults() Options {
	if o.ListLimit <= 0 {
		o.ListLimit = DefaultListLimit
	}
	if o.FetchLimit <= 0 {
		o.FetchLimit = DefaultFetchLimit
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	return o
}

// WorkingSet is the result of one successful refresh. It is never
// modified after it is published.
type WorkingSet struct {
	Records   []triage.Record
	FetchedAt time.Time
	Cycle     string
}

func emptyWorkingSet() *WorkingSet {
	return &WorkingSet{Records: []triage.Record{}}
}

// Pipeline owns the current WorkingSet and replaces it on each refresh.
type Pipeline struct {
	transport Transport
	auth      Authenticator
	opts      Options
	now       func() time.Time

	current atomic.Pointer[WorkingSet]
	running atomic.Bool
}

func New(transport Transport, auth Authenticator, opts Options) *Pipeline {
	p := &Pipeline{
		transport: transport,
		auth:      auth,
		opts:      opts.withDefaults(),
		now:       time.Now,
	}
	p.current.Store(emptyWorkingSet())
	return p
}

// Snapshot returns the current WorkingSet. It is never nil.
func (p *Pipeline) Snapshot() *WorkingSet {
	return p.current.Load()
}

// Refreshing reports whether a refresh is running.
func (p *Pipeline) Refreshing() bool {
	return p.running.Load()
}

// Clear drops the current WorkingSet. A refresh still running when Clear is
// called does not publish its result.
func (p *Pipeline) Clear() {
	p.current.Store(emptyWorkingSet())
}

// Refresh lists the inbox, fetches the newest messages in parallel and
// publishes them as a new WorkingSet in list order. Any failed request
// aborts the whole batch and leaves the previous WorkingSet in place.
// Without a signed-in account Refresh does nothing.
func (p *Pipeline) Refresh(ctx context.Context) error {
	if p.auth == nil || !p.auth.IsAuthenticated() {
		log.Printf("ingest: not authenticated, skipping refresh")
		return nil
	}
	if !p.running.CompareAndSwap(false, true) {
		return ErrRefreshInFlight
	}
	defer p.running.Store(false)

	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	prev := p.current.Load()
	cycle := uuid.NewString()
	start := time.Now()

	ids, err := p.transport.ListInboxMessageIDs(ctx, int64(p.opts.ListLimit))
	if err != nil {
		log.Printf("ingest[%s]: list failed: %v", cycle, err)
		return &FetchError{Op: OpList, Err: err}
	}
	if len(ids) > p.opts.FetchLimit {
		ids = ids[:p.opts.FetchLimit]
	}
	log.Printf("ingest[%s]: fetching %d messages", cycle, len(ids))

	records := make([]triage.Record, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, id := range ids {
		g.Go(func() error {
			msg, err := p.transport.GetMessage(gctx, id)
			if err != nil {
				return &FetchError{Op: OpGet, ID: id, Err: err}
			}
			records[i] = triage.Build(msg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("ingest[%s]: batch aborted: %v", cycle, err)
		return err
	}

	next := &WorkingSet{
		Records:   records,
		FetchedAt: p.now(),
		Cycle:     cycle,
	}
	if !p.current.CompareAndSwap(prev, next) {
		log.Printf("ingest[%s]: cleared during refresh, discarding result", cycle)
		return nil
	}
	log.Printf("ingest[%s]: published %d records in %s", cycle, len(records), time.Since(start))
	return nil
}
