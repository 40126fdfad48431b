// Package widget holds the search/fetch controller: the current query, the
// current ViewState and the submit operation that moves between them.
package widget

import (
	"context"
	"sync"

	"weatherwidget.app/internal/core/weather"
	"weatherwidget.app/internal/ports"
	"weatherwidget.app/pkg/errors"
)

// WeatherLookup is the use case the controller submits queries to
type WeatherLookup interface {
	Lookup(ctx context.Context, request weather.LookupRequest) (*weather.Record, error)
}

// Listener receives state transitions in the order they were applied. It must
// not call back into the controller; everything it needs is in the Update.
type Listener func(Update)

type Controller struct {
	lookup  WeatherLookup
	logger  ports.Logger
	metrics ports.SessionMetrics
	session string

	mu        sync.Mutex
	query     string
	state     ViewState
	seq       uint64
	mounted   bool
	listeners []listenerEntry
	nextID    int

	// notifyMu is taken before mu is released so listeners observe
	// transitions in the order they were applied.
	notifyMu sync.Mutex
}

type listenerEntry struct {
	id int
	fn Listener
}

type Options struct {
	Lookup       WeatherLookup
	Logger       ports.Logger
	Metrics      ports.SessionMetrics
	DefaultQuery string
	SessionID    string
	// Mounted marks the view as already showing a mount-time result, so Mount
	// does nothing
	Mounted bool
}

func (opts *Options) Validate() error {
	if opts.Lookup == nil {
		return errors.NewValidationError("weather lookup is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	if opts.Metrics == nil {
		return errors.NewValidationError("session metrics is required")
	}
	return nil
}

func NewController(opts Options) (*Controller, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Controller{
		lookup:  opts.Lookup,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		session: opts.SessionID,
		query:   opts.DefaultQuery,
		state:   Idle{},
		mounted: opts.Mounted,
	}, nil
}

// Query returns the current query text
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// State returns the current view state
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetQuery replaces the query. It never issues a request.
func (c *Controller) SetQuery(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = text
}

// Subscribe registers l for every later transition and returns a function
// that removes it.
func (c *Controller) Subscribe(l Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listenerEntry{id: id, fn: l})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, entry := range c.listeners {
			if entry.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// Mount submits the current query the first time it is called and reports
// whether it did.
func (c *Controller) Mount(ctx context.Context) bool {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return false
	}
	c.mounted = true
	c.mu.Unlock()

	c.Submit(ctx)
	return true
}

// Submit moves to Loading, looks up the query as it is at call time, and
// moves to the terminal state of the outcome. A completion that is no longer
// the latest submit is discarded and leaves the newer state in place.
// The returned state is the outcome of this submit, applied or not.
func (c *Controller) Submit(ctx context.Context) ViewState {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	query := c.query
	c.transitionLocked(seq, query, Loading{})

	record, err := c.lookup.Lookup(ctx, weather.LookupRequest{City: query})
	next := c.outcome(query, record, err)

	c.mu.Lock()
	if seq != c.seq {
		latest := c.seq
		c.mu.Unlock()

		c.metrics.SubmitDiscarded()
		c.logger.Debug("Discarding stale weather response",
			ports.F("session", c.session),
			ports.F("query", query),
			ports.F("seq", seq),
			ports.F("latest_seq", latest))
		return next
	}
	c.transitionLocked(seq, query, next)

	return next
}

func (c *Controller) outcome(query string, record *weather.Record, err error) ViewState {
	switch {
	case err == nil && record != nil:
		return Ready{Record: *record}
	case errors.IsNotFoundError(err):
		return NotFound{}
	default:
		c.logger.Error("Weather lookup failed",
			ports.F("session", c.session),
			ports.F("query", query),
			ports.F("error", err))
		return Failed{Message: GenericErrorMessage}
	}
}

// transitionLocked applies state and notifies listeners. It must be called
// with mu held and returns with mu released.
func (c *Controller) transitionLocked(seq uint64, query string, state ViewState) {
	c.state = state
	listeners := make([]Listener, len(c.listeners))
	for i, entry := range c.listeners {
		listeners[i] = entry.fn
	}

	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	update := Update{Seq: seq, Query: query, State: state}
	for _, l := range listeners {
		l(update)
	}
}
