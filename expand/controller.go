package expand

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/opyruso/nw-leaderboard-sub000/core"
)

// Controller owns the graph of one viewer and drives the expand/collapse
// state machine. It is safe for concurrent use.
type Controller struct {
	fetcher  Fetcher
	logger   *slog.Logger
	onChange func(*core.Store)

	mu         sync.Mutex
	origin     string
	generation uint64
	store      *core.Store
	loading    map[string]struct{}
	load       LoadState
	message    string
	notice     string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// OnChange registers fn to receive every new store. fn is called with the
// controller's lock held and must not call back into the controller.
func OnChange(fn func(*core.Store)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// New returns a Controller for origin. Nothing is fetched until Load.
func New(origin string, f Fetcher, opts ...Option) *Controller {
	origin = strings.TrimSpace(origin)
	c := &Controller{
		fetcher: f,
		logger:  slog.Default(),
		origin:  origin,
		store:   core.NewStore(core.WithOrigin(origin)),
		loading: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load fetches the origin's neighborhood and makes it the first graph.
//
// A failed load, or a payload that does not contain the origin, leaves the
// graph empty and wraps ErrInitialLoad. Load may be retried after a failure;
// once ready it is a no-op.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.origin == "":
		c.mu.Unlock()
		return ErrEmptyOrigin
	case c.load == LoadLoading:
		c.mu.Unlock()
		return ErrLoadInProgress
	case c.load == LoadReady:
		c.mu.Unlock()
		return nil
	}
	origin, gen := c.origin, c.generation
	c.load = LoadLoading
	c.message = ""
	c.mu.Unlock()

	_, err := c.await(ctx, origin, func(p *core.Payload, err error) error {
		return c.applyLoad(gen, origin, p, err)
	})

	return err
}

func (c *Controller) applyLoad(gen uint64, origin string, p *core.Payload, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("discarding stale origin load", "origin", origin)
		return ErrSuperseded
	}

	var next *core.Store
	if err == nil {
		next = core.Merge(c.store, origin, p)
		if !next.HasNode(origin) {
			err = ErrNoOriginData
		}
	}
	if err != nil {
		c.load = LoadFailed
		c.message = fmt.Sprintf("Unable to load relationships for player %s.", origin)
		c.logger.Warn("origin load failed", "origin", origin, "error", err)
		return fmt.Errorf("%w: %w", ErrInitialLoad, err)
	}

	c.load = LoadReady
	c.setStore(next)
	c.logger.Info("origin loaded", "origin", origin, "graph", next.Stats())

	return nil
}

// Tap applies the expand/collapse rules to nodeID:
//
//   - the origin, or a node whose fetch is in flight: ignored
//   - an expanded node: collapsed synchronously
//   - a collapsed node: fetched and merged
//
// When ctx ends before the fetch completes Tap returns ActionPending and
// ctx.Err(); the fetch still completes and is merged.
func (c *Controller) Tap(ctx context.Context, nodeID string) (action Action, err error) {
	id := strings.TrimSpace(nodeID)
	ctx, span := tracer.Start(ctx, "expand.Tap", trace.WithAttributes(attribute.String("node.id", id)))
	defer func() {
		result := tapResult(action, err)
		tapsTotal.WithLabelValues(result).Inc()
		span.SetAttributes(attribute.String("tap.result", result))
		if err != nil && action != ActionPending {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	c.mu.Lock()
	if c.load != LoadReady {
		c.mu.Unlock()
		return ActionIgnored, ErrNotLoaded
	}
	if id == c.origin {
		c.mu.Unlock()
		return ActionIgnored, nil
	}
	if _, busy := c.loading[id]; busy {
		c.mu.Unlock()
		return ActionIgnored, nil
	}
	if c.store.IsExpanded(id) {
		c.setStore(core.Collapse(c.store, id))
		c.mu.Unlock()
		collapsesTotal.Inc()
		c.logger.Debug("node collapsed", "node_id", id)
		return ActionCollapsed, nil
	}
	if !c.store.HasNode(id) {
		c.mu.Unlock()
		return ActionIgnored, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	c.loading[id] = struct{}{}
	gen := c.generation
	c.mu.Unlock()

	pending, err := c.await(ctx, id, func(p *core.Payload, err error) error {
		return c.applyExpansion(gen, id, p, err)
	})
	switch {
	case pending:
		return ActionPending, err
	case err != nil:
		return ActionIgnored, err
	default:
		return ActionExpanded, nil
	}
}

func (c *Controller) applyExpansion(gen uint64, id string, p *core.Payload, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("discarding stale expansion", "node_id", id)
		return ErrSuperseded
	}
	delete(c.loading, id)

	if err != nil {
		c.notice = fmt.Sprintf("Unable to expand player %s.", id)
		c.logger.Warn("expansion failed", "node_id", id, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrExpansionFailed, id, err)
	}

	c.setStore(core.Merge(c.store, id, p))
	c.logger.Debug("node expanded", "node_id", id, "graph", c.store.Stats())

	return nil
}

// await runs the fetch for id on a context detached from ctx and hands the
// result to apply. If ctx ends first it reports pending; the fetch and apply
// still run to completion.
func (c *Controller) await(ctx context.Context, id string, apply func(*core.Payload, error) error) (pending bool, err error) {
	done := make(chan error, 1)
	detached := context.WithoutCancel(ctx)

	inFlight.Inc()
	go func() {
		defer inFlight.Dec()
		p, ferr := c.fetcher.Relationships(detached, id)
		done <- apply(p, ferr)
	}()

	select {
	case err = <-done:
		return false, err
	case <-ctx.Done():
		return true, ctx.Err()
	}
}

// setStore must be called with c.mu held.
func (c *Controller) setStore(s *core.Store) {
	c.store = s
	if c.onChange != nil {
		c.onChange(s)
	}
}

// State reports the expansion state of nodeID.
func (c *Controller) State(nodeID string) NodeState {
	id := strings.TrimSpace(nodeID)
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.loading[id]; ok {
		return StateLoading
	}
	if c.store.IsExpanded(id) {
		return StateExpanded
	}

	return StateCollapsed
}

// Store returns the current graph. The returned store is never mutated.
func (c *Controller) Store() *core.Store {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.store
}

// Origin returns the current origin id.
func (c *Controller) Origin() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.origin
}

// Status returns a snapshot of the load state and messages.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		Origin:  c.origin,
		Load:    c.load,
		Message: c.message,
		Notice:  c.notice,
	}
	if len(c.loading) > 0 {
		st.Loading = make([]string, 0, len(c.loading))
		for id := range c.loading {
			st.Loading = append(st.Loading, id)
		}
		sort.Strings(st.Loading)
	}

	return st
}

// Reset discards the graph and switches to a new origin. Results of fetches
// issued before Reset are dropped when they arrive. Call Load afterwards.
func (c *Controller) Reset(origin string) error {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ErrEmptyOrigin
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.origin = origin
	c.loading = make(map[string]struct{})
	c.load = LoadIdle
	c.message = ""
	c.notice = ""
	c.setStore(core.NewStore(core.WithOrigin(origin)))
	c.logger.Info("origin changed", "origin", origin)

	return nil
}

// DismissNotice clears the transient expansion-failure notice.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	c.notice = ""
	c.mu.Unlock()
}

func tapResult(action Action, err error) string {
	switch {
	case errors.Is(err, ErrExpansionFailed):
		return "failed"
	case errors.Is(err, ErrSuperseded):
		return "superseded"
	case errors.Is(err, ErrUnknownNode), errors.Is(err, ErrNotLoaded):
		return "rejected"
	default:
		return action.String()
	}
}
