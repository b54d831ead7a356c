package listing

import (
	"context"
	"sync"
)

// Controller manages the fetch, render, mutate, refetch cycle over one
// remote collection. It is safe for concurrent use; the binding layer reads
// State and re-renders whenever the OnChange hook fires.
type Controller[T any] struct {
	fetch    FetchFunc[T]
	onChange func()

	lock  sync.Mutex
	query QueryState
	state State[T]
	seq   uint64
}

type Option[T any] func(*Controller[T])

// WithOnChange registers a hook invoked after every state transition. The
// hook must not call back into the controller synchronously from a blocking
// section; signalling a channel or scheduling a re-render is the intended
// use.
func WithOnChange[T any](fn func()) Option[T] {
	return func(c *Controller[T]) {
		c.onChange = fn
	}
}

// New creates a controller bound to fetch with the given initial query. A
// non-positive page size falls back to DefaultPageSize.
func New[T any](fetch FetchFunc[T], initial QueryState, options ...Option[T]) *Controller[T] {
	if initial.PageSize <= 0 {
		initial.PageSize = DefaultPageSize
	}
	if initial.Filters == nil {
		initial.Filters = make(map[string]string)
	}

	controller := &Controller[T]{
		fetch: fetch,
		query: initial,
	}
	controller.state.Items = EmptyPage[T](initial.PageSize)

	for _, opt := range options {
		opt(controller)
	}
	return controller
}

// State returns a snapshot of the controller's current state. The items
// slice is copied so a later load cannot mutate a snapshot a caller holds.
func (c *Controller[T]) State() State[T] {
	c.lock.Lock()
	defer c.lock.Unlock()

	snapshot := c.state
	snapshot.Items.Items = append(c.state.Items.Items[:0:0], c.state.Items.Items...)
	return snapshot
}

// Query returns a copy of the query driving the next fetch.
func (c *Controller[T]) Query() QueryState {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.query.clone()
}

// Load starts a fetch with the current query and returns immediately; the
// result lands in State asynchronously. When loads overlap, the last caller
// wins: each load takes a sequence number, and a response whose sequence is
// no longer current is discarded when it resolves. A failed fetch records
// the error and leaves the previous items visible.
func (c *Controller[T]) Load(ctx context.Context) {
	c.lock.Lock()
	c.seq++
	seq := c.seq
	query := c.query.clone()
	c.state.IsLoading = true
	c.state.Err = nil
	c.lock.Unlock()
	c.notify()

	go func() {
		page, errInfo := c.fetch(ctx, query)

		c.lock.Lock()
		if seq != c.seq {
			// Superseded by a newer load.
			c.lock.Unlock()
			return
		}
		if errInfo != nil {
			c.state.Err = errInfo
		} else {
			c.state.Items = normalizePage(page)
			c.state.Err = nil
		}
		c.state.IsLoading = false
		c.lock.Unlock()
		c.notify()
	}()
}

// SetSearch replaces the free-text search term, resets to the first page,
// and reloads.
func (c *Controller[T]) SetSearch(ctx context.Context, term string) {
	c.lock.Lock()
	c.query.Search = term
	c.query.Page = 0
	c.lock.Unlock()
	c.Load(ctx)
}

// SetFilter sets or removes one filter entry, resets to the first page, and
// reloads. A nil value removes the key; an empty string is a valid filter
// value ("show only blank X") and is kept.
func (c *Controller[T]) SetFilter(ctx context.Context, key string, value *string) {
	c.lock.Lock()
	if value == nil {
		delete(c.query.Filters, key)
	} else {
		c.query.Filters[key] = *value
	}
	c.query.Page = 0
	c.lock.Unlock()
	c.Load(ctx)
}

// SetPage moves to the given 0-based page index without resetting it and
// reloads. Out-of-range indices are clamped against the last loaded page
// count.
func (c *Controller[T]) SetPage(ctx context.Context, index int) {
	c.lock.Lock()
	if index < 0 {
		index = 0
	}
	if totalPages := c.state.Items.TotalPages; totalPages > 0 && index >= totalPages {
		index = totalPages - 1
	}
	c.query.Page = index
	c.lock.Unlock()
	c.Load(ctx)
}

// MutateThenReload runs the mutation and, only when it succeeds, refreshes
// the current page from the server. Mutation responses do not carry enough
// to rebuild list state client-side (totals shift when a row is deleted
// from a non-last page), so the contract is mutate, then refetch truth. On
// failure the items are left as pre-mutation truth, the error is recorded,
// and the ErrorInfo is returned for the caller to surface.
func (c *Controller[T]) MutateThenReload(ctx context.Context, mutation MutationFunc) *ErrorInfo {
	if errInfo := mutation(ctx); errInfo != nil {
		c.lock.Lock()
		c.state.Err = errInfo
		c.lock.Unlock()
		c.notify()
		return errInfo
	}
	c.Load(ctx)
	return nil
}

func (c *Controller[T]) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

// normalizePage enforces the page invariants regardless of what the
// collaborator returned: items is never nil and never longer than the page
// size, and TotalPages is recomputed as ceil(TotalCount/PageSize) with 0
// pages for an empty collection.
func normalizePage[T any](page Page[T]) Page[T] {
	if page.Items == nil {
		page.Items = []T{}
	}
	if page.PageSize > 0 {
		if len(page.Items) > page.PageSize {
			page.Items = page.Items[:page.PageSize]
		}
		page.TotalPages = (page.TotalCount + page.PageSize - 1) / page.PageSize
	} else {
		page.TotalPages = 0
	}
	return page
}
