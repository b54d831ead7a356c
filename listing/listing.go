// Package listing provides the generic controller behind every paginated
// list screen in the console. One controller instance backs one screen: it
// holds the current page, runs at most one authoritative fetch at a time
// (last caller wins), and surfaces failures as state rather than panics so
// the screen stays interactive while an error banner is shown.
package listing

import "context"

// DefaultPageSize is used when a controller is constructed without one.
const DefaultPageSize = 10

// Error kinds carried by ErrorInfo. Validation errors and transport errors
// are the same shape at this layer; the kind is how callers tell them apart
// when the backend supplies one.
const (
	KindTransport  = "transport"
	KindValidation = "validation"
	KindUnknown    = "unknown"
)

// ErrorInfo is the normalized failure shape for everything this package
// surfaces.
type ErrorInfo struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// Page is one materialized slice of a remote collection plus its pagination
// metadata. Page indices are 0-based.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// EmptyPage is the page a controller holds before its first load.
func EmptyPage[T any](pageSize int) Page[T] {
	return Page[T]{Items: []T{}, PageSize: pageSize}
}

// QueryState is the caller-controlled input to the next fetch.
type QueryState struct {
	Page     int
	PageSize int
	Search   string
	Filters  map[string]string
}

func (q QueryState) clone() QueryState {
	filters := make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		filters[k] = v
	}
	q.Filters = filters
	return q
}

// FetchFunc retrieves one page of the remote collection. Implementations
// must convert every failure, transport or otherwise, into an ErrorInfo; a
// nil ErrorInfo means the page is valid.
type FetchFunc[T any] func(ctx context.Context, query QueryState) (Page[T], *ErrorInfo)

// MutationFunc is an arbitrary write against the remote collection.
type MutationFunc func(ctx context.Context) *ErrorInfo

// State is the snapshot the binding layer renders.
type State[T any] struct {
	Items     Page[T]
	IsLoading bool
	Err       *ErrorInfo
}
