// Package table implements the remote data-table driver: it translates
// client-side pagination, sorting and search state into server-side query
// parameters, executes the query and reconciles the results into
// render-ready state.
package table

import (
	"context"
	"sync"
	"time"

	"github.com/wisataops/wisatacli/internal/client/api"
	"github.com/wisataops/wisatacli/internal/logging"
)

// DefaultPageSize is the page length a fresh or reset driver starts with.
const DefaultPageSize = 10

// DefaultDebounce is the quiet interval after the last keystroke before the
// search term is applied.
const DefaultDebounce = 300 * time.Millisecond

// User-visible banner messages for the two fetch failure classes.
const (
	MsgConfigError = "Failed to load table configuration"
	MsgDataError   = "Failed to load data"
)

// State is the driver's lifecycle phase.
type State int

const (
	StateConfigLoading State = iota
	StateConfigReady
	StateDataLoading
	StateDataReady
	StateError
)

// Column is a render-ready column definition mapped from the server's
// column descriptors.
type Column struct {
	Key      string
	Title    string
	Sortable bool
}

// Sort is one active sort entry.
type Sort struct {
	Key  string
	Desc bool
}

// Fetcher is the slice of the API client the driver needs.
type Fetcher interface {
	Columns(ctx context.Context, columnsURL string) ([]api.ColumnSpec, error)
	Rows(ctx context.Context, endpoint string, q *api.RowsQuery) (*api.RowsResult, error)
}

// Driver drives one remote table. All exported methods are safe for
// concurrent use; the debounce timer fires on its own goroutine.
//
// Mutators are pure state transitions. They do not fetch; instead the
// change callback registered with OnChange fires once per coherent state
// change and the owner responds by calling LoadRows. This keeps one fetch
// per logical change even when several fields mutate together.
type Driver struct {
	fetcher Fetcher

	// baseLogger carries the component attribute only; logger is the
	// endpoint-scoped child, rebuilt on every retarget.
	baseLogger logging.Logger
	logger     logging.Logger

	mu               sync.Mutex
	endpoint         string
	columnsURL       string
	state            State
	errMsg           string
	columns          []Column
	configLoading    bool
	pageIndex        int
	pageSize         int
	sorting          []Sort
	rawSearch        string
	debouncedSearch  string
	rows             []map[string]any
	recordsTotal     int
	recordsFiltered  int
	pageCount        int
	draw             int
	debounce         *time.Timer
	debounceInterval time.Duration
	onChange         func()
	closed           bool
}

// NewDriver returns a driver for the given collection endpoint in the
// ConfigLoading state. Call LoadColumns before anything else.
func NewDriver(fetcher Fetcher, endpoint string, logger logging.Logger) *Driver {
	base := logger.With("component", "table")
	return &Driver{
		fetcher:          fetcher,
		baseLogger:       base,
		logger:           base.With("endpoint", endpoint),
		endpoint:         endpoint,
		columnsURL:       endpoint + "/columns",
		state:            StateConfigLoading,
		configLoading:    true,
		pageSize:         DefaultPageSize,
		debounceInterval: DefaultDebounce,
	}
}

// OnChange registers the callback fired after every coherent state change
// that requires a refetch.
func (d *Driver) OnChange(fn func()) {
	d.mu.Lock()
	d.onChange = fn
	d.mu.Unlock()
}

// SetColumnsURL overrides the default "{endpoint}/columns" config location.
func (d *Driver) SetColumnsURL(u string) {
	d.mu.Lock()
	d.columnsURL = u
	d.mu.Unlock()
}

// SetDebounceInterval adjusts the search quiet period.
func (d *Driver) SetDebounceInterval(interval time.Duration) {
	d.mu.Lock()
	d.debounceInterval = interval
	d.mu.Unlock()
}

// SetEndpoint retargets the driver at a new collection and hard-resets all
// query state: page back to {0, DefaultPageSize}, sorting and search
// cleared, totals zeroed, pending debounce cancelled. Stale rows from the
// previous endpoint never render against the new endpoint's columns.
func (d *Driver) SetEndpoint(endpoint string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.debounce != nil {
		d.debounce.Stop()
		d.debounce = nil
	}

	// invalidate any in-flight row response: its echoed draw can no longer
	// match
	d.draw++

	d.endpoint = endpoint
	d.columnsURL = endpoint + "/columns"
	d.logger = d.baseLogger.With("endpoint", endpoint)
	d.state = StateConfigLoading
	d.errMsg = ""
	d.columns = nil
	d.configLoading = true
	d.pageIndex = 0
	d.pageSize = DefaultPageSize
	d.sorting = nil
	d.rawSearch = ""
	d.debouncedSearch = ""
	d.rows = nil
	d.recordsTotal = 0
	d.recordsFiltered = 0
	d.pageCount = 0
}

// LoadColumns fetches and maps the column configuration. A column sorts
// unless the server explicitly says otherwise. On failure the loading flag
// is still cleared so the owner can render an error shell instead of
// spinning forever.
func (d *Driver) LoadColumns(ctx context.Context) error {
	d.mu.Lock()
	url := d.columnsURL
	d.mu.Unlock()

	specs, err := d.fetcher.Columns(ctx, url)

	d.mu.Lock()
	d.configLoading = false
	if err != nil {
		d.state = StateError
		d.errMsg = MsgConfigError
		d.mu.Unlock()
		d.logger.Error(ctx, "column config fetch failed", "error", err)
		return err
	}

	cols := make([]Column, 0, len(specs))
	for _, s := range specs {
		cols = append(cols, Column{
			Key:      s.Data,
			Title:    s.Title,
			Sortable: s.Sortable == nil || *s.Sortable,
		})
	}
	d.columns = cols
	d.state = StateConfigReady
	d.errMsg = ""
	d.mu.Unlock()

	d.notify()
	return nil
}

// LoadRows executes one server-side query for the current state. It is a
// no-op until the column configuration has loaded. Stale responses (an
// echoed draw older than the latest issued) are discarded. On failure the
// previous rows stay in place: stale data beats a blanked table.
func (d *Driver) LoadRows(ctx context.Context) error {
	d.mu.Lock()
	if d.configLoading || len(d.columns) == 0 {
		d.mu.Unlock()
		return nil
	}

	d.draw++
	sent := d.draw
	endpoint := d.endpoint
	query := d.buildQueryLocked(sent)
	d.state = StateDataLoading
	d.mu.Unlock()

	result, err := d.fetcher.Rows(ctx, endpoint, query)

	d.mu.Lock()
	defer d.mu.Unlock()

	if sent != d.draw {
		d.logger.Warn(ctx, "discarding stale table response", "sent", sent, "latest", d.draw)
		return nil
	}

	if err != nil {
		d.state = StateError
		d.errMsg = MsgDataError
		d.logger.Error(ctx, "row fetch failed", "error", err, "draw", sent)
		return err
	}

	d.rows = result.Data
	d.recordsTotal = result.RecordsTotal
	d.recordsFiltered = result.RecordsFiltered
	d.pageCount = ceilDiv(result.RecordsFiltered, d.pageSize)
	d.state = StateDataReady
	d.errMsg = ""
	return nil
}

// buildQueryLocked assembles the wire query from current state. Caller
// holds d.mu.
func (d *Driver) buildQueryLocked(draw int) *api.RowsQuery {
	q := &api.RowsQuery{
		Start:  d.pageIndex * d.pageSize,
		Length: d.pageSize,
		Draw:   draw,
		Search: d.debouncedSearch,
	}

	for _, s := range d.sorting {
		if idx := d.columnIndexLocked(s.Key); idx >= 0 {
			q.Orders = append(q.Orders, api.QueryOrder{Column: idx, Desc: s.Desc})
		}
	}

	for _, c := range d.columns {
		q.Columns = append(q.Columns, api.QueryColumn{
			Data:       c.Key,
			Name:       c.Key,
			Searchable: true,
			Orderable:  c.Sortable,
		})
	}

	return q
}

func (d *Driver) columnIndexLocked(key string) int {
	for i, c := range d.columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// HandleSearchInput records the raw search text immediately and schedules
// the debounced value after the quiet interval, cancelling any previously
// scheduled update. When the debounced value actually changes, the page
// index resets to 0: a new filter invalidates the old page position.
func (d *Driver) HandleSearchInput(text string) {
	d.mu.Lock()
	d.rawSearch = text
	if d.debounce != nil {
		d.debounce.Stop()
	}
	d.debounce = time.AfterFunc(d.debounceInterval, func() {
		d.applyDebouncedSearch(text)
	})
	d.mu.Unlock()
}

func (d *Driver) applyDebouncedSearch(text string) {
	d.mu.Lock()
	if d.closed || d.debouncedSearch == text {
		d.mu.Unlock()
		return
	}
	d.debouncedSearch = text
	d.pageIndex = 0
	d.mu.Unlock()

	d.notify()
}

// SetPageIndex moves to the given zero-based page.
func (d *Driver) SetPageIndex(i int) {
	d.mu.Lock()
	if i < 0 || i == d.pageIndex {
		d.mu.Unlock()
		return
	}
	d.pageIndex = i
	d.mu.Unlock()
	d.notify()
}

// NextPage advances one page when not already on the last known page.
func (d *Driver) NextPage() {
	d.mu.Lock()
	if d.pageCount > 0 && d.pageIndex >= d.pageCount-1 {
		d.mu.Unlock()
		return
	}
	d.pageIndex++
	d.mu.Unlock()
	d.notify()
}

// PrevPage steps back one page.
func (d *Driver) PrevPage() {
	d.mu.Lock()
	if d.pageIndex == 0 {
		d.mu.Unlock()
		return
	}
	d.pageIndex--
	d.mu.Unlock()
	d.notify()
}

// SetPageSize changes the page length, keeping the page index in place.
func (d *Driver) SetPageSize(n int) {
	d.mu.Lock()
	if n <= 0 || n == d.pageSize {
		d.mu.Unlock()
		return
	}
	d.pageSize = n
	d.mu.Unlock()
	d.notify()
}

// SetSorting replaces the whole sort order.
func (d *Driver) SetSorting(sorting []Sort) {
	d.mu.Lock()
	d.sorting = sorting
	d.mu.Unlock()
	d.notify()
}

// ToggleSort cycles the named column through ascending, descending and
// unsorted, dropping any other active sorts. Non-sortable columns are
// ignored.
func (d *Driver) ToggleSort(key string) {
	d.mu.Lock()
	idx := d.columnIndexLocked(key)
	if idx < 0 || !d.columns[idx].Sortable {
		d.mu.Unlock()
		return
	}

	switch {
	case len(d.sorting) == 1 && d.sorting[0].Key == key && !d.sorting[0].Desc:
		d.sorting = []Sort{{Key: key, Desc: true}}
	case len(d.sorting) == 1 && d.sorting[0].Key == key:
		d.sorting = nil
	default:
		d.sorting = []Sort{{Key: key}}
	}
	d.mu.Unlock()
	d.notify()
}

// Close cancels the pending debounce timer. The driver must not be used
// afterwards.
func (d *Driver) Close() {
	d.mu.Lock()
	d.closed = true
	if d.debounce != nil {
		d.debounce.Stop()
		d.debounce = nil
	}
	d.mu.Unlock()
}

func (d *Driver) notify() {
	d.mu.Lock()
	fn := d.onChange
	closed := d.closed
	d.mu.Unlock()
	if fn != nil && !closed {
		fn()
	}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
