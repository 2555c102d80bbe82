package table

// Snapshot is an atomic copy of the driver's render state.
type Snapshot struct {
	Endpoint        string
	State           State
	Error           string
	Columns         []Column
	Rows            []map[string]any
	PageIndex       int
	PageSize        int
	PageCount       int
	RecordsTotal    int
	RecordsFiltered int
	Sorting         []Sort
	RawSearch       string
	DebouncedSearch string
}

// Snapshot returns a consistent copy of the current state for rendering.
func (d *Driver) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	return Snapshot{
		Endpoint:        d.endpoint,
		State:           d.state,
		Error:           d.errMsg,
		Columns:         append([]Column(nil), d.columns...),
		Rows:            append([]map[string]any(nil), d.rows...),
		PageIndex:       d.pageIndex,
		PageSize:        d.pageSize,
		PageCount:       d.pageCount,
		RecordsTotal:    d.recordsTotal,
		RecordsFiltered: d.recordsFiltered,
		Sorting:         append([]Sort(nil), d.sorting...),
		RawSearch:       d.rawSearch,
		DebouncedSearch: d.debouncedSearch,
	}
}
