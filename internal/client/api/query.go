package api

import (
	"fmt"
	"net/url"
	"strconv"
)

// QueryColumn is one column entry of a server-side table query. The backend
// addresses columns by their 0-based position, so order matters.
type QueryColumn struct {
	Data       string
	Name       string
	Searchable bool
	Orderable  bool
}

// QueryOrder is one (column index, direction) sort pair.
type QueryOrder struct {
	Column int
	Desc   bool
}

// RowsQuery is the full server-side query state for one page fetch:
// pagination offsets, the monotonic draw counter, an optional global search
// term, the active sort pairs, and the column descriptors.
type RowsQuery struct {
	Start   int
	Length  int
	Draw    int
	Search  string
	Orders  []QueryOrder
	Columns []QueryColumn
}

// Values encodes the query into the wire parameter set:
// start, length, draw, search[value], search[regex], order[i][column],
// order[i][dir] and columns[i][data|name|searchable|orderable|search[...]].
func (q *RowsQuery) Values() url.Values {
	params := url.Values{}
	params.Set("start", strconv.Itoa(q.Start))
	params.Set("length", strconv.Itoa(q.Length))
	params.Set("draw", strconv.Itoa(q.Draw))

	if q.Search != "" {
		params.Set("search[value]", q.Search)
		params.Set("search[regex]", "false")
	}

	for i, o := range q.Orders {
		dir := "asc"
		if o.Desc {
			dir = "desc"
		}
		params.Set(fmt.Sprintf("order[%d][column]", i), strconv.Itoa(o.Column))
		params.Set(fmt.Sprintf("order[%d][dir]", i), dir)
	}

	for i, c := range q.Columns {
		params.Set(fmt.Sprintf("columns[%d][data]", i), c.Data)
		params.Set(fmt.Sprintf("columns[%d][name]", i), c.Name)
		params.Set(fmt.Sprintf("columns[%d][searchable]", i), strconv.FormatBool(c.Searchable))
		params.Set(fmt.Sprintf("columns[%d][orderable]", i), strconv.FormatBool(c.Orderable))
		params.Set(fmt.Sprintf("columns[%d][search][value]", i), "")
		params.Set(fmt.Sprintf("columns[%d][search][regex]", i), "false")
	}

	return params
}
