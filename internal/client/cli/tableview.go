package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/wisataops/wisatacli/internal/client/api"
	"github.com/wisataops/wisatacli/internal/client/session"
	"github.com/wisataops/wisatacli/internal/client/table"
	"github.com/wisataops/wisatacli/internal/format"
)

// OpenTable enters the data-table subloop for one business collection. The
// headline cards are shown once, then the table driver serves the paging,
// sorting and search commands until the user quits the view.
//
//	n / p        — next / previous page
//	g <n>        — go to page n (1-based)
//	size <n>     — change the page length
//	s <column>   — cycle the sort on a column (asc, desc, off)
//	/<text>      — search; a bare "/" clears the filter
//	r            — refetch the current page
//	q            — leave the table view
func (a *App) OpenTable(ctx context.Context, role, slug string) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	endpoint := api.BusinessEndpoint(role, slug)
	a.nav.Navigate(session.Route{Path: endpoint}, false)
	defer a.nav.Back()

	a.printCards(ctx, role, slug)

	d := table.NewDriver(a.client, endpoint, a.logger)
	defer d.Close()

	// Every coherent state change refetches and redraws. The callback runs
	// on the caller's goroutine, or the debounce timer's for search.
	d.OnChange(func() {
		_ = d.LoadRows(ctx)
		a.renderTable(d)
	})

	if err := d.LoadColumns(ctx); err != nil {
		printlnFn(table.MsgConfigError)
		return err
	}

	scanner := newLineScanner(a.reader)
	for {
		printlnFn(fmt.Sprintf("%s %s [n p g size s /text r q] > ", role, slug))
		line, err := scanner()
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			d.HandleSearchInput(strings.TrimPrefix(line, "/"))
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "n":
			d.NextPage()
		case "p":
			d.PrevPage()
		case "g":
			if len(args) == 0 {
				printlnFn("Usage: g <page>")
				continue
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				printlnFn("Usage: g <page>")
				continue
			}
			d.SetPageIndex(n - 1)
		case "size":
			if len(args) == 0 {
				printlnFn("Usage: size <n>")
				continue
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				printlnFn("Usage: size <n>")
				continue
			}
			d.SetPageSize(n)
		case "s":
			if len(args) == 0 {
				printlnFn("Usage: s <column>")
				continue
			}
			d.ToggleSort(args[0])
		case "r":
			_ = d.LoadRows(ctx)
			a.renderTable(d)
		case "q", "quit", "exit":
			return nil
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// printCards shows the collection's headline cards, rendering numeric
// values as rupiah.
func (a *App) printCards(ctx context.Context, role, slug string) {
	cards, err := a.client.Cards(ctx, role, slug)
	if err != nil {
		a.logger.Warn(ctx, "cards fetch failed", "error", err)
		return
	}
	for _, c := range cards {
		printlnFn(fmt.Sprintf("%-24s %s", c.Name+":", formatAmount(c.Value)))
	}
}

// renderTable draws the current driver snapshot: an error banner when one
// is up, the column header with sort markers, the rows and the pager line.
func (a *App) renderTable(d *table.Driver) {
	snap := d.Snapshot()

	if snap.Error != "" {
		printlnFn("!", snap.Error)
	}
	if len(snap.Columns) == 0 {
		return
	}

	widths := columnWidths(snap)

	header := make([]string, 0, len(snap.Columns))
	for i, c := range snap.Columns {
		header = append(header, pad(c.Title+sortMarker(snap.Sorting, c.Key), widths[i]))
	}
	printlnFn(strings.Join(header, "  "))

	for _, row := range snap.Rows {
		cells := make([]string, 0, len(snap.Columns))
		for i, c := range snap.Columns {
			cells = append(cells, pad(cellString(row[c.Key]), widths[i]))
		}
		printlnFn(strings.Join(cells, "  "))
	}

	printlnFn(pagerLine(snap, d.PageNumbers()))
}

// pagerLine renders the record totals and the windowed page list, the
// current page bracketed.
func pagerLine(snap table.Snapshot, pages []table.PageItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s of %d %s",
		len(snap.Rows), format.Pluralize(len(snap.Rows), "row", "rows"),
		snap.RecordsFiltered, format.Pluralize(snap.RecordsFiltered, "record", "records"))
	if snap.RecordsFiltered != snap.RecordsTotal {
		fmt.Fprintf(&b, " (filtered from %d)", snap.RecordsTotal)
	}
	b.WriteString("  pages:")
	for _, p := range pages {
		if p.Ellipsis {
			b.WriteString(" ...")
			continue
		}
		if p.Number == snap.PageIndex+1 {
			fmt.Fprintf(&b, " [%d]", p.Number)
		} else {
			fmt.Fprintf(&b, " %d", p.Number)
		}
	}
	return b.String()
}

func sortMarker(sorting []table.Sort, key string) string {
	for _, s := range sorting {
		if s.Key == key {
			if s.Desc {
				return " v"
			}
			return " ^"
		}
	}
	return ""
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func columnWidths(snap table.Snapshot) []int {
	widths := make([]int, len(snap.Columns))
	for i, c := range snap.Columns {
		widths[i] = len(c.Title) + 2
		for _, row := range snap.Rows {
			if l := len(cellString(row[c.Key])); l > widths[i] {
				widths[i] = l
			}
		}
	}
	return widths
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

// newLineScanner adapts the app's buffered reader into a line-at-a-time
// function so the table subloop shares stdin with the outer REPL.
func newLineScanner(r interface{ ReadString(byte) (string, error) }) func() (string, error) {
	return func() (string, error) {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return line, nil
	}
}
