package table

// PageItem is one pager entry: either a concrete 1-based page number or an
// ellipsis gap.
type PageItem struct {
	Number   int
	Ellipsis bool
}

// PageNumbers computes the pager line for totalPages with the 1-based
// currentPage highlighted. Up to seven pages are listed in full; beyond
// that the first and last page always show, with a window of current±1 and
// ellipses on whichever sides have been elided. This keeps the pager width
// bounded for large result sets.
func PageNumbers(totalPages, currentPage int) []PageItem {
	var pages []PageItem

	if totalPages <= 7 {
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, PageItem{Number: i})
		}
		return pages
	}

	pages = append(pages, PageItem{Number: 1})

	if currentPage > 3 {
		pages = append(pages, PageItem{Ellipsis: true})
	}

	start := max(2, currentPage-1)
	end := min(totalPages-1, currentPage+1)
	for i := start; i <= end; i++ {
		pages = append(pages, PageItem{Number: i})
	}

	if currentPage < totalPages-2 {
		pages = append(pages, PageItem{Ellipsis: true})
	}

	pages = append(pages, PageItem{Number: totalPages})
	return pages
}

// PageNumbers renders the pager line for the driver's current page.
func (d *Driver) PageNumbers() []PageItem {
	d.mu.Lock()
	total, current := d.pageCount, d.pageIndex+1
	d.mu.Unlock()
	return PageNumbers(total, current)
}
