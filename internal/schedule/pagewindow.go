package schedule

// DefaultGroupSize is how many page buttons the selector shows at once.
const DefaultGroupSize = 4

// ComputeWindow returns the page indices visible for the group containing
// currentPage: [g*groupSize, min((g+1)*groupSize, totalPages)) with
// g = currentPage/groupSize. The trailing group may be shorter than
// groupSize.
func ComputeWindow(currentPage, totalPages, groupSize int) []int {
	if totalPages <= 0 || groupSize <= 0 || currentPage < 0 || currentPage >= totalPages {
		return nil
	}
	group := currentPage / groupSize
	first := group * groupSize
	last := first + groupSize
	if last > totalPages {
		last = totalPages
	}
	pages := make([]int, 0, last-first)
	for p := first; p < last; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Pager tracks the current page and its group window for one paginated
// list. Rejected navigation is a silent no-op: callers can only tell a
// change went through by the page-change callback firing.
type Pager struct {
	currentPage  int
	totalPages   int
	groupSize    int
	loading      bool
	onPageChange func(page int)
}

func NewPager(groupSize int, onPageChange func(page int)) *Pager {
	if groupSize <= 0 {
		groupSize = DefaultGroupSize
	}
	return &Pager{groupSize: groupSize, onPageChange: onPageChange}
}

func (p *Pager) CurrentPage() int { return p.currentPage }
func (p *Pager) TotalPages() int  { return p.totalPages }
func (p *Pager) Loading() bool    { return p.loading }

// CurrentGroup is always derived from the page, so the
// group = page/groupSize invariant cannot drift.
func (p *Pager) CurrentGroup() int { return p.currentPage / p.groupSize }

func (p *Pager) Window() []int {
	return ComputeWindow(p.currentPage, p.totalPages, p.groupSize)
}

func (p *Pager) SetTotalPages(n int) {
	if n < 0 {
		n = 0
	}
	p.totalPages = n
}

func (p *Pager) SetLoading(loading bool) { p.loading = loading }

// Reset puts the pager back on page 0 without emitting a page-change
// event, for list reloads that restart pagination (initial load, filter
// changes).
func (p *Pager) Reset() {
	p.currentPage = 0
	p.loading = false
}

// ChangePage requests the given page. Requests for the current page,
// out-of-range pages, or any page while a load is in flight are dropped.
// Returns whether the change was accepted.
func (p *Pager) ChangePage(page int) bool {
	if p.loading || page == p.currentPage || page < 0 || page >= p.totalPages {
		return false
	}
	p.currentPage = page
	if p.onPageChange != nil {
		p.onPageChange(page)
	}
	return true
}

// PreviousGroup jumps to the first page of the previous group. No-op when
// already in group 0.
func (p *Pager) PreviousGroup() bool {
	group := p.CurrentGroup()
	if group == 0 {
		return false
	}
	return p.ChangePage((group - 1) * p.groupSize)
}

// NextGroup jumps to the first page of the next group. No-op when the
// next group starts at or past the page count.
func (p *Pager) NextGroup() bool {
	group := p.CurrentGroup()
	if (group+1)*p.groupSize >= p.totalPages {
		return false
	}
	return p.ChangePage((group + 1) * p.groupSize)
}
