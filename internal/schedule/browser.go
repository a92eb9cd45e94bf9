package schedule

import (
	"sync"

	"inmovisitas/internal/entities"
	"inmovisitas/internal/utils"
)

const (
	// Default time-of-day bounds the filter inputs start from.
	defaultFilterStartTime = "00:00"
	defaultFilterEndTime   = "23:59"

	listFallbackMessage = "could not load available visit slots"
)

// FilterInput is the raw date/time filter state as the visitor typed it.
// A bound only reaches the repository while its date field is non-blank;
// clearing a date drops the bound even if a time is still filled in.
type FilterInput struct {
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
}

// DefaultFilterInput returns an empty filter with the start-of-day /
// end-of-day time defaults restored.
func DefaultFilterInput() FilterInput {
	return FilterInput{StartTime: defaultFilterStartTime, EndTime: defaultFilterEndTime}
}

// Bounds converts the raw input into repository bounds, ignoring blank
// sides. Unparseable input on a side drops that bound rather than
// guessing. Returns nil when no bound is active.
func (in FilterInput) Bounds() *entities.AvailabilityFilter {
	var filter entities.AvailabilityFilter
	if in.StartDate != "" {
		startTime := in.StartTime
		if startTime == "" {
			startTime = defaultFilterStartTime
		}
		if t, err := utils.CombineDateTime(in.StartDate, startTime); err == nil {
			filter.StartAt = &t
		}
	}
	if in.EndDate != "" {
		endTime := in.EndTime
		if endTime == "" {
			endTime = defaultFilterEndTime
		}
		if t, err := utils.CombineDateTime(in.EndDate, endTime); err == nil {
			filter.EndAt = &t
		}
	}
	if filter.StartAt == nil && filter.EndAt == nil {
		return nil
	}
	return &filter
}

// Browser pages through one listing's open slots, narrowed by the active
// filter, and keeps pagination and the current selection consistent with
// it. Fetches carry a sequence number; only the most recently issued
// request may apply its result, so rapid page/filter changes cannot leave
// a stale page on screen.
type Browser struct {
	repo     SlotRepository
	notifier Notifier
	pageSize int

	mu            sync.Mutex
	listingID     int
	input         FilterInput
	active        *entities.AvailabilityFilter
	slots         []entities.TimeSlot
	totalElements int64
	pager         *Pager
	selection     *Selection
	seq           uint64
}

func NewBrowser(repo SlotRepository, notifier Notifier, selection *Selection, pageSize int) *Browser {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Browser{
		repo:      repo,
		notifier:  notifier,
		selection: selection,
		pageSize:  pageSize,
		input:     DefaultFilterInput(),
		pager:     NewPager(DefaultGroupSize, nil),
	}
}

// LoadInitial starts a fresh browsing session on a listing: page 0, no
// filter, nothing selected.
func (b *Browser) LoadInitial(listingID int) {
	b.mu.Lock()
	b.listingID = listingID
	b.input = DefaultFilterInput()
	b.active = nil
	b.pager.Reset()
	b.selection.Clear()
	seq, filter := b.beginFetchLocked()
	b.mu.Unlock()
	b.fetch(seq, 0, filter)
}

// ApplyFilter replaces the active filter, restarts pagination at page 0
// and clears the selection, then refetches.
func (b *Browser) ApplyFilter(input FilterInput) {
	b.mu.Lock()
	b.input = input
	b.active = input.Bounds()
	b.pager.Reset()
	b.selection.Clear()
	seq, filter := b.beginFetchLocked()
	b.mu.Unlock()
	b.fetch(seq, 0, filter)
}

// ClearFilters drops all bounds, restores the default time-of-day inputs
// and reloads page 0 unfiltered.
func (b *Browser) ClearFilters() {
	b.ApplyFilter(DefaultFilterInput())
}

// ChangePage fetches the given page under the active filter. Out-of-range
// targets, the current page, or a change while a load is in flight are
// silently dropped, pager rules.
func (b *Browser) ChangePage(page int) {
	b.mu.Lock()
	if !b.pager.ChangePage(page) {
		b.mu.Unlock()
		return
	}
	b.selection.Clear()
	seq, filter := b.beginFetchLocked()
	b.mu.Unlock()
	b.fetch(seq, page, filter)
}

// PreviousGroup moves to the first page of the previous pagination group.
func (b *Browser) PreviousGroup() {
	b.groupNav(func(p *Pager) bool { return p.PreviousGroup() })
}

// NextGroup moves to the first page of the next pagination group.
func (b *Browser) NextGroup() {
	b.groupNav(func(p *Pager) bool { return p.NextGroup() })
}

func (b *Browser) groupNav(nav func(*Pager) bool) {
	b.mu.Lock()
	if !nav(b.pager) {
		b.mu.Unlock()
		return
	}
	page := b.pager.CurrentPage()
	b.selection.Clear()
	seq, filter := b.beginFetchLocked()
	b.mu.Unlock()
	b.fetch(seq, page, filter)
}

func (b *Browser) Slots() []entities.TimeSlot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slots
}

func (b *Browser) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pager.Loading()
}

func (b *Browser) CurrentPage() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pager.CurrentPage()
}

func (b *Browser) TotalPages() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pager.TotalPages()
}

func (b *Browser) TotalElements() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalElements
}

// PageWindow returns the page indices the selector should currently show.
func (b *Browser) PageWindow() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pager.Window()
}

func (b *Browser) FilterInput() FilterInput {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.input
}

func (b *Browser) Selection() *Selection { return b.selection }

// beginFetchLocked stamps a new request sequence and raises the loading
// flag. Callers must hold b.mu.
func (b *Browser) beginFetchLocked() (uint64, *entities.AvailabilityFilter) {
	b.seq++
	b.pager.SetLoading(true)
	return b.seq, b.active
}

func (b *Browser) fetch(seq uint64, page int, filter *entities.AvailabilityFilter) {
	b.mu.Lock()
	listingID := b.listingID
	b.mu.Unlock()

	result, err := b.repo.ListSlots(listingID, page, b.pageSize, filter)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq {
		// A newer request superseded this one; its result, success or
		// failure, no longer matters.
		return
	}
	b.pager.SetLoading(false)
	if err != nil {
		// Keep whatever was on screen; only the loading indicator goes away.
		b.notifier.Error(serverMessageOr(err, listFallbackMessage))
		return
	}
	b.slots = result.Content
	b.totalElements = result.TotalElements
	b.pager.SetTotalPages(result.TotalPages)
}
