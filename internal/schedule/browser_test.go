package schedule

import (
	"errors"
	"sync"
	"testing"

	"inmovisitas/internal/entities"
	"inmovisitas/internal/utils"
)

func newTestBrowser(repo SlotRepository, notifier Notifier) *Browser {
	sel := NewSelection(&fakeClock{now: testNow}, &fakeBooking{}, notifier)
	return NewBrowser(repo, notifier, sel, 10)
}

func slotPage(totalPages int, slots ...entities.TimeSlot) *entities.SlotPage {
	return &entities.SlotPage{
		Content:       slots,
		TotalPages:    totalPages,
		TotalElements: int64(len(slots)),
	}
}

func TestBrowser_LoadInitial(t *testing.T) {
	repo := &fakeSlotRepo{listResult: slotPage(3, upcomingSlot(1), upcomingSlot(2))}
	b := newTestBrowser(repo, &fakeNotifier{})

	b.LoadInitial(9)

	if len(repo.listCalls) != 1 {
		t.Fatalf("expected one fetch, got %d", len(repo.listCalls))
	}
	call := repo.listCalls[0]
	if call.listingID != 9 || call.page != 0 || call.filter != nil {
		t.Fatalf("expected unfiltered page 0 of listing 9, got %+v", call)
	}
	if len(b.Slots()) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(b.Slots()))
	}
	if b.TotalPages() != 3 {
		t.Fatalf("expected 3 total pages, got %d", b.TotalPages())
	}
	if b.Loading() {
		t.Fatal("expected loading to be cleared")
	}
}

func TestBrowserApplyFilter_ResetsPageAndClearsSelection(t *testing.T) {
	repo := &fakeSlotRepo{listResult: slotPage(10, upcomingSlot(1))}
	b := newTestBrowser(repo, &fakeNotifier{})

	b.LoadInitial(9)
	b.ChangePage(3)
	b.Selection().Select(upcomingSlot(1))

	b.ApplyFilter(FilterInput{StartDate: dateString(2), StartTime: "08:00"})

	if b.CurrentPage() != 0 {
		t.Fatalf("expected page reset to 0, got %d", b.CurrentPage())
	}
	if b.Selection().Selected() != nil {
		t.Fatal("expected the selection to be cleared")
	}

	call := repo.listCalls[len(repo.listCalls)-1]
	if call.page != 0 || call.filter == nil || call.filter.StartAt == nil || call.filter.EndAt != nil {
		t.Fatalf("expected page 0 with only a start bound, got %+v", call)
	}
	wantStart, _ := utils.CombineDateTime(dateString(2), "08:00")
	if !call.filter.StartAt.Equal(wantStart) {
		t.Fatalf("expected start bound %v, got %v", wantStart, *call.filter.StartAt)
	}
}

func TestBrowserApplyFilter_BlankDateDropsBound(t *testing.T) {
	repo := &fakeSlotRepo{listResult: slotPage(10)}
	b := newTestBrowser(repo, &fakeNotifier{})

	b.LoadInitial(9)
	b.ApplyFilter(FilterInput{StartDate: dateString(2), StartTime: "08:00"})

	// Clearing the date must not leave the old bound behind, even though
	// the time field still holds a value.
	b.ApplyFilter(FilterInput{StartTime: "08:00"})

	call := repo.listCalls[len(repo.listCalls)-1]
	if call.filter != nil {
		t.Fatalf("expected no bounds after the date was cleared, got %+v", call.filter)
	}
}

func TestBrowserChangePage_PreservesFilter(t *testing.T) {
	repo := &fakeSlotRepo{listResult: slotPage(10)}
	b := newTestBrowser(repo, &fakeNotifier{})

	b.LoadInitial(9)
	b.ApplyFilter(FilterInput{EndDate: dateString(5)})
	b.ChangePage(1)

	call := repo.listCalls[len(repo.listCalls)-1]
	if call.page != 1 {
		t.Fatalf("expected page 1, got %d", call.page)
	}
	if call.filter == nil || call.filter.EndAt == nil || call.filter.StartAt != nil {
		t.Fatalf("expected the end bound to survive the page change, got %+v", call.filter)
	}
}

func TestBrowserClearFilters_ReloadsUnfiltered(t *testing.T) {
	repo := &fakeSlotRepo{listResult: slotPage(10)}
	b := newTestBrowser(repo, &fakeNotifier{})

	b.LoadInitial(9)
	b.ApplyFilter(FilterInput{StartDate: dateString(2), EndDate: dateString(5)})
	b.ClearFilters()

	call := repo.listCalls[len(repo.listCalls)-1]
	if call.page != 0 || call.filter != nil {
		t.Fatalf("expected an unfiltered page 0 reload, got %+v", call)
	}
	input := b.FilterInput()
	if input.StartDate != "" || input.StartTime != "00:00" || input.EndTime != "23:59" {
		t.Fatalf("expected default time bounds restored, got %+v", input)
	}
}

func TestBrowserFetchFailure_KeepsSlots(t *testing.T) {
	repo := &fakeSlotRepo{listResult: slotPage(5, upcomingSlot(1), upcomingSlot(2))}
	notifier := &fakeNotifier{}
	b := newTestBrowser(repo, notifier)

	b.LoadInitial(9)
	repo.listErr = errors.New("connection reset")
	b.ChangePage(1)

	if len(b.Slots()) != 2 {
		t.Fatalf("expected the previous slots to survive the failure, got %d", len(b.Slots()))
	}
	if b.Loading() {
		t.Fatal("expected the loading indicator to be cleared")
	}
	if len(notifier.failures) != 1 || notifier.failures[0] != listFallbackMessage {
		t.Fatalf("expected the fetch failure to be notified, got %v", notifier.failures)
	}
}

// gatedRepo blocks every ListSlots call until the test releases it, so
// overlapping requests can be resolved in a chosen order.
type gatedRepo struct {
	mu      sync.Mutex
	started chan listCall
	replies []chan listReply
	calls   int
}

type listReply struct {
	page *entities.SlotPage
	err  error
}

func newGatedRepo() *gatedRepo {
	return &gatedRepo{started: make(chan listCall)}
}

func (r *gatedRepo) ListSlots(listingID, page, size int, filter *entities.AvailabilityFilter) (*entities.SlotPage, error) {
	r.mu.Lock()
	r.calls++
	reply := make(chan listReply)
	r.replies = append(r.replies, reply)
	r.mu.Unlock()

	r.started <- listCall{listingID: listingID, page: page, size: size, filter: filter}
	res := <-reply
	return res.page, res.err
}

func (r *gatedRepo) CreateSlot(req entities.SlotCreateRequest) (*entities.TimeSlot, error) {
	return nil, errors.New("not implemented")
}

func (r *gatedRepo) release(idx int, page *entities.SlotPage, err error) {
	r.mu.Lock()
	reply := r.replies[idx]
	r.mu.Unlock()
	reply <- listReply{page: page, err: err}
}

func (r *gatedRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestBrowser_StaleResponseDiscarded(t *testing.T) {
	repo := newGatedRepo()
	b := newTestBrowser(repo, &fakeNotifier{})

	done := make(chan struct{})
	go func() { b.LoadInitial(9); done <- struct{}{} }()
	<-repo.started
	repo.release(0, slotPage(5, upcomingSlot(1)), nil)
	<-done

	// A page change is issued and left hanging...
	go func() { b.ChangePage(1); done <- struct{}{} }()
	<-repo.started

	// ...then a filter change supersedes it.
	go func() { b.ApplyFilter(FilterInput{StartDate: dateString(2)}); done <- struct{}{} }()
	<-repo.started

	fresh := upcomingSlot(42)
	repo.release(2, slotPage(1, fresh), nil)
	<-done

	// The stale page-1 response resolves last and must be discarded.
	stale := upcomingSlot(99)
	repo.release(1, slotPage(5, stale, stale, stale), nil)
	<-done

	slots := b.Slots()
	if len(slots) != 1 || slots[0].ID != fresh.ID {
		t.Fatalf("expected only the fresh result to be kept, got %+v", slots)
	}
	if b.Loading() {
		t.Fatal("expected loading to be cleared by the fresh result")
	}
	if b.CurrentPage() != 0 {
		t.Fatalf("expected to stay on the filtered page 0, got %d", b.CurrentPage())
	}
}

func TestBrowserChangePage_WhileLoadingRejected(t *testing.T) {
	repo := newGatedRepo()
	b := newTestBrowser(repo, &fakeNotifier{})

	done := make(chan struct{})
	go func() { b.LoadInitial(9); done <- struct{}{} }()
	<-repo.started
	repo.release(0, slotPage(5), nil)
	<-done

	go func() { b.ChangePage(1); done <- struct{}{} }()
	<-repo.started

	// While that load is in flight, further page changes are dropped on
	// the floor: no new request, no page movement.
	b.ChangePage(2)
	if repo.callCount() != 2 {
		t.Fatalf("expected the second change to issue no request, got %d calls", repo.callCount())
	}

	repo.release(1, slotPage(5), nil)
	<-done

	if b.CurrentPage() != 1 {
		t.Fatalf("expected to land on page 1, got %d", b.CurrentPage())
	}
}
