package schedule

import "testing"

func TestComputeWindow_ContiguousRuns(t *testing.T) {
	const groupSize = 4
	for totalPages := 1; totalPages <= 13; totalPages++ {
		for currentPage := 0; currentPage < totalPages; currentPage++ {
			window := ComputeWindow(currentPage, totalPages, groupSize)

			group := currentPage / groupSize
			wantLen := groupSize
			if remaining := totalPages - group*groupSize; remaining < wantLen {
				wantLen = remaining
			}
			if len(window) != wantLen {
				t.Fatalf("totalPages=%d currentPage=%d: expected %d entries, got %d",
					totalPages, currentPage, wantLen, len(window))
			}
			for i, p := range window {
				if p != group*groupSize+i {
					t.Fatalf("totalPages=%d currentPage=%d: expected window[%d]=%d, got %d",
						totalPages, currentPage, i, group*groupSize+i, p)
				}
			}
		}
	}
}

func TestComputeWindow_TenPages(t *testing.T) {
	cases := []struct {
		currentPage int
		want        []int
	}{
		{0, []int{0, 1, 2, 3}},
		{3, []int{0, 1, 2, 3}},
		{4, []int{4, 5, 6, 7}},
		{7, []int{4, 5, 6, 7}},
		{8, []int{8, 9}},
		{9, []int{8, 9}},
	}
	for _, c := range cases {
		got := ComputeWindow(c.currentPage, 10, 4)
		if len(got) != len(c.want) {
			t.Fatalf("page %d: expected %v, got %v", c.currentPage, c.want, got)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("page %d: expected %v, got %v", c.currentPage, c.want, got)
			}
		}
	}
}

func TestComputeWindow_OutOfRange(t *testing.T) {
	if got := ComputeWindow(-1, 10, 4); got != nil {
		t.Fatalf("expected nil for negative page, got %v", got)
	}
	if got := ComputeWindow(10, 10, 4); got != nil {
		t.Fatalf("expected nil for page past the end, got %v", got)
	}
	if got := ComputeWindow(0, 0, 4); got != nil {
		t.Fatalf("expected nil for zero pages, got %v", got)
	}
}

func TestPager_GroupNavigation(t *testing.T) {
	var events []int
	p := NewPager(4, func(page int) { events = append(events, page) })
	p.SetTotalPages(10)

	if !p.ChangePage(5) {
		t.Fatal("expected ChangePage(5) to be accepted")
	}
	if p.CurrentGroup() != 1 {
		t.Fatalf("expected group 1, got %d", p.CurrentGroup())
	}
	window := p.Window()
	if len(window) != 4 || window[0] != 4 || window[3] != 7 {
		t.Fatalf("expected window [4 5 6 7], got %v", window)
	}

	if !p.NextGroup() {
		t.Fatal("expected NextGroup to be accepted")
	}
	if p.CurrentGroup() != 2 || p.CurrentPage() != 8 {
		t.Fatalf("expected group 2 page 8, got group %d page %d", p.CurrentGroup(), p.CurrentPage())
	}
	window = p.Window()
	if len(window) != 2 || window[0] != 8 || window[1] != 9 {
		t.Fatalf("expected window [8 9], got %v", window)
	}

	// Already in the last group.
	if p.NextGroup() {
		t.Fatal("expected NextGroup to be a no-op in the last group")
	}

	if !p.PreviousGroup() {
		t.Fatal("expected PreviousGroup to be accepted")
	}
	if p.CurrentPage() != 4 {
		t.Fatalf("expected page 4 after PreviousGroup, got %d", p.CurrentPage())
	}

	want := []int{5, 8, 4}
	if len(events) != len(want) {
		t.Fatalf("expected events %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected events %v, got %v", want, events)
		}
	}
}

func TestPager_SilentRejections(t *testing.T) {
	var events []int
	p := NewPager(4, func(page int) { events = append(events, page) })
	p.SetTotalPages(5)

	if p.ChangePage(0) {
		t.Fatal("expected same-page change to be rejected")
	}
	if p.ChangePage(-1) {
		t.Fatal("expected negative page to be rejected")
	}
	if p.ChangePage(5) {
		t.Fatal("expected out-of-range page to be rejected")
	}
	if p.PreviousGroup() {
		t.Fatal("expected PreviousGroup in group 0 to be a no-op")
	}

	p.SetLoading(true)
	if p.ChangePage(2) {
		t.Fatal("expected page change while loading to be rejected")
	}
	if p.CurrentPage() != 0 {
		t.Fatalf("expected page to stay at 0, got %d", p.CurrentPage())
	}
	if len(events) != 0 {
		t.Fatalf("expected no page-change events, got %v", events)
	}
}
