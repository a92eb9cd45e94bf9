package schedule

import (
	"testing"
	"time"

	"inmovisitas/internal/entities"
	apperrors "inmovisitas/internal/errors"
)

type fakeBooking struct {
	calls []entities.TimeSlot
	err   error
}

func (b *fakeBooking) ConfirmVisit(slot entities.TimeSlot, contact entities.ContactInfo) (*entities.VisitConfirmation, error) {
	b.calls = append(b.calls, slot)
	if b.err != nil {
		return nil, b.err
	}
	return &entities.VisitConfirmation{Code: "AB12CD34", SlotID: slot.ID}, nil
}

func upcomingSlot(id int) entities.TimeSlot {
	return entities.TimeSlot{ID: id, StartTime: testNow.Add(2 * time.Hour), EndTime: testNow.Add(3 * time.Hour)}
}

func pastSlot(id int) entities.TimeSlot {
	return entities.TimeSlot{ID: id, StartTime: testNow.Add(-time.Hour), EndTime: testNow.Add(time.Hour)}
}

func TestSelection_PastSlotNeverSelectable(t *testing.T) {
	s := NewSelection(&fakeClock{now: testNow}, &fakeBooking{}, &fakeNotifier{})

	past := pastSlot(1)
	if !s.IsDisabled(past) {
		t.Fatal("expected a past slot to be disabled")
	}

	s.Select(past)
	if s.Selected() != nil {
		t.Fatal("expected selection to stay empty")
	}

	// A slot starting exactly now counts as past too.
	atNow := entities.TimeSlot{ID: 2, StartTime: testNow}
	if !s.IsDisabled(atNow) {
		t.Fatal("expected a slot starting now to be disabled")
	}

	// And it must not displace an existing selection.
	upcoming := upcomingSlot(3)
	s.Select(upcoming)
	s.Select(past)
	if !s.IsSelected(upcoming) {
		t.Fatal("expected the existing selection to survive")
	}
}

func TestSelection_ToggleAndReplace(t *testing.T) {
	s := NewSelection(&fakeClock{now: testNow}, &fakeBooking{}, &fakeNotifier{})

	a := upcomingSlot(1)
	b := upcomingSlot(2)

	s.Select(a)
	if !s.IsSelected(a) {
		t.Fatal("expected slot a to be selected")
	}

	// Selecting the same slot again deselects it.
	s.Select(a)
	if s.Selected() != nil {
		t.Fatal("expected reselecting to toggle back to unselected")
	}

	s.Select(a)
	s.Select(b)
	if !s.IsSelected(b) || s.IsSelected(a) {
		t.Fatal("expected slot b to replace slot a")
	}
}

func TestSelection_ConfirmWithoutSelection(t *testing.T) {
	booking := &fakeBooking{}
	s := NewSelection(&fakeClock{now: testNow}, booking, &fakeNotifier{})

	if _, err := s.Confirm(entities.ContactInfo{Name: "Ana"}); err != ErrNoSelection {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	if len(booking.calls) != 0 {
		t.Fatalf("expected no booking call, got %d", len(booking.calls))
	}
}

func TestSelection_ConfirmSuccess(t *testing.T) {
	booking := &fakeBooking{}
	notifier := &fakeNotifier{}
	s := NewSelection(&fakeClock{now: testNow}, booking, notifier)

	slot := upcomingSlot(7)
	s.Select(slot)
	conf, err := s.Confirm(entities.ContactInfo{Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf == nil || conf.SlotID != 7 {
		t.Fatalf("expected a confirmation for slot 7, got %+v", conf)
	}
	if len(notifier.successes) != 1 {
		t.Fatalf("expected a success notification, got %v", notifier.successes)
	}
	if s.Selected() != nil {
		t.Fatal("expected the selection to be cleared after confirmation")
	}
}

func TestSelection_ConfirmFailureKeepsSelection(t *testing.T) {
	booking := &fakeBooking{err: apperrors.ErrConflict("this visit slot is no longer available")}
	notifier := &fakeNotifier{}
	s := NewSelection(&fakeClock{now: testNow}, booking, notifier)

	slot := upcomingSlot(7)
	s.Select(slot)
	conf, err := s.Confirm(entities.ContactInfo{Name: "Ana"})
	if err != nil {
		t.Fatalf("booking failures are notified, not returned; got %v", err)
	}
	if conf != nil {
		t.Fatalf("expected no confirmation, got %+v", conf)
	}
	if len(notifier.failures) != 1 || notifier.failures[0] != "this visit slot is no longer available" {
		t.Fatalf("expected the server message, got %v", notifier.failures)
	}
	if !s.IsSelected(slot) {
		t.Fatal("expected the selection to be kept for retry")
	}
}

func TestSelection_PrunesSlotThatBecamePast(t *testing.T) {
	clock := &fakeClock{now: testNow}
	s := NewSelection(clock, &fakeBooking{}, &fakeNotifier{})

	slot := upcomingSlot(5)
	s.Select(slot)
	if !s.IsSelected(slot) {
		t.Fatal("expected the slot to be selected")
	}

	clock.now = slot.StartTime.Add(time.Minute)
	if s.Selected() != nil {
		t.Fatal("expected the selection to clear once the slot started")
	}
	if _, err := s.Confirm(entities.ContactInfo{Name: "Ana"}); err != ErrNoSelection {
		t.Fatalf("expected ErrNoSelection after pruning, got %v", err)
	}
}
