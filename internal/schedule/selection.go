package schedule

import (
	"errors"

	"inmovisitas/internal/entities"
)

// ErrNoSelection is returned when Confirm is called without a selected slot.
var ErrNoSelection = errors.New("no slot selected")

const confirmFallbackMessage = "could not confirm the visit, please try again"

// Selection tracks the single slot a visitor has marked as chosen, if
// any. It never owns the slot: it only keeps a copy keyed by ID, and the
// browser wipes it whenever the underlying list changes.
type Selection struct {
	clock    Clock
	booking  BookingService
	notifier Notifier
	selected *entities.TimeSlot
}

func NewSelection(clock Clock, booking BookingService, notifier Notifier) *Selection {
	if clock == nil {
		clock = SystemClock()
	}
	return &Selection{clock: clock, booking: booking, notifier: notifier}
}

// IsDisabled reports whether a slot may never be picked: anything whose
// start is not strictly in the future.
func (s *Selection) IsDisabled(slot entities.TimeSlot) bool {
	return !slot.StartTime.After(s.clock.Now())
}

// Select toggles the given slot. Picking a disabled slot changes nothing.
// Picking the already-selected slot deselects it; picking another slot
// replaces the previous selection.
func (s *Selection) Select(slot entities.TimeSlot) {
	if s.IsDisabled(slot) {
		return
	}
	if s.selected != nil && s.selected.ID == slot.ID {
		s.selected = nil
		return
	}
	chosen := slot
	s.selected = &chosen
}

func (s *Selection) IsSelected(slot entities.TimeSlot) bool {
	s.prune()
	return s.selected != nil && s.selected.ID == slot.ID
}

// Selected returns the current selection, or nil when unselected.
func (s *Selection) Selected() *entities.TimeSlot {
	s.prune()
	return s.selected
}

func (s *Selection) Clear() {
	s.selected = nil
}

// Confirm books the selected slot. Calling it while unselected is a
// caller bug and returns ErrNoSelection. Booking failures go to the
// notifier and keep the selection so the visitor can retry; success
// notifies and clears it.
func (s *Selection) Confirm(contact entities.ContactInfo) (*entities.VisitConfirmation, error) {
	s.prune()
	if s.selected == nil {
		return nil, ErrNoSelection
	}
	conf, err := s.booking.ConfirmVisit(*s.selected, contact)
	if err != nil {
		s.notifier.Error(serverMessageOr(err, confirmFallbackMessage))
		return nil, nil
	}
	s.notifier.Success("visit confirmed")
	s.selected = nil
	return conf, nil
}

// prune drops a selection whose slot has meanwhile slipped into the past.
func (s *Selection) prune() {
	if s.selected != nil && !s.selected.StartTime.After(s.clock.Now()) {
		s.selected = nil
	}
}
