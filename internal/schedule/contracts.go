package schedule

import "inmovisitas/internal/entities"

// SlotRepository is the backend that owns visit slots. The scheduling
// components only ever hold read-only copies of what it returns.
type SlotRepository interface {
	CreateSlot(req entities.SlotCreateRequest) (*entities.TimeSlot, error)
	ListSlots(listingID, page, size int, filter *entities.AvailabilityFilter) (*entities.SlotPage, error)
}

// BookingService turns a selected slot plus contact details into a
// confirmed visit.
type BookingService interface {
	ConfirmVisit(slot entities.TimeSlot, contact entities.ContactInfo) (*entities.VisitConfirmation, error)
}

// Notifier receives fire-and-forget user-facing messages. Implementations
// must not block.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}
