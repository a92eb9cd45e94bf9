package schedule

import (
	stderrors "errors"
	"strconv"

	"inmovisitas/internal/entities"
	apperrors "inmovisitas/internal/errors"
)

// Field names of the slot creation form.
const (
	FieldListingID = "listingId"
	FieldStartDate = "startDate"
	FieldStartTime = "startTime"
	FieldEndDate   = "endDate"
	FieldEndTime   = "endTime"
)

var formFields = []string{FieldListingID, FieldStartDate, FieldStartTime, FieldEndDate, FieldEndTime}

// SlotDraft is the in-progress form state before a slot exists. All
// fields start empty and stay strings until submit combines them.
type SlotDraft struct {
	ListingID string
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
}

const createFallbackMessage = "could not publish the visit slot, please try again"

// SlotForm wires the window validator to the five slot-creation fields,
// tracks which fields the user has touched, and builds the outbound
// creation payload on submit. Field errors are recomputed on every
// mutation but only surfaced for touched fields.
type SlotForm struct {
	validator *Validator
	repo      SlotRepository
	notifier  Notifier

	draft      SlotDraft
	touched    map[string]bool
	fieldCodes map[string]ErrorCode
	submitting bool
	created    *entities.TimeSlot
}

func NewSlotForm(validator *Validator, repo SlotRepository, notifier Notifier) *SlotForm {
	f := &SlotForm{
		validator: validator,
		repo:      repo,
		notifier:  notifier,
		touched:   make(map[string]bool),
	}
	f.recompute()
	return f
}

func (f *SlotForm) Draft() SlotDraft { return f.draft }
func (f *SlotForm) Submitting() bool { return f.submitting }

// Created returns the slot produced by the last successful submit, if any.
func (f *SlotForm) Created() *entities.TimeSlot { return f.created }

func (f *SlotForm) SetField(name, value string) {
	switch name {
	case FieldListingID:
		f.draft.ListingID = value
	case FieldStartDate:
		f.draft.StartDate = value
	case FieldStartTime:
		f.draft.StartTime = value
	case FieldEndDate:
		f.draft.EndDate = value
	case FieldEndTime:
		f.draft.EndTime = value
	default:
		return
	}
	f.recompute()
}

func (f *SlotForm) Touch(name string) {
	f.touched[name] = true
}

func (f *SlotForm) Touched(name string) bool {
	return f.touched[name]
}

// Valid reports whether the whole draft currently passes validation.
func (f *SlotForm) Valid() bool {
	for _, code := range f.fieldCodes {
		if code != CodeNone {
			return false
		}
	}
	return true
}

// ErrorCodeFor exposes the raw code of a field regardless of touch state.
func (f *SlotForm) ErrorCodeFor(name string) ErrorCode {
	return f.fieldCodes[name]
}

// FieldError returns the message to show next to a field: empty while the
// field is valid or untouched, otherwise the highest-priority failure.
func (f *SlotForm) FieldError(name string) string {
	if !f.touched[name] {
		return ""
	}
	return f.fieldCodes[name].Message()
}

// Reset clears the draft, touch state and errors, back to a pristine form.
func (f *SlotForm) Reset() {
	f.draft = SlotDraft{}
	f.touched = make(map[string]bool)
	f.recompute()
}

// Submit validates the draft and, when valid, sends the creation payload.
// An invalid draft only reveals its error messages (every field becomes
// touched); nothing is sent. Failures keep the draft so the user can
// retry; success resets the form.
func (f *SlotForm) Submit() {
	if f.submitting {
		return
	}
	f.recompute()
	if !f.Valid() {
		for _, name := range formFields {
			f.touched[name] = true
		}
		return
	}

	listingID, _ := strconv.Atoi(f.draft.ListingID)
	req := entities.SlotCreateRequest{
		ListingID: listingID,
		StartAt:   f.draft.StartDate + "T" + f.draft.StartTime + ":00",
		EndAt:     f.draft.EndDate + "T" + f.draft.EndTime + ":00",
	}

	f.submitting = true
	slot, err := f.repo.CreateSlot(req)
	f.submitting = false
	if err != nil {
		f.notifier.Error(serverMessageOr(err, createFallbackMessage))
		return
	}
	f.created = slot
	f.notifier.Success("visit slot published")
	f.Reset()
}

// recompute rebuilds the per-field error records from the current draft.
// Range failures are pinned on the end fields only; the start of the
// window is never blamed for an inverted range.
func (f *SlotForm) recompute() {
	codes := make(map[string]ErrorCode, len(formFields))

	codes[FieldListingID] = f.validateListingID()
	codes[FieldStartDate] = f.validateDateField(f.draft.StartDate)
	codes[FieldStartTime] = f.validateRequired(f.draft.StartTime)
	codes[FieldEndDate] = f.validateDateField(f.draft.EndDate)
	codes[FieldEndTime] = f.validateRequired(f.draft.EndTime)

	if rangeCode := f.validator.ValidateRange(f.draft.StartDate, f.draft.StartTime, f.draft.EndDate, f.draft.EndTime); rangeCode != CodeNone {
		if codes[FieldEndDate] == CodeNone {
			codes[FieldEndDate] = rangeCode
		}
		if codes[FieldEndTime] == CodeNone {
			codes[FieldEndTime] = rangeCode
		}
	}

	f.fieldCodes = codes
}

func (f *SlotForm) validateRequired(value string) ErrorCode {
	if value == "" {
		return CodeRequired
	}
	return CodeNone
}

func (f *SlotForm) validateListingID() ErrorCode {
	if f.draft.ListingID == "" {
		return CodeRequired
	}
	if id, err := strconv.Atoi(f.draft.ListingID); err != nil || id <= 0 {
		return CodeInvalid
	}
	return CodeNone
}

// validateDateField applies required-ness first, then the future-window
// policy, in the order errors are reported: required > minDate > maxDate.
func (f *SlotForm) validateDateField(value string) ErrorCode {
	if value == "" {
		return CodeRequired
	}
	if code := f.validator.ValidateMinDate(value); code != CodeNone {
		return code
	}
	if code := f.validator.ValidateMaxDate(value); code != CodeNone {
		return code
	}
	return CodeNone
}

// serverMessageOr prefers the server-supplied message over the generic
// fallback when the failure carries one.
func serverMessageOr(err error, fallback string) string {
	var httpErr *apperrors.HTTPError
	if stderrors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return fallback
}
