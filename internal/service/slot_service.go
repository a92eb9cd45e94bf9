package service

import (
	"time"

	"inmovisitas/internal/entities"
	apperrors "inmovisitas/internal/errors"
	"inmovisitas/internal/repository"
	"inmovisitas/internal/schedule"
	"inmovisitas/internal/utils"
)

// SlotService fronts the slot store, enforcing the same future-window
// policy server-side that the slot form applies client-side, so direct
// API calls cannot sneak past it. It satisfies the scheduling
// components' repository contract.
type SlotService struct {
	Repo      *repository.SlotRepository
	Validator *schedule.Validator
}

func NewSlotService(repo *repository.SlotRepository, validator *schedule.Validator) *SlotService {
	return &SlotService{Repo: repo, Validator: validator}
}

func (s *SlotService) CreateSlot(req entities.SlotCreateRequest) (*entities.TimeSlot, error) {
	if req.ListingID <= 0 {
		return nil, apperrors.ErrUnprocessable("listing_id is required")
	}
	start, err := time.ParseInLocation(utils.TimestampLayout, req.StartAt, time.Local)
	if err != nil {
		return nil, apperrors.ErrUnprocessable("start_at must be a local timestamp like 2026-09-01T10:00:00")
	}
	end, err := time.ParseInLocation(utils.TimestampLayout, req.EndAt, time.Local)
	if err != nil {
		return nil, apperrors.ErrUnprocessable("end_at must be a local timestamp like 2026-09-01T10:00:00")
	}

	startDate := start.Format(utils.DateLayout)
	if code := s.Validator.ValidateMinDate(startDate); code != schedule.CodeNone {
		return nil, apperrors.ErrUnprocessable(code.Message())
	}
	if code := s.Validator.ValidateMaxDate(startDate); code != schedule.CodeNone {
		return nil, apperrors.ErrUnprocessable(code.Message())
	}
	if !end.After(start) {
		return nil, apperrors.ErrUnprocessable(schedule.CodeInvalidDateRange.Message())
	}

	return s.Repo.CreateSlot(req)
}

func (s *SlotService) ListSlots(listingID, page, size int, filter *entities.AvailabilityFilter) (*entities.SlotPage, error) {
	return s.Repo.ListSlots(listingID, page, size, filter)
}
