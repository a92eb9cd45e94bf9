package api

import "inmovisitas/internal/entities"

// Slot creation (agent side): raw form fields, validated by the slot form
// before anything is persisted.
type CreateSlotRequest struct {
	ListingID string `json:"listing_id"`
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
}

type CreateSlotResponse struct {
	Slot    *entities.TimeSlot `json:"slot"`
	Message string             `json:"message"`
}

// Availability browsing (visitor side).
type ListSlotsResponse struct {
	Content       []entities.TimeSlot `json:"content"`
	Page          int                 `json:"page"`
	Size          int                 `json:"size"`
	TotalPages    int                 `json:"total_pages"`
	TotalElements int64               `json:"total_elements"`
	PageWindow    []int               `json:"page_window"`
}

// Visit confirmation.
type ConfirmVisitRequest struct {
	SlotID   int    `json:"slot_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Language string `json:"language"`
}
