package entities

import "time"

// TimeSlot is a visit window an agent has published for one listing.
// A slot with StartTime in the past is no longer selectable, whatever
// its stored status says.
type TimeSlot struct {
	ID        int       `json:"id"`
	ListingID int       `json:"listing_id"`
	AgentID   int       `json:"agent_id,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SlotPage struct {
	Content       []TimeSlot `json:"content"`
	Page          int        `json:"page"`
	Size          int        `json:"size"`
	TotalPages    int        `json:"total_pages"`
	TotalElements int64      `json:"total_elements"`
}

// AvailabilityFilter narrows a slot listing on either side.
// A nil bound means unbounded on that side.
type AvailabilityFilter struct {
	StartAt *time.Time `json:"start_at,omitempty"`
	EndAt   *time.Time `json:"end_at,omitempty"`
}

// SlotCreateRequest carries the combined local timestamps produced by the
// slot form ("2006-01-02T15:04:05", no zone suffix).
type SlotCreateRequest struct {
	ListingID int    `json:"listing_id"`
	AgentID   int    `json:"-"`
	StartAt   string `json:"start_at"`
	EndAt     string `json:"end_at"`
}
