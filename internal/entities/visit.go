package entities

import "time"

// ContactInfo is what a visitor leaves when confirming a visit.
type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Language string `json:"language,omitempty"`
}

type VisitConfirmation struct {
	Code      string    `json:"code"`
	SlotID    int       `json:"slot_id"`
	ListingID int       `json:"listing_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Message   string    `json:"message,omitempty"`
}

type VisitResponse struct {
	Code         string    `json:"code"`
	SlotID       int       `json:"slot_id"`
	ListingID    int       `json:"listing_id"`
	VisitorName  string    `json:"visitor_name"`
	VisitorEmail string    `json:"visitor_email"`
	VisitorPhone string    `json:"visitor_phone"`
	Status       string    `json:"status"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Language     string    `json:"language,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
