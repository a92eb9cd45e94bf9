package db

import "time"

type VisitSlot struct {
	ID           int
	ListingID    int
	AgentID      int
	StartTime    time.Time
	EndTime      time.Time
	Status       string
	ReminderSent bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Visit struct {
	ID           int
	Code         string
	SlotID       int
	ListingID    int
	VisitorName  string
	VisitorEmail string
	VisitorPhone string
	Status       string
	Language     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
