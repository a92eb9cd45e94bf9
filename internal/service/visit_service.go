package service

import (
	"fmt"
	"log"
	"time"

	"inmovisitas/internal/db"
	"inmovisitas/internal/entities"
	apperrors "inmovisitas/internal/errors"
	"inmovisitas/internal/repository"
)

const (
	visitStatusConfirmed = "confirmed"
	visitStatusReminded  = "reminded"
)

// VisitService confirms visits against slots. It implements the booking
// contract the scheduling components depend on.
type VisitService struct {
	SlotRepo  *repository.SlotRepository
	VisitRepo *repository.VisitRepository
	Sender    *SenderService
}

func NewVisitService(slotRepo *repository.SlotRepository, visitRepo *repository.VisitRepository, sender *SenderService) *VisitService {
	return &VisitService{SlotRepo: slotRepo, VisitRepo: visitRepo, Sender: sender}
}

// ConfirmVisit re-checks the slot against the store (the browsed copy may
// be stale), books it, records the visit and notifies the visitor by
// email and SMS.
func (s *VisitService) ConfirmVisit(slot entities.TimeSlot, contact entities.ContactInfo) (*entities.VisitConfirmation, error) {
	stored, err := s.SlotRepo.GetSlotByID(slot.ID)
	if err != nil {
		return nil, apperrors.ErrNotFound("visit slot not found")
	}
	if stored.Status != repository.SlotStatusOpen {
		return nil, apperrors.ErrConflict("this visit slot is no longer available")
	}
	if !stored.StartTime.After(time.Now()) {
		return nil, apperrors.ErrConflict("this visit slot has already started")
	}

	if _, err := s.SlotRepo.MarkSlotBooked(stored.ID); err != nil {
		log.Printf("Error booking slot %d: %v", stored.ID, err)
		return nil, apperrors.ErrConflict("this visit slot is no longer available")
	}

	code := fmt.Sprintf("%08X", time.Now().UnixNano()%100000000)
	visit := &db.Visit{
		Code:         code,
		SlotID:       stored.ID,
		ListingID:    stored.ListingID,
		VisitorName:  contact.Name,
		VisitorEmail: contact.Email,
		VisitorPhone: contact.Phone,
		Status:       visitStatusConfirmed,
		Language:     contact.Language,
	}
	if err := s.VisitRepo.CreateVisit(visit); err != nil {
		log.Printf("Error creating visit in repository: %v", err)
		return nil, err
	}

	response := entities.VisitResponse{
		Code:         visit.Code,
		SlotID:       visit.SlotID,
		ListingID:    visit.ListingID,
		VisitorName:  visit.VisitorName,
		VisitorEmail: visit.VisitorEmail,
		VisitorPhone: visit.VisitorPhone,
		Status:       visit.Status,
		StartTime:    stored.StartTime,
		EndTime:      stored.EndTime,
		Language:     visit.Language,
		CreatedAt:    visit.CreatedAt,
		UpdatedAt:    visit.UpdatedAt,
	}
	s.Sender.SendVisitEmail(response, visitStatusConfirmed)
	s.Sender.SendVisitSMS(response, visitStatusConfirmed)

	return &entities.VisitConfirmation{
		Code:      visit.Code,
		SlotID:    stored.ID,
		ListingID: stored.ListingID,
		StartTime: stored.StartTime,
		EndTime:   stored.EndTime,
		Message:   "Visit confirmed.",
	}, nil
}

func (s *VisitService) GetVisitByCode(code string) (*entities.VisitResponse, error) {
	return s.VisitRepo.GetVisitByCode(code)
}

func (s *VisitService) ListVisitsForAgent(agentID int, date, status string) ([]entities.VisitResponse, error) {
	return s.VisitRepo.ListVisitsForAgent(agentID, date, status)
}
