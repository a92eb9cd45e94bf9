package service

import (
	"fmt"
	"log"

	"inmovisitas/internal/repository"
)

type JobService struct {
	Repo   *repository.JobRepository
	Sender *SenderService
}

func NewJobService(repo *repository.JobRepository, sender *SenderService) *JobService {
	return &JobService{Repo: repo, Sender: sender}
}

// ExpirePastSlots finds open slots whose start time has passed and marks
// them expired so they stop showing up as available.
func (s *JobService) ExpirePastSlots() error {
	log.Println("Cron Job: Checking for open slots to mark as 'expired'...")

	slotIDs, err := s.Repo.GetOpenSlotIDsPastStartTime()
	if err != nil {
		return fmt.Errorf("cron job: failed to get open slots past start time: %w", err)
	}

	if len(slotIDs) == 0 {
		log.Println("Cron Job: No open slots found past their start time.")
		return nil
	}

	log.Printf("Cron Job: Found %d slots to mark as 'expired'. IDs: %v", len(slotIDs), slotIDs)

	err = s.Repo.UpdateSlotStatuses(slotIDs, repository.SlotStatusExpired)
	if err != nil {
		return fmt.Errorf("cron job: failed to update slot statuses: %w", err)
	}

	log.Printf("Cron Job: Successfully updated %d slots to 'expired'.", len(slotIDs))
	return nil
}

// SendVisitReminders emails and texts visitors whose visit starts within
// the next 24 hours, once per slot.
func (s *JobService) SendVisitReminders() error {
	visits, err := s.Repo.GetVisitsNeedingReminder()
	if err != nil {
		return fmt.Errorf("cron job: failed to get visits needing reminder: %w", err)
	}
	if len(visits) == 0 {
		return nil
	}

	slotIDs := make([]int, 0, len(visits))
	for _, visit := range visits {
		s.Sender.SendVisitEmail(visit, visitStatusReminded)
		s.Sender.SendVisitSMS(visit, visitStatusReminded)
		slotIDs = append(slotIDs, visit.SlotID)
	}

	if err := s.Repo.MarkSlotsReminded(slotIDs); err != nil {
		return fmt.Errorf("cron job: failed to mark slots reminded: %w", err)
	}
	log.Printf("Cron Job: Sent %d visit reminders.", len(visits))
	return nil
}
