package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"inmovisitas/internal/db"
	"inmovisitas/internal/entities"
	"inmovisitas/internal/utils"
)

const (
	SlotStatusOpen    = "open"
	SlotStatusBooked  = "booked"
	SlotStatusExpired = "expired"
)

type SlotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(db *sql.DB) *SlotRepository {
	return &SlotRepository{DB: db}
}

// CreateSlot stores a new open visit slot. Timestamps arrive as combined
// local strings from the slot form and are parsed in the server's zone.
func (r *SlotRepository) CreateSlot(req entities.SlotCreateRequest) (*entities.TimeSlot, error) {
	startTime, err := time.ParseInLocation(utils.TimestampLayout, req.StartAt, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid start_at %q: %w", req.StartAt, err)
	}
	endTime, err := time.ParseInLocation(utils.TimestampLayout, req.EndAt, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid end_at %q: %w", req.EndAt, err)
	}

	slot := &entities.TimeSlot{
		ListingID: req.ListingID,
		AgentID:   req.AgentID,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    SlotStatusOpen,
	}

	query := `
		INSERT INTO visit_slots (listing_id, agent_id, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err = r.DB.QueryRow(query,
		slot.ListingID,
		slot.AgentID,
		slot.StartTime,
		slot.EndTime,
		slot.Status,
	).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating visit slot: %w", err)
	}
	return slot, nil
}

// ListSlots returns one page of a listing's open slots ordered by start
// time, optionally narrowed by the availability filter bounds.
func (r *SlotRepository) ListSlots(listingID, page, size int, filter *entities.AvailabilityFilter) (*entities.SlotPage, error) {
	if page < 0 || size <= 0 {
		return nil, fmt.Errorf("invalid page %d or size %d", page, size)
	}

	where := " WHERE listing_id = $1 AND status = $2"
	args := []interface{}{listingID, SlotStatusOpen}
	idx := 3

	if filter != nil && filter.StartAt != nil {
		where += " AND start_time >= $" + strconv.Itoa(idx)
		args = append(args, *filter.StartAt)
		idx++
	}
	if filter != nil && filter.EndAt != nil {
		where += " AND start_time <= $" + strconv.Itoa(idx)
		args = append(args, *filter.EndAt)
		idx++
	}

	var total int64
	if err := r.DB.QueryRow("SELECT COUNT(*) FROM visit_slots"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("error counting visit slots: %w", err)
	}

	query := `
		SELECT id, listing_id, agent_id, start_time, end_time, status, created_at, updated_at
		FROM visit_slots` + where + `
		ORDER BY start_time ASC
		LIMIT $` + strconv.Itoa(idx) + ` OFFSET $` + strconv.Itoa(idx+1)
	args = append(args, size, page*size)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying visit slots: %w", err)
	}
	defer rows.Close()

	var slots []entities.TimeSlot
	for rows.Next() {
		var s entities.TimeSlot
		if err := rows.Scan(&s.ID, &s.ListingID, &s.AgentID, &s.StartTime, &s.EndTime, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning visit slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating visit slot rows: %w", err)
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &entities.SlotPage{
		Content:       slots,
		Page:          page,
		Size:          size,
		TotalPages:    totalPages,
		TotalElements: total,
	}, nil
}

func (r *SlotRepository) GetSlotByID(id int) (*db.VisitSlot, error) {
	var slot db.VisitSlot
	query := `
		SELECT id, listing_id, agent_id, start_time, end_time, status, reminder_sent, created_at, updated_at
		FROM visit_slots WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&slot.ID, &slot.ListingID, &slot.AgentID, &slot.StartTime, &slot.EndTime,
		&slot.Status, &slot.ReminderSent, &slot.CreatedAt, &slot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("visit slot %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying visit slot: %w", err)
	}
	return &slot, nil
}

// MarkSlotBooked flips an open slot to booked, returning the stored
// status so callers can detect a lost race against another visitor.
func (r *SlotRepository) MarkSlotBooked(id int) (string, error) {
	query := `
		UPDATE visit_slots SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING status`
	var status string
	err := r.DB.QueryRow(query, SlotStatusBooked, id, SlotStatusOpen).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("visit slot %d is no longer open", id)
		}
		return "", fmt.Errorf("error booking visit slot: %w", err)
	}
	return status, nil
}
