package repository

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"

	"inmovisitas/internal/entities"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetOpenSlotIDsPastStartTime finds open slots whose start time has
// already passed; they can no longer be visited or selected.
func (r *JobRepository) GetOpenSlotIDsPastStartTime() ([]int, error) {
	query := `SELECT id FROM visit_slots WHERE status = 'open' AND start_time < NOW()`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying open slots past start time: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning slot ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// UpdateSlotStatuses sets the status of a batch of slots and refreshes
// their updated_at column.
func (r *JobRepository) UpdateSlotStatuses(ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE visit_slots SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.Exec(query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating slot statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d visit slots to '%s'", rowsAffected, newStatus)
	}
	return nil
}

// GetVisitsNeedingReminder returns booked visits starting within the next
// 24 hours that have not been reminded yet, with enough slot data to
// compose the reminder.
func (r *JobRepository) GetVisitsNeedingReminder() ([]entities.VisitResponse, error) {
	query := `
		SELECT v.code, v.slot_id, v.listing_id, v.visitor_name, v.visitor_email, v.visitor_phone,
			v.status, vs.start_time, vs.end_time, v.language, v.created_at, v.updated_at
		FROM visits v
		JOIN visit_slots vs ON vs.id = v.slot_id
		WHERE v.status = 'confirmed'
		  AND vs.reminder_sent = FALSE
		  AND vs.start_time > NOW()
		  AND vs.start_time < NOW() + interval '24 hours'
		ORDER BY vs.start_time`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying visits needing reminder: %w", err)
	}
	defer rows.Close()

	var visits []entities.VisitResponse
	for rows.Next() {
		var res entities.VisitResponse
		err := rows.Scan(
			&res.Code, &res.SlotID, &res.ListingID, &res.VisitorName, &res.VisitorEmail, &res.VisitorPhone,
			&res.Status, &res.StartTime, &res.EndTime, &res.Language, &res.CreatedAt, &res.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning visit row: %w", err)
		}
		visits = append(visits, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating visit rows: %w", err)
	}
	return visits, nil
}

// MarkSlotsReminded flags slots whose visit reminder has been sent.
func (r *JobRepository) MarkSlotsReminded(slotIDs []int) error {
	if len(slotIDs) == 0 {
		return nil
	}
	_, err := r.DB.Exec(`UPDATE visit_slots SET reminder_sent = TRUE, updated_at = NOW() WHERE id = ANY($1)`, pq.Array(slotIDs))
	if err != nil {
		return fmt.Errorf("error marking slots reminded: %w", err)
	}
	return nil
}
