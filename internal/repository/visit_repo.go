package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"inmovisitas/internal/db"
	"inmovisitas/internal/entities"
)

type VisitRepository struct {
	DB *sql.DB
}

func NewVisitRepository(db *sql.DB) *VisitRepository {
	return &VisitRepository{DB: db}
}

func (r *VisitRepository) CreateVisit(v *db.Visit) error {
	query := `
		INSERT INTO visits
		(code, slot_id, listing_id, visitor_name, visitor_email, visitor_phone, status, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		v.Code,
		v.SlotID,
		v.ListingID,
		v.VisitorName,
		v.VisitorEmail,
		v.VisitorPhone,
		v.Status,
		v.Language,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *VisitRepository) GetVisitByCode(code string) (*entities.VisitResponse, error) {
	var res entities.VisitResponse
	query := `
		SELECT v.code, v.slot_id, v.listing_id, v.visitor_name, v.visitor_email, v.visitor_phone,
			v.status, vs.start_time, vs.end_time, v.language, v.created_at, v.updated_at
		FROM visits v
		JOIN visit_slots vs ON vs.id = v.slot_id
		WHERE v.code = $1`
	err := r.DB.QueryRow(query, code).Scan(
		&res.Code, &res.SlotID, &res.ListingID, &res.VisitorName, &res.VisitorEmail, &res.VisitorPhone,
		&res.Status, &res.StartTime, &res.EndTime, &res.Language, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("visit with code '%s' not found: %w", code, err)
		}
		return nil, fmt.Errorf("error querying visit: %w", err)
	}
	return &res, nil
}

// ListVisitsForAgent returns the scheduled visits across an agent's
// slots, optionally filtered by visit day and status.
func (r *VisitRepository) ListVisitsForAgent(agentID int, date, status string) ([]entities.VisitResponse, error) {
	query := `
	SELECT v.code, v.slot_id, v.listing_id, v.visitor_name, v.visitor_email, v.visitor_phone,
		v.status, vs.start_time, vs.end_time, v.language, v.created_at, v.updated_at
	FROM visits v
	JOIN visit_slots vs ON vs.id = v.slot_id
	WHERE vs.agent_id = $1`
	args := []interface{}{agentID}
	idx := 2

	if date != "" {
		query += " AND DATE(vs.start_time) = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if status != "" {
		query += " AND v.status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY vs.start_time DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []entities.VisitResponse
	for rows.Next() {
		var res entities.VisitResponse
		err := rows.Scan(
			&res.Code, &res.SlotID, &res.ListingID, &res.VisitorName, &res.VisitorEmail, &res.VisitorPhone,
			&res.Status, &res.StartTime, &res.EndTime, &res.Language, &res.CreatedAt, &res.UpdatedAt,
		)
		if err == nil {
			visits = append(visits, res)
		}
	}
	return visits, nil
}
