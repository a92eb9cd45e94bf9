package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"inmovisitas/internal/entities"
	apperrors "inmovisitas/internal/errors"
	"inmovisitas/internal/schedule"
	"inmovisitas/internal/service"
)

const defaultPageSize = 10

// VisitorHandler serves the public browsing and booking endpoints.
type VisitorHandler struct {
	Slots  *service.SlotService
	Visits *service.VisitService
}

func NewVisitorHandler(slots *service.SlotService, visits *service.VisitService) *VisitorHandler {
	return &VisitorHandler{Slots: slots, Visits: visits}
}

// ListListingSlots returns one page of a listing's open slots together
// with the page-selector window. Filter bounds are only applied for
// non-blank date fields.
func (h *VisitorHandler) ListListingSlots(w http.ResponseWriter, r *http.Request) {
	listingID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	page := 0
	if raw := q.Get("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil || page < 0 {
			http.Error(w, "Invalid page", http.StatusBadRequest)
			return
		}
	}
	size := defaultPageSize
	if raw := q.Get("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil || size <= 0 {
			http.Error(w, "Invalid size", http.StatusBadRequest)
			return
		}
	}

	input := schedule.FilterInput{
		StartDate: q.Get("start_date"),
		StartTime: q.Get("start_time"),
		EndDate:   q.Get("end_date"),
		EndTime:   q.Get("end_time"),
	}

	result, err := h.Slots.ListSlots(listingID, page, size, input.Bounds())
	if err != nil {
		http.Error(w, "Error listing visit slots", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListSlotsResponse{
		Content:       result.Content,
		Page:          result.Page,
		Size:          result.Size,
		TotalPages:    result.TotalPages,
		TotalElements: result.TotalElements,
		PageWindow:    schedule.ComputeWindow(result.Page, result.TotalPages, schedule.DefaultGroupSize),
	})
}

// ConfirmVisit books a slot for a visitor.
func (h *VisitorHandler) ConfirmVisit(w http.ResponseWriter, r *http.Request) {
	var req ConfirmVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.SlotID <= 0 || req.Name == "" || req.Email == "" {
		http.Error(w, "slot_id, name and email are required", http.StatusBadRequest)
		return
	}

	contact := entities.ContactInfo{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Language: req.Language,
	}
	confirmation, err := h.Visits.ConfirmVisit(entities.TimeSlot{ID: req.SlotID}, contact)
	if err != nil {
		writeServiceError(w, err, "Could not confirm visit")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(confirmation)
}

// GetVisit looks up a confirmed visit by its code.
func (h *VisitorHandler) GetVisit(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	visit, err := h.Visits.GetVisitByCode(code)
	if err != nil {
		http.Error(w, "Visit not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visit)
}

// writeServiceError maps service failures to their HTTP status when they
// carry one, defaulting to 500.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		http.Error(w, httpErr.Message, httpErr.Code)
		return
	}
	http.Error(w, fallback, http.StatusInternalServerError)
}
