package api

import (
	"encoding/json"
	"net/http"

	"inmovisitas/internal/auth"
	"inmovisitas/internal/entities"
	"inmovisitas/internal/schedule"
	"inmovisitas/internal/service"
)

// AgentHandler serves the authenticated agent endpoints.
type AgentHandler struct {
	Slots     *service.SlotService
	Visits    *service.VisitService
	Validator *schedule.Validator
}

func NewAgentHandler(slots *service.SlotService, visits *service.VisitService, validator *schedule.Validator) *AgentHandler {
	return &AgentHandler{Slots: slots, Visits: visits, Validator: validator}
}

// agentSlotRepo stamps the authenticated agent onto creation requests
// before they reach the slot service.
type agentSlotRepo struct {
	svc     *service.SlotService
	agentID int
}

func (a agentSlotRepo) CreateSlot(req entities.SlotCreateRequest) (*entities.TimeSlot, error) {
	req.AgentID = a.agentID
	return a.svc.CreateSlot(req)
}

func (a agentSlotRepo) ListSlots(listingID, page, size int, filter *entities.AvailabilityFilter) (*entities.SlotPage, error) {
	return a.svc.ListSlots(listingID, page, size, filter)
}

// captureNotifier collects the outcome messages the form emits so the
// handler can turn them into a response.
type captureNotifier struct {
	success string
	failure string
}

func (n *captureNotifier) Success(msg string) { n.success = msg }
func (n *captureNotifier) Error(msg string)   { n.failure = msg }

// CreateSlot runs the submitted fields through the slot form: field-level
// failures come back as a 422 with one message per field, backend
// failures as a 409, success as the created slot.
func (h *AgentHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	agentID, _ := auth.AgentIDFromContext(r.Context())

	notifier := &captureNotifier{}
	form := schedule.NewSlotForm(h.Validator, agentSlotRepo{svc: h.Slots, agentID: agentID}, notifier)
	form.SetField(schedule.FieldListingID, req.ListingID)
	form.SetField(schedule.FieldStartDate, req.StartDate)
	form.SetField(schedule.FieldStartTime, req.StartTime)
	form.SetField(schedule.FieldEndDate, req.EndDate)
	form.SetField(schedule.FieldEndTime, req.EndTime)
	form.Submit()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case form.Created() != nil:
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateSlotResponse{
			Slot:    form.Created(),
			Message: "Visit slot published.",
		})
	case notifier.failure != "":
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": notifier.failure})
	default:
		fieldErrors := make(map[string]string)
		for _, field := range []string{
			schedule.FieldListingID,
			schedule.FieldStartDate,
			schedule.FieldStartTime,
			schedule.FieldEndDate,
			schedule.FieldEndTime,
		} {
			if msg := form.FieldError(field); msg != "" {
				fieldErrors[field] = msg
			}
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"errors": fieldErrors})
	}
}

// ListAgentVisits returns the authenticated agent's scheduled visits,
// optionally filtered by day and status.
func (h *AgentHandler) ListAgentVisits(w http.ResponseWriter, r *http.Request) {
	agentID, ok := auth.AgentIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	date := r.URL.Query().Get("date")
	status := r.URL.Query().Get("status")
	visits, err := h.Visits.ListVisitsForAgent(agentID, date, status)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visits)
}
