package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jswan/mercantile/internal/service"
)

// ActivityHandler exposes the activity log to staff.
type ActivityHandler struct {
	activity *service.ActivityService
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(activity *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

type activityResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	CreatedAt time.Time `json:"created_at"`
}

// List handles GET /staff/activity
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := int32(0)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err == nil && n > 0 {
			limit = int32(n)
		}
	}

	entries, err := h.activity.ListRecent(r.Context(), limit)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	resp := make([]activityResponse, len(entries))
	for i, e := range entries {
		resp[i] = activityResponse{
			ID:        e.ID,
			UserID:    e.UserID.String(),
			Action:    e.Action,
			Entity:    e.Entity,
			EntityID:  e.EntityID.String(),
			CreatedAt: e.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
