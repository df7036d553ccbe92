package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/bandroomhq/bandroom/internal/common"
	"github.com/bandroomhq/bandroom/internal/server/models"
	"github.com/bandroomhq/bandroom/internal/server/services"
)

// PracticeHandler serves rehearsal log entries.
type PracticeHandler struct {
	Practice *services.PracticeService
}

type practiceLogResponse struct {
	ID              string    `json:"id"`
	SongID          string    `json:"song_id"`
	MemberID        string    `json:"member_id"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes,omitempty"`
	PracticedAt     time.Time `json:"practiced_at"`
}

func toPracticeLogResponse(l *models.PracticeLog) practiceLogResponse {
	return practiceLogResponse{
		ID:              l.ID,
		SongID:          l.SongID,
		MemberID:        l.MemberID,
		DurationMinutes: l.DurationMinutes,
		Notes:           l.Notes,
		PracticedAt:     l.PracticedAt,
	}
}

type logPracticeRequest struct {
	SongID          string    `json:"song_id"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes"`
	PracticedAt     time.Time `json:"practiced_at"`
}

func (h *PracticeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, common.ErrNoSession)
		return
	}

	var req logPracticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if req.SongID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "song_id is required"})
		return
	}

	created, err := h.Practice.LogPractice(r.Context(), session, services.LogPracticeInput{
		SongID:          req.SongID,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		PracticedAt:     req.PracticedAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPracticeLogResponse(created))
}

func (h *PracticeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, common.ErrNoSession)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}

	logs, err := h.Practice.RecentLogs(r.Context(), session, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]practiceLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toPracticeLogResponse(l))
	}
	writeJSON(w, http.StatusOK, out)
}
