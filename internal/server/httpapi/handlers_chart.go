package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/bandroomhq/bandroom/internal/common"
	"github.com/bandroomhq/bandroom/internal/server/models"
	"github.com/bandroomhq/bandroom/internal/server/services"
)

// ChartHandler serves chart listing, creation, and deletion. Listing
// returns each file-backed chart with a freshly tokenized URL.
type ChartHandler struct {
	Charts *services.ChartService
}

type chartResponse struct {
	ID      string `json:"id"`
	SongID  string `json:"song_id"`
	Type    string `json:"type"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`
}

func toChartResponse(c *models.Chart) chartResponse {
	return chartResponse{
		ID:      c.ID,
		SongID:  c.SongID,
		Type:    string(c.Type),
		Title:   c.Title,
		Content: c.Content,
		URL:     c.URL,
	}
}

func (h *ChartHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, common.ErrNoSession)
		return
	}

	charts, err := h.Charts.ListCharts(r.Context(), session, r.PathValue("songID"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]chartResponse, 0, len(charts))
	for _, c := range charts {
		out = append(out, toChartResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

type createChartRequest struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Ext     string `json:"ext"`
}

type createChartResponse struct {
	chartResponse
	UploadURL string `json:"upload_url,omitempty"`
}

func (h *ChartHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, common.ErrNoSession)
		return
	}

	var req createChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}

	chartType := models.ChartType(req.Type)
	switch chartType {
	case models.ChartTypeText, models.ChartTypeImage, models.ChartTypePDF, models.ChartTypeGP:
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown chart type"})
		return
	}
	if chartType != models.ChartTypeText && req.Ext == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "ext is required for file charts"})
		return
	}

	res, err := h.Charts.CreateChart(r.Context(), session, services.CreateChartInput{
		SongID:  r.PathValue("songID"),
		Type:    chartType,
		Title:   req.Title,
		Content: req.Content,
		Ext:     req.Ext,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createChartResponse{
		chartResponse: toChartResponse(res.Chart),
		UploadURL:     res.UploadURL,
	})
}

func (h *ChartHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, common.ErrNoSession)
		return
	}

	if err := h.Charts.DeleteChart(r.Context(), session, r.PathValue("chartID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
