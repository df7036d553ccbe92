package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bandroomhq/bandroom/internal/common"
	"github.com/bandroomhq/bandroom/internal/server/models"
	"github.com/bandroomhq/bandroom/internal/server/services"
)

// SongHandler serves the band's song library.
type SongHandler struct {
	Songs *services.SongService
}

type songResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist,omitempty"`
	TempoBPM  int       `json:"tempo_bpm,omitempty"`
	SongKey   string    `json:"song_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toSongResponse(s *models.Song) songResponse {
	return songResponse{
		ID:        s.ID,
		Title:     s.Title,
		Artist:    s.Artist,
		TempoBPM:  s.TempoBPM,
		SongKey:   s.SongKey,
		CreatedAt: s.CreatedAt,
	}
}

func (h *SongHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, common.ErrNoSession)
		return
	}

	songs, err := h.Songs.ListSongs(r.Context(), session)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]songResponse, 0, len(songs))
	for _, s := range songs {
		out = append(out, toSongResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

type createSongRequest struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	TempoBPM int    `json:"tempo_bpm"`
	SongKey  string `json:"song_key"`
}

func (h *SongHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, common.ErrNoSession)
		return
	}

	var req createSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "title is required"})
		return
	}

	song, err := h.Songs.CreateSong(r.Context(), session, services.CreateSongInput{
		Title:    req.Title,
		Artist:   req.Artist,
		TempoBPM: req.TempoBPM,
		SongKey:  req.SongKey,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSongResponse(song))
}

func (h *SongHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, common.ErrNoSession)
		return
	}

	song, err := h.Songs.GetSong(r.Context(), session, r.PathValue("songID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSongResponse(song))
}
