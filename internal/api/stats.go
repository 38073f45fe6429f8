package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/vovakirdan/beyond2048/internal/session"
	"github.com/vovakirdan/beyond2048/internal/storage"
)

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	id, _ := UserIDFrom(r.Context())

	sum, err := s.store.Stats(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		s.logger.Error("stats lookup failed", "err", err)
		respondError(w, http.StatusInternalServerError, "Server error while fetching stats")
		return
	}

	respondJSON(w, http.StatusOK, envelope{Success: true, Data: sum})
}

func (s *Server) handleRecordGame(w http.ResponseWriter, r *http.Request) {
	id, _ := UserIDFrom(r.Context())

	var result session.GameResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game result")
		return
	}
	if err := result.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game result")
		return
	}
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now().UTC()
	}

	sum, err := s.store.RecordGame(r.Context(), id, result)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		s.logger.Error("record game failed", "err", err)
		respondError(w, http.StatusInternalServerError, "Server error while updating stats")
		return
	}

	respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Stats updated successfully", Data: sum})
}

func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	id, _ := UserIDFrom(r.Context())

	err := s.store.ResetStats(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		s.logger.Error("reset stats failed", "err", err)
		respondError(w, http.StatusInternalServerError, "Server error while resetting stats")
		return
	}

	respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Stats reset successfully"})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sort, err := storage.ParseSortKey(query.Get("sort"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid sort parameter")
		return
	}

	limit := storage.DefaultLeaderboardLimit
	if v := query.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = n
	}

	entries, err := s.store.Leaderboard(r.Context(), sort, limit)
	if err != nil {
		s.logger.Error("leaderboard failed", "err", err)
		respondError(w, http.StatusInternalServerError, "Server error while fetching leaderboard data")
		return
	}
	if entries == nil {
		entries = []storage.LeaderboardEntry{}
	}

	respondJSON(w, http.StatusOK, envelope{Success: true, Data: entries})
}
