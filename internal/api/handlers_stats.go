package api

import "net/http"

func (s *Server) handleCallStats(w http.ResponseWriter, r *http.Request) {
	if s.gdocs == nil || s.gdocs.Stats == nil {
		jsonError(w, "call stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats": s.gdocs.Stats.Snapshot(),
	})
}
