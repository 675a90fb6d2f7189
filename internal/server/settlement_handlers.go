package server

import (
	"log/slog"
	"net/http"

	"billsplit/internal/middleware"
)

// calculate returns the settlement plan for a group: the ordered list of
// payments that equalizes costs among its members. A balanced or empty
// group yields an empty array.
func (s *Server) calculate(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		badRequest(w, "invalid group id")
		return
	}

	username := middleware.GetUsername(r.Context())
	transactions, err := s.engine.Calculate(r.Context(), groupID, username)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Settlement calculated",
		"group_id", groupID,
		"username", username,
		"transactions", len(transactions),
	)
	respondJSON(w, http.StatusOK, transactions)
}
