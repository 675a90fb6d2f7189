package server

import (
	"log/slog"
	"net/http"

	"billsplit/internal/auth"
	"billsplit/internal/middleware"
	"billsplit/internal/models"
)

type groupRequest struct {
	Title string `json:"title"`
}

// createGroup creates a group owned by the calling user.
func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Title == "" {
		badRequest(w, "title required")
		return
	}

	username := middleware.GetUsername(r.Context())
	user, err := s.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if user == nil {
		// Valid token for an account that no longer exists.
		respondError(w, r, auth.ErrInvalidCredentials)
		return
	}

	group := &models.Group{Title: req.Title, UserID: user.ID}
	if err := s.store.CreateGroup(r.Context(), group); err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Group created", "group_id", group.ID, "username", username)
	respondJSON(w, http.StatusCreated, group)
}

// listGroups returns a page of the calling user's groups.
func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	groups, err := s.store.ListGroupsByOwner(r.Context(), username, pageFromRequest(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if groups == nil {
		groups = []*models.Group{}
	}

	respondJSON(w, http.StatusOK, groups)
}

// getGroup returns one of the calling user's groups by ID.
func (s *Server) getGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid group id")
		return
	}

	username := middleware.GetUsername(r.Context())
	if err := s.store.GroupOwnedBy(r.Context(), groupID, username); err != nil {
		respondError(w, r, err)
		return
	}

	group, err := s.store.GetGroup(r.Context(), groupID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, group)
}

// updateGroup renames a group.
func (s *Server) updateGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid group id")
		return
	}

	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Title == "" {
		badRequest(w, "title required")
		return
	}

	username := middleware.GetUsername(r.Context())
	if err := s.store.GroupOwnedBy(r.Context(), groupID, username); err != nil {
		respondError(w, r, err)
		return
	}

	group := &models.Group{ID: groupID, Title: req.Title}
	if err := s.store.UpdateGroup(r.Context(), group); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := s.store.GetGroup(r.Context(), groupID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Group updated", "group_id", groupID, "username", username)
	respondJSON(w, http.StatusOK, updated)
}

// deleteGroup removes a group and, transitively, its members and bills.
func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid group id")
		return
	}

	username := middleware.GetUsername(r.Context())
	if err := s.store.GroupOwnedBy(r.Context(), groupID, username); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.store.DeleteGroup(r.Context(), groupID); err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Group deleted", "group_id", groupID, "username", username)
	respondJSON(w, http.StatusNoContent, nil)
}
