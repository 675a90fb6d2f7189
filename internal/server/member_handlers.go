package server

import (
	"log/slog"
	"net/http"

	"billsplit/internal/middleware"
	"billsplit/internal/models"
)

type createMemberRequest struct {
	Name    string `json:"name"`
	GroupID int64  `json:"group_id"`
}

type updateMemberRequest struct {
	Name string `json:"name"`
}

// createMember adds a member to one of the calling user's groups.
func (s *Server) createMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(w, "name required")
		return
	}

	username := middleware.GetUsername(r.Context())
	if err := s.store.GroupOwnedBy(r.Context(), req.GroupID, username); err != nil {
		respondError(w, r, err)
		return
	}

	member := &models.Member{Name: req.Name, GroupID: req.GroupID}
	if err := s.store.CreateMember(r.Context(), member); err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Member created", "member_id", member.ID, "group_id", member.GroupID)
	respondJSON(w, http.StatusCreated, member)
}

// listMembers returns a page of a group's members.
func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	groupID, err := queryID(r, "groupId")
	if err != nil {
		badRequest(w, "groupId required")
		return
	}

	username := middleware.GetUsername(r.Context())
	if err := s.store.GroupOwnedBy(r.Context(), groupID, username); err != nil {
		respondError(w, r, err)
		return
	}

	members, err := s.store.ListMembersByGroup(r.Context(), groupID, pageFromRequest(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if members == nil {
		members = []*models.Member{}
	}

	respondJSON(w, http.StatusOK, members)
}

// getMember returns a member by ID.
func (s *Server) getMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid member id")
		return
	}

	username := middleware.GetUsername(r.Context())
	if err := s.store.MemberOwnedBy(r.Context(), memberID, username); err != nil {
		respondError(w, r, err)
		return
	}

	member, err := s.store.GetMember(r.Context(), memberID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, member)
}

// updateMember renames a member.
func (s *Server) updateMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid member id")
		return
	}

	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(w, "name required")
		return
	}

	username := middleware.GetUsername(r.Context())
	if err := s.store.MemberOwnedBy(r.Context(), memberID, username); err != nil {
		respondError(w, r, err)
		return
	}

	member := &models.Member{ID: memberID, Name: req.Name}
	if err := s.store.UpdateMember(r.Context(), member); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := s.store.GetMember(r.Context(), memberID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Member updated", "member_id", memberID)
	respondJSON(w, http.StatusOK, updated)
}

// deleteMember removes a member and their bills.
func (s *Server) deleteMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid member id")
		return
	}

	username := middleware.GetUsername(r.Context())
	if err := s.store.MemberOwnedBy(r.Context(), memberID, username); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.store.DeleteMember(r.Context(), memberID); err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Member deleted", "member_id", memberID)
	respondJSON(w, http.StatusNoContent, nil)
}
