package server

import (
	"log/slog"
	"net/http"

	"billsplit/internal/middleware"
	"billsplit/internal/models"
)

type createBillRequest struct {
	Amount   float64 `json:"amount"`
	MemberID int64   `json:"member_id"`
}

type updateBillRequest struct {
	Amount float64 `json:"amount"`
}

// createBill records a payment made by a member.
func (s *Server) createBill(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		badRequest(w, "amount must be positive")
		return
	}

	username := middleware.GetUsername(r.Context())
	if err := s.store.MemberOwnedBy(r.Context(), req.MemberID, username); err != nil {
		respondError(w, r, err)
		return
	}

	bill := &models.Bill{Amount: req.Amount, MemberID: req.MemberID}
	if err := s.store.CreateBill(r.Context(), bill); err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Bill created", "bill_id", bill.ID, "member_id", bill.MemberID, "amount", bill.Amount)
	respondJSON(w, http.StatusCreated, bill)
}

// listBills returns a page of a member's bills.
func (s *Server) listBills(w http.ResponseWriter, r *http.Request) {
	memberID, err := queryID(r, "memberId")
	if err != nil {
		badRequest(w, "memberId required")
		return
	}

	username := middleware.GetUsername(r.Context())
	if err := s.store.MemberOwnedBy(r.Context(), memberID, username); err != nil {
		respondError(w, r, err)
		return
	}

	bills, err := s.store.ListBillsByMember(r.Context(), memberID, pageFromRequest(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if bills == nil {
		bills = []*models.Bill{}
	}

	respondJSON(w, http.StatusOK, bills)
}

// getBill returns a bill by ID.
func (s *Server) getBill(w http.ResponseWriter, r *http.Request) {
	billID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid bill id")
		return
	}

	username := middleware.GetUsername(r.Context())
	if err := s.store.BillOwnedBy(r.Context(), billID, username); err != nil {
		respondError(w, r, err)
		return
	}

	bill, err := s.store.GetBill(r.Context(), billID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, bill)
}

// updateBill changes a bill's amount.
func (s *Server) updateBill(w http.ResponseWriter, r *http.Request) {
	billID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid bill id")
		return
	}

	var req updateBillRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		badRequest(w, "amount must be positive")
		return
	}

	username := middleware.GetUsername(r.Context())
	if err := s.store.BillOwnedBy(r.Context(), billID, username); err != nil {
		respondError(w, r, err)
		return
	}

	bill := &models.Bill{ID: billID, Amount: req.Amount}
	if err := s.store.UpdateBill(r.Context(), bill); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := s.store.GetBill(r.Context(), billID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Bill updated", "bill_id", billID, "amount", updated.Amount)
	respondJSON(w, http.StatusOK, updated)
}

// deleteBill removes a bill.
func (s *Server) deleteBill(w http.ResponseWriter, r *http.Request) {
	billID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid bill id")
		return
	}

	username := middleware.GetUsername(r.Context())
	if err := s.store.BillOwnedBy(r.Context(), billID, username); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.store.DeleteBill(r.Context(), billID); err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Bill deleted", "bill_id", billID)
	respondJSON(w, http.StatusNoContent, nil)
}
