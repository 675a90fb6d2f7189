// Package server exposes the billsplit REST API over HTTP.
package server

import (
	"net/http"

	"billsplit/internal/auth"
	"billsplit/internal/middleware"
	"billsplit/internal/settlement"
	"billsplit/internal/storage"
)

// Server holds the handler dependencies for the REST API.
type Server struct {
	store      storage.Store
	authn      auth.Authenticator
	jwtManager *auth.JWTManager
	engine     *settlement.Engine
}

// New creates a Server with the given collaborators.
func New(store storage.Store, authn auth.Authenticator, jwtManager *auth.JWTManager, engine *settlement.Engine) *Server {
	return &Server{
		store:      store,
		authn:      authn,
		jwtManager: jwtManager,
		engine:     engine,
	}
}

// Routes returns the API handler. Registration and login are public; every
// other route requires a valid bearer token.
func (s *Server) Routes() http.Handler {
	protected := http.NewServeMux()

	protected.HandleFunc("POST /api/groups", s.createGroup)
	protected.HandleFunc("GET /api/groups", s.listGroups)
	protected.HandleFunc("GET /api/groups/{id}", s.getGroup)
	protected.HandleFunc("PUT /api/groups/{id}", s.updateGroup)
	protected.HandleFunc("DELETE /api/groups/{id}", s.deleteGroup)

	protected.HandleFunc("POST /api/members", s.createMember)
	protected.HandleFunc("GET /api/members", s.listMembers)
	protected.HandleFunc("GET /api/members/{id}", s.getMember)
	protected.HandleFunc("PUT /api/members/{id}", s.updateMember)
	protected.HandleFunc("DELETE /api/members/{id}", s.deleteMember)

	protected.HandleFunc("POST /api/bills", s.createBill)
	protected.HandleFunc("GET /api/bills", s.listBills)
	protected.HandleFunc("GET /api/bills/{id}", s.getBill)
	protected.HandleFunc("PUT /api/bills/{id}", s.updateBill)
	protected.HandleFunc("DELETE /api/bills/{id}", s.deleteBill)

	protected.HandleFunc("GET /api/calculate/{groupId}", s.calculate)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users", s.register)
	mux.HandleFunc("POST /api/authenticate", s.authenticate)
	mux.Handle("/api/", middleware.RequireAuth(s.jwtManager)(protected))

	return mux
}
