package httpserver

import (
	"log/slog"
	"net/http"
	"strings"

	accountservice "shipline/contexts/identity-access/account-service"
	accounthttp "shipline/contexts/identity-access/account-service/transport/http"
	shipmentservice "shipline/contexts/shipment-operations/shipment-service"
	shipmentservices "shipline/contexts/shipment-operations/shipment-service/domain/services"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "shipline/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	accounts  accountservice.Module
	shipments shipmentservice.Module
}

func New(
	accounts accountservice.Module,
	shipments shipmentservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		accounts:  accounts,
		shipments: shipments,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.mux.HandleFunc("POST /auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /auth/me", s.requireAuth(s.handleMe))
	s.mux.HandleFunc("PUT /auth/profile", s.requireAuth(s.handleUpdateProfile))
	s.mux.HandleFunc("PUT /auth/password", s.requireAuth(s.handleChangePassword))

	s.mux.HandleFunc("GET /users", s.requireAuth(s.handleListUsers))
	s.mux.HandleFunc("GET /users/{id}", s.requireAuth(s.handleGetUser))
	s.mux.HandleFunc("PATCH /users/{id}/role", s.requireAuth(s.handleChangeRole))
	s.mux.HandleFunc("PATCH /users/{id}/activate", s.requireAuth(s.handleSetActive))
	s.mux.HandleFunc("PATCH /users/{id}/deactivate", s.requireAuth(s.handleDeactivateUser))
	s.mux.HandleFunc("DELETE /users/{id}", s.requireAuth(s.handleDeleteUser))

	s.mux.HandleFunc("POST /shipments", s.requireAuth(s.handleCreateShipment))
	s.mux.HandleFunc("GET /shipments", s.requireAuth(s.handleListShipments))
	s.mux.HandleFunc("GET /shipments/stats", s.requireAuth(s.handleShipmentStats))
	s.mux.HandleFunc("GET /shipments/my-stats", s.requireAuth(s.handleMyShipmentStats))
	s.mux.HandleFunc("GET /shipments/{id}", s.requireAuth(s.handleGetShipment))
	s.mux.HandleFunc("PUT /shipments/{id}", s.requireAuth(s.handleUpdateShipment))
	s.mux.HandleFunc("PATCH /shipments/{id}/status", s.requireAuth(s.handleChangeStatus))
	s.mux.HandleFunc("DELETE /shipments/{id}", s.requireAuth(s.handleDeleteShipment))
	s.mux.HandleFunc("POST /shipments/{id}/attachments", s.requireAuth(s.handleAddAttachment))
	s.mux.HandleFunc("DELETE /shipments/{id}/attachments/{attachmentId}", s.requireAuth(s.handleRemoveAttachment))

	s.mux.HandleFunc("GET /track/{trackingNumber}", s.handleTrackShipment)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "ok", nil)
}

type authedHandler func(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO)

// requireAuth resolves the bearer token into a fresh identity. Role and
// active flag come from the store, not the token claims, so demotions and
// deactivations take effect immediately.
func (s *Server) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		identity, err := s.accounts.Handler.AuthenticateTokenHandler(r.Context(), strings.TrimSpace(token))
		if err != nil {
			s.writeAccountError(w, err)
			return
		}
		next(w, r, identity)
	}
}

func actorFrom(identity accounthttp.IdentityDTO) shipmentservices.Actor {
	return shipmentservices.Actor{
		UserID: identity.UserID,
		Role:   identity.Role,
	}
}
