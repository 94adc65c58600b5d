package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	accountqueries "shipline/contexts/identity-access/account-service/application/queries"
	accounterrors "shipline/contexts/identity-access/account-service/domain/errors"
	accounthttp "shipline/contexts/identity-access/account-service/transport/http"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if fieldErrors := requireFields(map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
	}); len(fieldErrors) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fieldErrors...)
		return
	}

	resp, err := s.accounts.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "account registered", resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if fieldErrors := requireFields(map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}); len(fieldErrors) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fieldErrors...)
		return
	}

	resp, err := s.accounts.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "logged in", resp)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	resp, err := s.accounts.Handler.GetProfileHandler(r.Context(), identity.UserID)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "current account", resp)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	var req accounthttp.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if fieldErrors := requireFields(map[string]string{"name": req.Name}); len(fieldErrors) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fieldErrors...)
		return
	}

	resp, err := s.accounts.Handler.UpdateProfileHandler(r.Context(), identity.UserID, req)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "profile updated", resp)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	var req accounthttp.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if fieldErrors := requireFields(map[string]string{
		"currentPassword": req.CurrentPassword,
		"newPassword":     req.NewPassword,
	}); len(fieldErrors) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fieldErrors...)
		return
	}

	resp, err := s.accounts.Handler.ChangePasswordHandler(r.Context(), identity.UserID, req)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "password changed", resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	query := r.URL.Query()
	listQuery := accountqueries.ListUsersQuery{
		Role:   query.Get("role"),
		Search: query.Get("search"),
		Page:   parseIntParam(query.Get("page"), 1),
		Limit:  parseIntParam(query.Get("limit"), 10),
	}
	if activeRaw := query.Get("active"); activeRaw != "" {
		active, err := strconv.ParseBool(activeRaw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "validation failed",
				FieldError{Field: "active", Message: "must be a boolean"})
			return
		}
		listQuery.Active = &active
	}

	resp, err := s.accounts.Handler.ListUsersHandler(r.Context(), identity.Role, listQuery)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writePaginated(w, "users listed", resp.Items, newPagination(resp.Page, resp.Limit, resp.Total))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	resp, err := s.accounts.Handler.GetUserHandler(r.Context(), identity.Role, r.PathValue("id"))
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "user found", resp)
}

func (s *Server) handleChangeRole(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	var req accounthttp.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if fieldErrors := requireFields(map[string]string{"role": req.Role}); len(fieldErrors) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fieldErrors...)
		return
	}

	resp, err := s.accounts.Handler.ChangeRoleHandler(r.Context(), identity.Role, r.PathValue("id"), req)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "role changed", resp)
}

func (s *Server) handleSetActive(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	var req accounthttp.SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if req.Active == nil {
		writeError(w, http.StatusUnprocessableEntity, "validation failed",
			FieldError{Field: "active", Message: "is required"})
		return
	}

	resp, err := s.accounts.Handler.SetActiveHandler(r.Context(), identity.Role, r.PathValue("id"), *req.Active)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "account activation updated", resp)
}

func (s *Server) handleDeactivateUser(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	resp, err := s.accounts.Handler.SetActiveHandler(r.Context(), identity.Role, r.PathValue("id"), false)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "account deactivated", resp)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	if err := s.accounts.Handler.DeleteUserHandler(r.Context(), identity.Role, r.PathValue("id")); err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "user deleted", nil)
}

func (s *Server) writeAccountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounterrors.ErrInvalidUserInput):
		writeError(w, http.StatusUnprocessableEntity, "validation failed")
	case errors.Is(err, accounterrors.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, accounterrors.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, accounterrors.ErrAccountInactive):
		writeError(w, http.StatusForbidden, "account is deactivated")
	case errors.Is(err, accounterrors.ErrAdminRequired),
		errors.Is(err, accounterrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, accounterrors.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, accounterrors.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, accounterrors.ErrWrongPassword):
		writeError(w, http.StatusBadRequest, "current password is incorrect")
	default:
		s.logger.Error("unhandled account error",
			"event", "account_error_unhandled",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func requireFields(fields map[string]string) []FieldError {
	var fieldErrors []FieldError
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			fieldErrors = append(fieldErrors, FieldError{Field: name, Message: "is required"})
		}
	}
	return fieldErrors
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
