package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	accountservice "shipline/contexts/identity-access/account-service"
	accountentities "shipline/contexts/identity-access/account-service/domain/entities"
	shipmentservice "shipline/contexts/shipment-operations/shipment-service"
)

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     []FieldError    `json:"errors"`
	Pagination *Pagination     `json:"pagination"`
}

func newTestServer(t *testing.T) (*Server, accountservice.Module) {
	t.Helper()
	accounts := accountservice.NewInMemoryModule(nil, nil)
	shipments := shipmentservice.NewInMemoryModule(nil, nil)
	return New(accounts, shipments, nil, ":0"), accounts
}

func doJSON(t *testing.T, server *Server, method string, path string, token string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	var resp envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope from %s %s: %v (body %q)", method, path, err, rec.Body.String())
	}
	return rec.Code, resp
}

func registerAccount(t *testing.T, server *Server, email string) (token string, userID string) {
	t.Helper()
	status, resp := doJSON(t, server, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Test Person",
		"email":    email,
		"password": "swordfish123",
	})
	if status != http.StatusCreated {
		t.Fatalf("register returned %d: %s", status, resp.Message)
	}
	var data struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode register data: %v", err)
	}
	return data.Token, data.User.ID
}

func elevateToAdmin(t *testing.T, accounts accountservice.Module, userID string) {
	t.Helper()
	ctx := context.Background()
	user, err := accounts.Store.GetUser(ctx, userID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	user.Role = accountentities.RoleAdmin
	if err := accounts.Store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("elevate user: %v", err)
	}
}

func createShipmentHTTP(t *testing.T, server *Server, token string) map[string]any {
	t.Helper()
	status, resp := doJSON(t, server, http.MethodPost, "/shipments", token, map[string]any{
		"senderName":   "Acme Logistics",
		"receiverName": "Jane Doe",
		"origin":       "Rotterdam",
		"destination":  "Hamburg",
	})
	if status != http.StatusCreated {
		t.Fatalf("create shipment returned %d: %s", status, resp.Message)
	}
	var shipment map[string]any
	if err := json.Unmarshal(resp.Data, &shipment); err != nil {
		t.Fatalf("decode shipment: %v", err)
	}
	return shipment
}

// newMultipartFile writes a single-file multipart body into buf and returns
// the content type, boundary included.
func newMultipartFile(t *testing.T, buf *bytes.Buffer, field string, fileName string, content []byte) string {
	t.Helper()
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile(field, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return writer.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	server, _ := newTestServer(t)
	status, resp := doJSON(t, server, http.MethodGet, "/healthz", "", nil)
	if status != http.StatusOK || !resp.Success {
		t.Fatalf("healthz returned %d success=%v", status, resp.Success)
	}
}

func TestRegisterValidationEnvelope(t *testing.T) {
	server, _ := newTestServer(t)
	status, resp := doJSON(t, server, http.MethodPost, "/auth/register", "", map[string]string{})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
	if resp.Success {
		t.Fatal("validation failure must set success=false")
	}
	if len(resp.Errors) != 3 {
		t.Fatalf("expected 3 field errors, got %d", len(resp.Errors))
	}
	for _, fieldError := range resp.Errors {
		if fieldError.Field == "" || fieldError.Message == "" {
			t.Fatalf("incomplete field error: %+v", fieldError)
		}
	}
}

func TestRegisterDuplicateConflict(t *testing.T) {
	server, _ := newTestServer(t)
	registerAccount(t, server, "ada@example.com")

	status, resp := doJSON(t, server, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Impostor",
		"email":    "Ada@Example.com",
		"password": "hunter2hunter2",
	})
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d (%s)", status, resp.Message)
	}
}

func TestLoginErrors(t *testing.T) {
	server, accounts := newTestServer(t)
	_, userID := registerAccount(t, server, "ada@example.com")

	status, _ := doJSON(t, server, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", status)
	}

	ctx := context.Background()
	user, err := accounts.Store.GetUser(ctx, userID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	user.Active = false
	if err := accounts.Store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	status, resp := doJSON(t, server, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "swordfish123",
	})
	if status != http.StatusForbidden {
		t.Fatalf("deactivated login: expected 403, got %d (%s)", status, resp.Message)
	}
}

func TestAuthRequired(t *testing.T) {
	server, _ := newTestServer(t)

	status, _ := doJSON(t, server, http.MethodGet, "/shipments", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", status)
	}
	status, _ = doJSON(t, server, http.MethodGet, "/shipments", "not-a-real-token", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", status)
	}
}

func TestShipmentFlow(t *testing.T) {
	server, _ := newTestServer(t)
	token, _ := registerAccount(t, server, "ada@example.com")
	shipment := createShipmentHTTP(t, server, token)
	shipmentID := shipment["id"].(string)

	status, resp := doJSON(t, server, http.MethodPatch, "/shipments/"+shipmentID+"/status", token, map[string]string{
		"status": "delivered",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("pending to delivered: expected 400, got %d (%s)", status, resp.Message)
	}

	status, _ = doJSON(t, server, http.MethodPatch, "/shipments/"+shipmentID+"/status", token, map[string]string{
		"status": "in_transit",
		"notes":  "picked up",
	})
	if status != http.StatusOK {
		t.Fatalf("pending to in_transit: expected 200, got %d", status)
	}

	status, resp = doJSON(t, server, http.MethodGet, "/shipments/"+shipmentID, token, nil)
	if status != http.StatusOK {
		t.Fatalf("get shipment: expected 200, got %d", status)
	}
	var details struct {
		History []struct {
			Status string `json:"status"`
			Notes  string `json:"notes"`
		} `json:"history"`
	}
	if err := json.Unmarshal(resp.Data, &details); err != nil {
		t.Fatalf("decode details: %v", err)
	}
	if len(details.History) != 2 || details.History[1].Notes != "picked up" {
		t.Fatalf("unexpected history: %+v", details.History)
	}

	status, _ = doJSON(t, server, http.MethodDelete, "/shipments/"+shipmentID, token, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("deleting in_transit shipment: expected 400, got %d", status)
	}

	status, _ = doJSON(t, server, http.MethodGet, "/shipments/does-not-exist", token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown shipment: expected 404, got %d", status)
	}
}

func TestListShipmentsPaginationEnvelope(t *testing.T) {
	server, _ := newTestServer(t)
	token, _ := registerAccount(t, server, "ada@example.com")
	for i := 0; i < 5; i++ {
		createShipmentHTTP(t, server, token)
	}

	status, resp := doJSON(t, server, http.MethodGet, "/shipments?page=2&limit=2", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", status)
	}
	if resp.Pagination == nil {
		t.Fatal("list responses must carry pagination")
	}
	got := *resp.Pagination
	want := Pagination{
		CurrentPage:  2,
		TotalPages:   3,
		TotalItems:   5,
		ItemsPerPage: 2,
		HasNextPage:  true,
		HasPrevPage:  true,
	}
	if got != want {
		t.Fatalf("pagination = %+v, want %+v", got, want)
	}
}

func TestOwnershipAcrossAccounts(t *testing.T) {
	server, accounts := newTestServer(t)
	ownerToken, _ := registerAccount(t, server, "owner@example.com")
	otherToken, _ := registerAccount(t, server, "other@example.com")
	adminToken, adminID := registerAccount(t, server, "admin@example.com")
	elevateToAdmin(t, accounts, adminID)

	shipment := createShipmentHTTP(t, server, ownerToken)
	shipmentID := shipment["id"].(string)

	status, _ := doJSON(t, server, http.MethodGet, "/shipments/"+shipmentID, otherToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("foreign read: expected 403, got %d", status)
	}
	status, _ = doJSON(t, server, http.MethodGet, "/shipments/"+shipmentID, adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("admin read: expected 200, got %d", status)
	}

	status, _ = doJSON(t, server, http.MethodGet, "/users", otherToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("non-admin user listing: expected 403, got %d", status)
	}
	status, _ = doJSON(t, server, http.MethodGet, "/users", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("admin user listing: expected 200, got %d", status)
	}
}

func TestUserLookupByIDIsAdminOnly(t *testing.T) {
	server, accounts := newTestServer(t)
	userToken, userID := registerAccount(t, server, "user@example.com")
	adminToken, adminID := registerAccount(t, server, "admin@example.com")
	elevateToAdmin(t, accounts, adminID)

	// Even the actor's own record is off limits by id; /auth/me is the
	// self-service path.
	status, _ := doJSON(t, server, http.MethodGet, "/users/"+userID, userToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("non-admin self lookup by id: expected 403, got %d", status)
	}
	status, _ = doJSON(t, server, http.MethodGet, "/users/"+userID, adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("admin lookup: expected 200, got %d", status)
	}

	status, resp := doJSON(t, server, http.MethodGet, "/auth/me", userToken, nil)
	if status != http.StatusOK {
		t.Fatalf("own profile: expected 200, got %d", status)
	}
	var me struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &me); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if me.ID != userID {
		t.Fatalf("profile resolved to %s, want %s", me.ID, userID)
	}
}

func TestMyStatsEndpoint(t *testing.T) {
	server, accounts := newTestServer(t)
	ownerToken, _ := registerAccount(t, server, "owner@example.com")
	adminToken, adminID := registerAccount(t, server, "admin@example.com")
	elevateToAdmin(t, accounts, adminID)

	for i := 0; i < 3; i++ {
		createShipmentHTTP(t, server, ownerToken)
	}

	var stats struct {
		Pending int64 `json:"pending"`
		Total   int64 `json:"total"`
	}

	status, resp := doJSON(t, server, http.MethodGet, "/shipments/my-stats", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("my-stats: expected 200, got %d", status)
	}
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Total != 0 {
		t.Fatalf("my-stats must scope to the caller, got total %d", stats.Total)
	}

	status, resp = doJSON(t, server, http.MethodGet, "/shipments/my-stats", ownerToken, nil)
	if status != http.StatusOK {
		t.Fatalf("my-stats: expected 200, got %d", status)
	}
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Pending != 3 || stats.Total != 3 {
		t.Fatalf("owner my-stats = %+v, want 3 pending of 3", stats)
	}
}

func TestUserActivationRoutes(t *testing.T) {
	server, accounts := newTestServer(t)
	_, userID := registerAccount(t, server, "user@example.com")
	adminToken, adminID := registerAccount(t, server, "admin@example.com")
	elevateToAdmin(t, accounts, adminID)

	var user struct {
		Active bool `json:"active"`
	}

	status, resp := doJSON(t, server, http.MethodPatch, "/users/"+userID+"/deactivate", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("deactivate: expected 200, got %d (%s)", status, resp.Message)
	}
	if err := json.Unmarshal(resp.Data, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Active {
		t.Fatal("deactivate must clear the active flag")
	}

	status, resp = doJSON(t, server, http.MethodPatch, "/users/"+userID+"/activate", adminToken, map[string]bool{
		"active": true,
	})
	if status != http.StatusOK {
		t.Fatalf("activate: expected 200, got %d (%s)", status, resp.Message)
	}
	if err := json.Unmarshal(resp.Data, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if !user.Active {
		t.Fatal("activate must set the active flag")
	}
}

func TestTrackingIsPublicAndHidesOwner(t *testing.T) {
	server, _ := newTestServer(t)
	token, _ := registerAccount(t, server, "owner@example.com")
	shipment := createShipmentHTTP(t, server, token)
	trackingNumber := shipment["trackingNumber"].(string)

	// No Authorization header on purpose.
	status, resp := doJSON(t, server, http.MethodGet, "/track/"+trackingNumber, "", nil)
	if status != http.StatusOK {
		t.Fatalf("public tracking: expected 200, got %d (%s)", status, resp.Message)
	}

	var data map[string]any
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode tracking data: %v", err)
	}
	for _, forbidden := range []string{"createdBy", "updatedBy", "id"} {
		if _, present := data[forbidden]; present {
			t.Fatalf("tracking response leaks %q", forbidden)
		}
	}
	if data["senderName"] != "Acme Logistics" || data["receiverName"] != "Jane Doe" {
		t.Fatalf("tracking response must carry the shipment names, got %v/%v", data["senderName"], data["receiverName"])
	}
	history, ok := data["history"].([]any)
	if !ok || len(history) == 0 {
		t.Fatalf("tracking response must include history, got %v", data["history"])
	}
	for i, raw := range history {
		entry := raw.(map[string]any)
		if _, present := entry["changedBy"]; present {
			t.Fatalf("tracking history entry %d leaks changedBy", i)
		}
	}

	status, _ = doJSON(t, server, http.MethodGet, "/track/SHP-0000000000", "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown tracking number: expected 404, got %d", status)
	}
}

func TestAttachmentUploadRequiresFile(t *testing.T) {
	server, _ := newTestServer(t)
	token, _ := registerAccount(t, server, "owner@example.com")
	shipment := createShipmentHTTP(t, server, token)
	shipmentID := shipment["id"].(string)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/shipments/%s/attachments", shipmentID), bytes.NewReader(nil))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("upload without multipart body: expected 422, got %d", rec.Code)
	}
}

func TestAttachmentUpload(t *testing.T) {
	server, _ := newTestServer(t)
	token, _ := registerAccount(t, server, "owner@example.com")
	shipment := createShipmentHTTP(t, server, token)
	shipmentID := shipment["id"].(string)

	var buf bytes.Buffer
	writer := newMultipartFile(t, &buf, "file", "invoice.pdf", []byte("%PDF-1.4 payload"))

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/shipments/%s/attachments", shipmentID), &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	var attachment struct {
		ID           string `json:"id"`
		OriginalName string `json:"originalName"`
		SizeBytes    int64  `json:"sizeBytes"`
	}
	if err := json.Unmarshal(resp.Data, &attachment); err != nil {
		t.Fatalf("decode attachment: %v", err)
	}
	if attachment.OriginalName != "invoice.pdf" || attachment.SizeBytes == 0 {
		t.Fatalf("unexpected attachment: %+v", attachment)
	}

	status, _ := doJSON(t, server, http.MethodDelete,
		fmt.Sprintf("/shipments/%s/attachments/%s", shipmentID, attachment.ID), token, nil)
	if status != http.StatusOK {
		t.Fatalf("remove attachment: expected 200, got %d", status)
	}
}
