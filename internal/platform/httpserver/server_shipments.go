package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	accounthttp "shipline/contexts/identity-access/account-service/transport/http"
	shipmentqueries "shipline/contexts/shipment-operations/shipment-service/application/queries"
	shipmenterrors "shipline/contexts/shipment-operations/shipment-service/domain/errors"
	shipmenthttp "shipline/contexts/shipment-operations/shipment-service/transport/http"
)

// maxUploadBytes caps attachment uploads at 10 MiB.
const maxUploadBytes = 10 << 20

func (s *Server) handleCreateShipment(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	var req shipmenthttp.CreateShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if fieldErrors := requireFields(map[string]string{
		"senderName":   req.SenderName,
		"receiverName": req.ReceiverName,
		"origin":       req.Origin,
		"destination":  req.Destination,
	}); len(fieldErrors) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fieldErrors...)
		return
	}

	resp, err := s.shipments.Handler.CreateShipmentHandler(r.Context(), actorFrom(identity), req)
	if err != nil {
		s.writeShipmentError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "shipment created", resp)
}

func (s *Server) handleListShipments(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	query := r.URL.Query()
	listQuery := shipmentqueries.ListShipmentsQuery{
		Status:    query.Get("status"),
		Search:    query.Get("search"),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
		Page:      parseIntParam(query.Get("page"), 1),
		Limit:     parseIntParam(query.Get("limit"), 10),
	}

	resp, err := s.shipments.Handler.ListShipmentsHandler(r.Context(), actorFrom(identity), listQuery)
	if err != nil {
		s.writeShipmentError(w, err)
		return
	}
	writePaginated(w, "shipments listed", resp.Items, newPagination(resp.Page, resp.Limit, resp.Total))
}

func (s *Server) handleShipmentStats(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	ownerOnly := false
	if mineRaw := r.URL.Query().Get("mine"); mineRaw != "" {
		parsed, err := strconv.ParseBool(mineRaw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "validation failed",
				FieldError{Field: "mine", Message: "must be a boolean"})
			return
		}
		ownerOnly = parsed
	}

	resp, err := s.shipments.Handler.StatsHandler(r.Context(), actorFrom(identity), ownerOnly)
	if err != nil {
		s.writeShipmentError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "shipment stats", resp)
}

func (s *Server) handleMyShipmentStats(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	resp, err := s.shipments.Handler.StatsHandler(r.Context(), actorFrom(identity), true)
	if err != nil {
		s.writeShipmentError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "shipment stats", resp)
}

func (s *Server) handleGetShipment(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	resp, err := s.shipments.Handler.GetShipmentHandler(r.Context(), actorFrom(identity), r.PathValue("id"))
	if err != nil {
		s.writeShipmentError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "shipment found", resp)
}

func (s *Server) handleUpdateShipment(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	var req shipmenthttp.UpdateShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if fieldErrors := requireFields(map[string]string{
		"senderName":   req.SenderName,
		"receiverName": req.ReceiverName,
		"origin":       req.Origin,
		"destination":  req.Destination,
	}); len(fieldErrors) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fieldErrors...)
		return
	}

	resp, err := s.shipments.Handler.UpdateShipmentHandler(r.Context(), actorFrom(identity), r.PathValue("id"), req)
	if err != nil {
		s.writeShipmentError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "shipment updated", resp)
}

func (s *Server) handleChangeStatus(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	var req shipmenthttp.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if fieldErrors := requireFields(map[string]string{"status": req.Status}); len(fieldErrors) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation failed", fieldErrors...)
		return
	}

	resp, err := s.shipments.Handler.ChangeStatusHandler(r.Context(), actorFrom(identity), r.PathValue("id"), req)
	if err != nil {
		s.writeShipmentError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "status changed", resp)
}

func (s *Server) handleDeleteShipment(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	if err := s.shipments.Handler.DeleteShipmentHandler(r.Context(), actorFrom(identity), r.PathValue("id")); err != nil {
		s.writeShipmentError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "shipment deleted", nil)
}

func (s *Server) handleAddAttachment(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation failed",
			FieldError{Field: "file", Message: "multipart form with a file field is required"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation failed",
			FieldError{Field: "file", Message: "is required"})
		return
	}
	defer file.Close()

	resp, err := s.shipments.Handler.AddAttachmentHandler(
		r.Context(),
		actorFrom(identity),
		r.PathValue("id"),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		s.writeShipmentError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "attachment added", resp)
}

func (s *Server) handleRemoveAttachment(w http.ResponseWriter, r *http.Request, identity accounthttp.IdentityDTO) {
	err := s.shipments.Handler.RemoveAttachmentHandler(
		r.Context(),
		actorFrom(identity),
		r.PathValue("id"),
		r.PathValue("attachmentId"),
	)
	if err != nil {
		s.writeShipmentError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "attachment removed", nil)
}

func (s *Server) handleTrackShipment(w http.ResponseWriter, r *http.Request) {
	resp, err := s.shipments.Handler.TrackShipmentHandler(r.Context(), r.PathValue("trackingNumber"))
	if err != nil {
		s.writeShipmentError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "shipment tracked", resp)
}

func (s *Server) writeShipmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shipmenterrors.ErrInvalidShipmentInput):
		writeError(w, http.StatusUnprocessableEntity, "validation failed")
	case errors.Is(err, shipmenterrors.ErrInvalidStatusTransition):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shipmenterrors.ErrShipmentNotDeletable):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shipmenterrors.ErrShipmentNotFound):
		writeError(w, http.StatusNotFound, "shipment not found")
	case errors.Is(err, shipmenterrors.ErrAttachmentNotFound):
		writeError(w, http.StatusNotFound, "attachment not found")
	case errors.Is(err, shipmenterrors.ErrTrackingNumberTaken):
		writeError(w, http.StatusConflict, "tracking number conflict")
	case errors.Is(err, shipmenterrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	default:
		s.logger.Error("unhandled shipment error",
			"event", "shipment_error_unhandled",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
