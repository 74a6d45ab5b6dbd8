package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)

	RequestCorrection(w http.ResponseWriter, r *http.Request)
	RespondCorrection(w http.ResponseWriter, r *http.Request)
	PendingCorrections(w http.ResponseWriter, r *http.Request)
	MyCorrections(w http.ResponseWriter, r *http.Request)

	ListLocations(w http.ResponseWriter, r *http.Request)
	AddLocation(w http.ResponseWriter, r *http.Request)
	RemoveLocation(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	locationService   location.LocationService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, locationService location.LocationService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		locationService:   locationService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req attendance.ClockRequest
	if !decodeJSON(w, r, "ClockIn", &req) {
		return
	}

	resp, err := h.attendanceService.ClockIn(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in successfully", resp)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req attendance.ClockRequest
	if !decodeJSON(w, r, "ClockOut", &req) {
		return
	}

	resp, err := h.attendanceService.ClockOut(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", resp)
}

func recordFilter(r *http.Request) attendance.RecordFilter {
	return attendance.RecordFilter{
		UserID: queryString(r, "user_id"),
		From:   queryString(r, "from"),
		To:     queryString(r, "to"),
	}
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.ListRecords(r.Context(), recordFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	records, err := h.attendanceService.MyRecords(r.Context(), claims.UserID, recordFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// RequestCorrection implements AttendanceHandler.
func (h *attendanceHandlerImpl) RequestCorrection(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req attendance.CreateCorrectionRequest
	if !decodeJSON(w, r, "RequestCorrection", &req) {
		return
	}

	created, err := h.attendanceService.RequestCorrection(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Correction request submitted", created)
}

// RespondCorrection implements AttendanceHandler.
func (h *attendanceHandlerImpl) RespondCorrection(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req attendance.RespondCorrectionRequest
	if !decodeJSON(w, r, "RespondCorrection", &req) {
		return
	}

	resolved, err := h.attendanceService.RespondToCorrection(r.Context(), claims.UserID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Correction request "+string(resolved.Status), resolved)
}

// PendingCorrections implements AttendanceHandler.
func (h *attendanceHandlerImpl) PendingCorrections(w http.ResponseWriter, r *http.Request) {
	list, err := h.attendanceService.PendingCorrections(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// MyCorrections implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyCorrections(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.attendanceService.MyCorrections(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// ListLocations implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListLocations(w http.ResponseWriter, r *http.Request) {
	list, err := h.locationService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// AddLocation implements AttendanceHandler.
func (h *attendanceHandlerImpl) AddLocation(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req location.AddLocationRequest
	if !decodeJSON(w, r, "AddLocation", &req) {
		return
	}

	loc, err := h.locationService.Add(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Location added", loc)
}

// RemoveLocation implements AttendanceHandler.
func (h *attendanceHandlerImpl) RemoveLocation(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.locationService.Remove(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Location removed", nil)
}
