package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	MyShift(w http.ResponseWriter, r *http.Request)
	MyAssignments(w http.ResponseWriter, r *http.Request)
	Schedule(w http.ResponseWriter, r *http.Request)

	RequestSwap(w http.ResponseWriter, r *http.Request)
	RespondSwap(w http.ResponseWriter, r *http.Request)
	ListSwaps(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
	authorizer   middleware.Authorizer
}

func NewShiftHandler(shiftService shift.ShiftService, authorizer middleware.Authorizer) ShiftHandler {
	return &shiftHandlerImpl{shiftService: shiftService, authorizer: authorizer}
}

// List implements ShiftHandler.
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftService.ListShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, shifts)
}

// Create implements ShiftHandler.
func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if !decodeJSON(w, r, "CreateShift", &req) {
		return
	}

	created, err := h.shiftService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Shift created", created)
}

// Assign implements ShiftHandler.
func (h *shiftHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req shift.AssignShiftRequest
	if !decodeJSON(w, r, "AssignShift", &req) {
		return
	}

	assignment, err := h.shiftService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Shift assigned", assignment)
}

// MyShift implements ShiftHandler.
func (h *shiftHandlerImpl) MyShift(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	current, err := h.shiftService.CurrentShift(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if current == nil {
		response.SuccessWithMessage(w, "No shift assigned for today", nil)
		return
	}
	response.Success(w, current)
}

// MyAssignments implements ShiftHandler.
func (h *shiftHandlerImpl) MyAssignments(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.shiftService.MyAssignments(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// Schedule implements ShiftHandler. department_id defaults to the caller's
// department.
func (h *shiftHandlerImpl) Schedule(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	q := shift.ScheduleQuery{
		DepartmentID: r.URL.Query().Get("department_id"),
		WeekStart:    r.URL.Query().Get("week_start"),
	}
	if q.DepartmentID == "" && claims.DepartmentID != nil {
		q.DepartmentID = *claims.DepartmentID
	}
	start, err := q.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	week, err := h.shiftService.DepartmentSchedule(r.Context(), q.DepartmentID, start)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, week)
}

// RequestSwap implements ShiftHandler.
func (h *shiftHandlerImpl) RequestSwap(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req shift.CreateSwapRequest
	if !decodeJSON(w, r, "RequestSwap", &req) {
		return
	}

	created, err := h.shiftService.RequestSwap(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Shift swap requested", created)
}

// RespondSwap implements ShiftHandler.
func (h *shiftHandlerImpl) RespondSwap(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req shift.RespondSwapRequest
	if !decodeJSON(w, r, "RespondSwap", &req) {
		return
	}

	responder := shift.Responder{
		UserID:     claims.UserID,
		CanApprove: middleware.Can(r, h.authorizer, user.PermissionShiftApprove),
	}
	swap, err := h.shiftService.RespondToSwap(r.Context(), responder, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift swap "+string(swap.Status), swap)
}

// ListSwaps implements ShiftHandler. Approvers see every request, others
// only their own.
func (h *shiftHandlerImpl) ListSwaps(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var filter shift.SwapFilter
	if s := queryString(r, "status"); s != nil {
		status := shift.SwapStatus(*s)
		filter.Status = &status
	}
	if !middleware.Can(r, h.authorizer, user.PermissionShiftApprove) {
		filter.UserID = &claims.UserID
	} else {
		filter.UserID = queryString(r, "user_id")
	}

	list, err := h.shiftService.ListSwaps(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}
