package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	MyTimesheets(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Recall(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	AutoCreate(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
	authorizer       middleware.Authorizer
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService, authorizer middleware.Authorizer) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService, authorizer: authorizer}
}

// Create implements TimesheetHandler.
func (h *timesheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req timesheet.CreateRequest
	if !decodeJSON(w, r, "CreateTimesheet", &req) {
		return
	}

	details, err := h.timesheetService.Create(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Timesheet created", details)
}

// MyTimesheets implements TimesheetHandler.
func (h *timesheetHandlerImpl) MyTimesheets(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var filter timesheet.Filter
	if s := queryString(r, "status"); s != nil {
		status := timesheet.Status(*s)
		filter.Status = &status
	}

	list, err := h.timesheetService.MyTimesheets(r.Context(), claims.UserID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// Pending implements TimesheetHandler.
func (h *timesheetHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.timesheetService.Pending(r.Context(), queryString(r, "department_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// Get implements TimesheetHandler.
func (h *timesheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	viewer := timesheet.Viewer{
		UserID:     claims.UserID,
		CanViewAll: middleware.Can(r, h.authorizer, user.PermissionTimesheetApprove),
	}

	details, err := h.timesheetService.Details(r.Context(), viewer, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, details)
}

// Submit implements TimesheetHandler.
func (h *timesheetHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	ts, err := h.timesheetService.Submit(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Timesheet submitted for approval", ts)
}

// Recall implements TimesheetHandler.
func (h *timesheetHandlerImpl) Recall(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	ts, err := h.timesheetService.Recall(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Timesheet recalled to draft", ts)
}

// Review implements TimesheetHandler.
func (h *timesheetHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req timesheet.ReviewRequest
	if !decodeJSON(w, r, "ReviewTimesheet", &req) {
		return
	}

	ts, err := h.timesheetService.Review(r.Context(), claims.UserID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Timesheet "+string(ts.Status), ts)
}

// AutoCreate implements TimesheetHandler.
func (h *timesheetHandlerImpl) AutoCreate(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.AutoCreateWeekly(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Weekly timesheets created", result)
}
