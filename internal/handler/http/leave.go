package http

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	CheckAvailability(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	RespondRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)

	Initialize(w http.ResponseWriter, r *http.Request)
	CarryForward(w http.ResponseWriter, r *http.Request)
	ResetAnnual(w http.ResponseWriter, r *http.Request)
	Deduct(w http.ResponseWriter, r *http.Request)
	Restore(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

func yearParam(r *http.Request) (int, error) {
	var errs validator.ValidationErrors
	year := queryInt(&errs, r, "year")
	if year != nil && !validator.IsValidYear(*year) {
		errs.Add("year", "invalid year")
	}
	return deref(year), errs.Err()
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	response.Success(w, l.leaveService.Types(r.Context()))
}

// GetMyBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	l.balance(w, r, claims.UserID)
}

// GetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	l.balance(w, r, chi.URLParam(r, "userID"))
}

func (l *LeaveHandlerImpl) balance(w http.ResponseWriter, r *http.Request, userID string) {
	year, err := yearParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	views, err := l.leaveService.GetBalance(r.Context(), userID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, views)
}

// CheckAvailability implements LeaveHandler.
func (l *LeaveHandlerImpl) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	req := leave.AvailabilityRequest{
		LeaveType: q.Get("leave_type"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	availability, err := l.leaveService.CheckAvailability(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, availability)
}

// History implements LeaveHandler.
func (l *LeaveHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	year, err := yearParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	list, err := l.leaveService.History(r.Context(), claims.UserID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req leave.CreateLeaveRequest
	if !decodeJSON(w, r, "CreateLeaveRequest", &req) {
		return
	}

	created, err := l.leaveService.RequestLeave(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted successfully", created)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := leave.RequestFilter{UserID: queryString(r, "user_id")}
	if s := queryString(r, "status"); s != nil {
		status := leave.RequestStatus(*s)
		filter.Status = &status
	}
	l.listRequests(w, r, filter)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	l.listRequests(w, r, leave.RequestFilter{UserID: &claims.UserID})
}

func (l *LeaveHandlerImpl) listRequests(w http.ResponseWriter, r *http.Request, filter leave.RequestFilter) {
	list, err := l.leaveService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// RespondRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RespondRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req leave.RespondLeaveRequest
	if !decodeJSON(w, r, "RespondLeaveRequest", &req) {
		return
	}

	resolved, err := l.leaveService.RespondToLeave(r.Context(), claims.UserID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request "+string(resolved.Status), resolved)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	if err := l.leaveService.CancelLeave(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request cancelled", nil)
}

// Initialize implements LeaveHandler.
func (l *LeaveHandlerImpl) Initialize(w http.ResponseWriter, r *http.Request) {
	var req leave.InitializeRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, "InitializeLeave", &req) {
		return
	}
	req.UserID = chi.URLParam(r, "userID")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	balances, err := l.leaveService.Initialize(r.Context(), req.UserID, req.ParsedHireDate())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave balances initialized", balances)
}

// CarryForward implements LeaveHandler.
func (l *LeaveHandlerImpl) CarryForward(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req leave.CarryForwardRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, "CarryForward", &req) {
		return
	}
	req.UserID = chi.URLParam(r, "userID")

	result, err := l.leaveService.CarryForward(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave carried forward", result)
}

// ResetAnnual implements LeaveHandler.
func (l *LeaveHandlerImpl) ResetAnnual(w http.ResponseWriter, r *http.Request) {
	count, err := l.leaveService.ResetAnnualBalances(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Annual leave balances reset", map[string]int{"users_reset": count})
}

// Deduct implements LeaveHandler.
func (l *LeaveHandlerImpl) Deduct(w http.ResponseWriter, r *http.Request) {
	l.adjust(w, r, "Leave days deducted", l.leaveService.Deduct)
}

// Restore implements LeaveHandler.
func (l *LeaveHandlerImpl) Restore(w http.ResponseWriter, r *http.Request) {
	l.adjust(w, r, "Leave days restored", l.leaveService.Restore)
}

type adjustFunc func(ctx context.Context, actorID string, req leave.AdjustRequest) error

func (l *LeaveHandlerImpl) adjust(w http.ResponseWriter, r *http.Request, message string, fn adjustFunc) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req leave.AdjustRequest
	if !decodeJSON(w, r, "AdjustLeave", &req) {
		return
	}

	if err := fn(r.Context(), claims.UserID, req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, message, nil)
}
