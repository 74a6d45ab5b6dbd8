package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/lateness"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	Classify(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	CalculatePay(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	RespondRequest(w http.ResponseWriter, r *http.Request)

	MyLateArrivals(w http.ResponseWriter, r *http.Request)
	UserLateArrivals(w http.ResponseWriter, r *http.Request)
	LatenessSummary(w http.ResponseWriter, r *http.Request)
	DepartmentLateness(w http.ResponseWriter, r *http.Request)
	ExcuseLateArrival(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
	latenessService lateness.LatenessService
}

// NewOvertimeHandler serves overtime and late-arrival routes, the two
// policies computed from clock times.
func NewOvertimeHandler(overtimeService overtime.OvertimeService, latenessService lateness.LatenessService) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
		latenessService: latenessService,
	}
}

func periodQuery(r *http.Request) (overtime.PeriodQuery, error) {
	var errs validator.ValidationErrors
	q := overtime.PeriodQuery{
		Month: queryInt(&errs, r, "month"),
		Year:  queryInt(&errs, r, "year"),
	}
	return q, errs.Err()
}

// Classify implements OvertimeHandler.
func (h *overtimeHandlerImpl) Classify(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	hours := queryFloat(&errs, r, "total_hours")
	if hours < 0 {
		errs.Add("total_hours", "total_hours must not be negative")
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.overtimeService.Classify(hours))
}

// Summary implements OvertimeHandler.
func (h *overtimeHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	q, err := periodQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.overtimeService.Summary(r.Context(), claims.UserID, q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// CalculatePay implements OvertimeHandler.
func (h *overtimeHandlerImpl) CalculatePay(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var errs validator.ValidationErrors
	q := overtime.PayQuery{
		PeriodQuery: overtime.PeriodQuery{
			Month: queryInt(&errs, r, "month"),
			Year:  queryInt(&errs, r, "year"),
		},
		HourlyRate: queryFloat(&errs, r, "hourly_rate"),
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	pay, err := h.overtimeService.CalculatePay(r.Context(), claims.UserID, q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, pay)
}

// CreateRequest implements OvertimeHandler.
func (h *overtimeHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req overtime.CreateRequest
	if !decodeJSON(w, r, "CreateOvertimeRequest", &req) {
		return
	}

	created, err := h.overtimeService.Request(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Overtime request submitted", created)
}

// ListRequests implements OvertimeHandler.
func (h *overtimeHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := overtime.RequestFilter{
		DepartmentID: queryString(r, "department_id"),
		UserID:       queryString(r, "user_id"),
	}
	if s := queryString(r, "status"); s != nil {
		status := overtime.Status(*s)
		filter.Status = &status
	}
	h.list(w, r, filter)
}

// GetMyRequests implements OvertimeHandler.
func (h *overtimeHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	h.list(w, r, overtime.RequestFilter{UserID: &claims.UserID})
}

func (h *overtimeHandlerImpl) list(w http.ResponseWriter, r *http.Request, filter overtime.RequestFilter) {
	list, err := h.overtimeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// RespondRequest implements OvertimeHandler.
func (h *overtimeHandlerImpl) RespondRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req overtime.RespondRequest
	if !decodeJSON(w, r, "RespondOvertimeRequest", &req) {
		return
	}

	resolved, err := h.overtimeService.Respond(r.Context(), claims.UserID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Overtime request "+string(resolved.Status), resolved)
}

func lateListQuery(r *http.Request) (lateness.ListQuery, error) {
	var errs validator.ValidationErrors
	q := lateness.ListQuery{
		Month: queryInt(&errs, r, "month"),
		Year:  queryInt(&errs, r, "year"),
	}
	return q, errs.Err()
}

// MyLateArrivals implements OvertimeHandler.
func (h *overtimeHandlerImpl) MyLateArrivals(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	h.lateArrivals(w, r, claims.UserID)
}

// UserLateArrivals implements OvertimeHandler.
func (h *overtimeHandlerImpl) UserLateArrivals(w http.ResponseWriter, r *http.Request) {
	h.lateArrivals(w, r, chi.URLParam(r, "userID"))
}

func (h *overtimeHandlerImpl) lateArrivals(w http.ResponseWriter, r *http.Request, userID string) {
	q, err := lateListQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	list, err := h.latenessService.UserLateArrivals(r.Context(), userID, q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// LatenessSummary implements OvertimeHandler.
func (h *overtimeHandlerImpl) LatenessSummary(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	summary, err := h.latenessService.Summary(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// DepartmentLateness implements OvertimeHandler.
func (h *overtimeHandlerImpl) DepartmentLateness(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	q := lateness.DepartmentQuery{
		DepartmentID: r.URL.Query().Get("department_id"),
		Month:        deref(queryInt(&errs, r, "month")),
		Year:         deref(queryInt(&errs, r, "year")),
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.latenessService.DepartmentStats(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// ExcuseLateArrival implements OvertimeHandler.
func (h *overtimeHandlerImpl) ExcuseLateArrival(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req lateness.ExcuseRequest
	if !decodeJSON(w, r, "ExcuseLateArrival", &req) {
		return
	}

	if err := h.latenessService.Excuse(r.Context(), claims.UserID, chi.URLParam(r, "id"), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Late arrival excused", nil)
}
