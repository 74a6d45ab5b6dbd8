package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type WFHHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	RespondRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	Log(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type wfhHandlerImpl struct {
	wfhService wfh.WFHService
}

func NewWFHHandler(wfhService wfh.WFHService) WFHHandler {
	return &wfhHandlerImpl{wfhService: wfhService}
}

func wfhFilter(r *http.Request) wfh.Filter {
	return wfh.Filter{
		Status:   queryString(r, "status"),
		FromDate: queryString(r, "from_date"),
		ToDate:   queryString(r, "to_date"),
	}
}

// CreateRequest implements WFHHandler.
func (h *wfhHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req wfh.CreateRequest
	if !decodeJSON(w, r, "CreateWFHRequest", &req) {
		return
	}

	created, err := h.wfhService.Request(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "WFH request submitted", created)
}

// GetMyRequests implements WFHHandler.
func (h *wfhHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	filter := wfhFilter(r)
	filter.UserID = &claims.UserID
	h.list(w, r, filter)
}

// ListRequests implements WFHHandler.
func (h *wfhHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := wfhFilter(r)
	filter.UserID = queryString(r, "user_id")
	filter.DepartmentID = queryString(r, "department_id")
	h.list(w, r, filter)
}

func (h *wfhHandlerImpl) list(w http.ResponseWriter, r *http.Request, filter wfh.Filter) {
	list, err := h.wfhService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// RespondRequest implements WFHHandler.
func (h *wfhHandlerImpl) RespondRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req wfh.RespondRequest
	if !decodeJSON(w, r, "RespondWFHRequest", &req) {
		return
	}

	resolved, err := h.wfhService.Respond(r.Context(), claims.UserID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "WFH request "+string(resolved.Status), resolved)
}

// CancelRequest implements WFHHandler.
func (h *wfhHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.wfhService.Cancel(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "WFH request cancelled", nil)
}

// Log implements WFHHandler.
func (h *wfhHandlerImpl) Log(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req wfh.LogRequest
	if !decodeJSON(w, r, "WFHLog", &req) {
		return
	}

	result, err := h.wfhService.Log(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "WFH session "+req.Action+" logged", result)
}

// Summary implements WFHHandler.
func (h *wfhHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var errs validator.ValidationErrors
	month := queryInt(&errs, r, "month")
	year := queryInt(&errs, r, "year")
	if month != nil && !validator.IsValidMonth(*month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if year != nil && !validator.IsValidYear(*year) {
		errs.Add("year", "invalid year")
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.wfhService.Summary(r.Context(), claims.UserID, deref(month), deref(year))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}
