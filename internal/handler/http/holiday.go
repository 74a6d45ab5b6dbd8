package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Upcoming(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Check(w http.ResponseWriter, r *http.Request)
	WorkingDays(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{holidayService: holidayService}
}

type holidayCheck struct {
	Date      string           `json:"date"`
	IsHoliday bool             `json:"is_holiday"`
	Holiday   *holiday.Holiday `json:"holiday,omitempty"`
}

type workingDays struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	WorkingDays int    `json:"working_days"`
}

// List implements HolidayHandler.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	list, err := h.holidayService.ForYear(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// Upcoming implements HolidayHandler.
func (h *holidayHandlerImpl) Upcoming(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	limit := queryInt(&errs, r, "limit")
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	list, err := h.holidayService.Upcoming(r.Context(), deref(limit))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// Summary implements HolidayHandler.
func (h *holidayHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	summary, err := h.holidayService.Summary(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// Check implements HolidayHandler.
func (h *holidayHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	day := validator.RequiredDate(&errs, "date", r.URL.Query().Get("date"))
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	found, err := h.holidayService.IsHoliday(r.Context(), day)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, holidayCheck{
		Date:      day.Format(calendar.DateLayout),
		IsHoliday: found != nil,
		Holiday:   found,
	})
}

// WorkingDays implements HolidayHandler.
func (h *holidayHandlerImpl) WorkingDays(w http.ResponseWriter, r *http.Request) {
	q := holiday.RangeQuery{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if err := q.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	start, end := q.Dates()

	days, err := h.holidayService.WorkingDays(r.Context(), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, workingDays{StartDate: q.StartDate, EndDate: q.EndDate, WorkingDays: days})
}

// Create implements HolidayHandler.
func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var req holiday.CreateRequest
	if !decodeJSON(w, r, "CreateHoliday", &req) {
		return
	}

	created, err := h.holidayService.Add(r.Context(), claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Holiday added", created)
}

// Delete implements HolidayHandler.
func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.holidayService.Delete(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday deleted", nil)
}
