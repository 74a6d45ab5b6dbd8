package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type ReportHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	Trends(w http.ResponseWriter, r *http.Request)
	Department(w http.ResponseWriter, r *http.Request)
	CompanySummary(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	authorizer    middleware.Authorizer
}

func NewReportHandler(reportService report.ReportService, authorizer middleware.Authorizer) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		authorizer:    authorizer,
	}
}

func reportPeriod(errs *validator.ValidationErrors, r *http.Request) report.PeriodQuery {
	return report.PeriodQuery{
		Month: queryInt(errs, r, "month"),
		Year:  queryInt(errs, r, "year"),
	}
}

// subject resolves whose report is requested. user_id is honoured only for
// callers allowed to view every report.
func (h *reportHandlerImpl) subject(r *http.Request, self string) string {
	if id := r.URL.Query().Get("user_id"); id != "" && middleware.Can(r, h.authorizer, user.PermissionReportsView) {
		return id
	}
	return self
}

// Monthly handles GET /reports/monthly
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var errs validator.ValidationErrors
	q := reportPeriod(&errs, r)
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	monthly, err := h.reportService.Monthly(r.Context(), h.subject(r, claims.UserID), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, monthly)
}

// Trends handles GET /reports/trends
func (h *reportHandlerImpl) Trends(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var errs validator.ValidationErrors
	q := report.TrendsQuery{Months: queryInt(&errs, r, "months")}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	points, err := h.reportService.Trends(r.Context(), h.subject(r, claims.UserID), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, points)
}

// Department handles GET /reports/department. department_id defaults to the
// caller's department.
func (h *reportHandlerImpl) Department(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var errs validator.ValidationErrors
	q := reportPeriod(&errs, r)
	departmentID := r.URL.Query().Get("department_id")
	if departmentID == "" && claims.DepartmentID != nil {
		departmentID = *claims.DepartmentID
	}
	if departmentID == "" {
		errs.Add("department_id", "department_id is required")
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	dept, err := h.reportService.Department(r.Context(), departmentID, q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, dept)
}

// CompanySummary handles GET /reports/company-summary
func (h *reportHandlerImpl) CompanySummary(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	day := validator.OptionalDate(&errs, "date", queryString(r, "date"))
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.reportService.CompanySummary(r.Context(), day)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// Export handles GET /reports/export?format=csv|xlsx
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var errs validator.ValidationErrors
	q := r.URL.Query()
	req := report.ExportRequest{
		PeriodQuery:  reportPeriod(&errs, r),
		Type:         q.Get("type"),
		Format:       q.Get("format"),
		UserID:       h.subject(r, claims.UserID),
		DepartmentID: q.Get("department_id"),
	}
	if req.Type == "" {
		req.Type = string(report.KindMonthly)
	}
	if req.Format == "" {
		req.Format = "csv"
	}
	if req.Type == string(report.KindDepartment) && !middleware.Can(r, h.authorizer, user.PermissionReportsView) {
		response.Forbidden(w, "Insufficient permissions: required '"+string(user.PermissionReportsView)+"'")
		return
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.Export(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.File(w, file.Name, file.ContentType, file.Data)
}
