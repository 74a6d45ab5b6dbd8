package report

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

var (
	ErrDepartmentNotFound = apperror.New(apperror.KindNotFound, "department not found")
)
