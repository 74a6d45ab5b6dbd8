package lateness

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

var (
	ErrLateArrivalNotFound = apperror.New(apperror.KindNotFound, "late arrival not found")
)
