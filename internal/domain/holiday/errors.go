package holiday

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

var ErrHolidayNotFound = apperror.New(apperror.KindNotFound, "holiday not found")
