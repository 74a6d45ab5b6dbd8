package attendance

import (
	"context"
)

type AttendanceService interface {
	ClockIn(ctx context.Context, userID string, req ClockRequest) (ClockInResponse, error)
	ClockOut(ctx context.Context, userID string, req ClockRequest) (ClockOutResponse, error)

	// ListRecords is the manager view over every user.
	ListRecords(ctx context.Context, filter RecordFilter) ([]Record, error)
	MyRecords(ctx context.Context, userID string, filter RecordFilter) ([]Record, error)

	RequestCorrection(ctx context.Context, userID string, req CreateCorrectionRequest) (CorrectionRequest, error)
	RespondToCorrection(ctx context.Context, managerID, id string, req RespondCorrectionRequest) (CorrectionRequest, error)
	PendingCorrections(ctx context.Context) ([]CorrectionRequest, error)
	MyCorrections(ctx context.Context, userID string) ([]CorrectionRequest, error)
}
