package overtime

import "context"

type OvertimeService interface {
	Classify(totalHours float64) Classification
	Summary(ctx context.Context, userID string, q PeriodQuery) (Summary, error)
	// CalculatePay applies the overtime multiplier to the linear monthly
	// excess. Double time is not paid at this level.
	CalculatePay(ctx context.Context, userID string, q PayQuery) (Pay, error)

	Request(ctx context.Context, userID string, req CreateRequest) (Request, error)
	List(ctx context.Context, filter RequestFilter) ([]Request, error)
	Respond(ctx context.Context, managerID, id string, req RespondRequest) (Request, error)
}
