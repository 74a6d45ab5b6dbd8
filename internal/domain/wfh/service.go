package wfh

import "context"

type WFHService interface {
	Request(ctx context.Context, userID string, req CreateRequest) (Request, error)
	List(ctx context.Context, filter Filter) ([]Request, error)
	Respond(ctx context.Context, managerID, id string, req RespondRequest) (Request, error)
	// Log starts or ends today's session. An approved request for today is
	// required.
	Log(ctx context.Context, userID string, req LogRequest) (LogResult, error)
	// Summary defaults zero month and year to the current month.
	Summary(ctx context.Context, userID string, month, year int) (Summary, error)
	Cancel(ctx context.Context, userID, id string) error
}
