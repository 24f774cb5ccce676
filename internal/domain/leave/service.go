package leave

import "context"

type LeaveService interface {
	// Create submits a pending request for the caller and alerts admins
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)

	// List returns every request for admins, the caller's own otherwise
	List(ctx context.Context) (ListLeaveResponse, error)

	// Approve deducts the span from the requester's balance
	Approve(ctx context.Context, id string) (DecisionResponse, error)

	// Reject leaves the balance untouched
	Reject(ctx context.Context, id string) (DecisionResponse, error)
}
