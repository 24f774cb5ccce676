package employee

import "context"

type EmployeeService interface {
	List(ctx context.Context, search string) (ListEmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Delete is irreversible and refuses to run without confirmation
	Delete(ctx context.Context, id string, confirmed bool) error

	// UpdateMyNotificationSettings is the self-service preference update
	UpdateMyNotificationSettings(ctx context.Context, req UpdateNotificationSettingsRequest) (EmployeeResponse, error)
}
