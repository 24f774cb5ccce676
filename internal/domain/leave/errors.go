package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("Leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("Leave request already processed")
	ErrInvalidDateRange             = errors.New("Invalid leave date range")
	ErrInvalidStatus                = errors.New("Invalid leave status")
	ErrEmployeeNotFound             = errors.New("Employee not found")
)
