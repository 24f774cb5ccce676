package leave

import (
	"math"
	"time"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Request is an employee's leave application.
type Request struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	StartDate    string `json:"startDate"` // YYYY-MM-DD
	EndDate      string `json:"endDate"`   // YYYY-MM-DD
	Reason       string `json:"reason"`
	Status       Status `json:"status"`
	RequestDate  string `json:"requestDate"` // YYYY-MM-DD
}

// Days returns the inclusive number of calendar days the request spans.
func (r Request) Days() (int, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return 0, ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return 0, ErrInvalidDateRange
	}
	return InclusiveDays(start, end), nil
}

// InclusiveDays counts both endpoints: ceil(|end-start| in days) + 1.
func InclusiveDays(start, end time.Time) int {
	diff := math.Abs(end.Sub(start).Hours() / 24)
	return int(math.Ceil(diff)) + 1
}

// DeductBalance subtracts days from balance, never going below zero.
func DeductBalance(balance, days int) int {
	if days >= balance {
		return 0
	}
	return balance - days
}

// Transition moves a pending request to a terminal status.
// Approved and rejected requests cannot change again.
func (r *Request) Transition(to Status) error {
	if to != StatusApproved && to != StatusRejected {
		return ErrInvalidStatus
	}
	if r.Status != StatusPending {
		return ErrLeaveRequestAlreadyProcessed
	}
	r.Status = to
	return nil
}
