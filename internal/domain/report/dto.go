package report

import (
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/pkg/validator"
)

// ========================================
// REPORT REQUEST
// ========================================

type ReportRequest struct {
	Type  Type   `json:"type"`
	Date  string `json:"date"`  // YYYY-MM-DD, daily and absence
	Month string `json:"month"` // YYYY-MM, the other reports
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Type.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of daily, monthly, overtime, late, absence",
		})
	}

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Month != "" {
		if _, err := time.Parse("2006-01", r.Month); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Resolve fills the missing date/month from now and returns the month whose
// records the report reads (the date's month for day-scoped reports).
func (r *ReportRequest) Resolve(now time.Time) string {
	if r.Date == "" {
		r.Date = now.Format("2006-01-02")
	}
	if r.Month == "" {
		r.Month = now.Format("2006-01")
	}
	if r.Type.DayScoped() {
		return r.Date[:7]
	}
	return r.Month
}
