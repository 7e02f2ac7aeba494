// Package settings holds the organisation's work policy: company name,
// time zone and the working hours timesheets are measured against.
package settings

import (
	"time"
	_ "time/tzdata" // zoneinfo for minimal images

	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/validator"
)

type Settings struct {
	CompanyName      string  `json:"company_name"`
	TimeZone         string  `json:"time_zone"`
	WorkHoursPerDay  float64 `json:"work_hours_per_day"`
	WorkHoursPerWeek float64 `json:"work_hours_per_week"`
	WorkStartTime    string  `json:"work_start_time"` // HH:MM
}

// Default mirrors the settings page's initial values.
func Default() Settings {
	return Settings{
		CompanyName:      "TimeTrack Pro",
		TimeZone:         "UTC",
		WorkHoursPerDay:  8,
		WorkHoursPerWeek: 40,
		WorkStartTime:    "09:00",
	}
}

func (s Settings) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(s.CompanyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company name is required",
		})
	}

	if _, err := time.LoadLocation(s.TimeZone); err != nil || s.TimeZone == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "time_zone",
			Message: "time zone must be an IANA name such as UTC or Asia/Jakarta",
		})
	}

	if s.WorkHoursPerDay <= 0 || s.WorkHoursPerDay > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_hours_per_day",
			Message: "daily work hours must be between 0 and 24",
		})
	}

	if s.WorkHoursPerWeek <= 0 || s.WorkHoursPerWeek > 168 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_hours_per_week",
			Message: "weekly work hours must be between 0 and 168",
		})
	} else if s.WorkHoursPerDay > s.WorkHoursPerWeek {
		errs = append(errs, validator.ValidationError{
			Field:   "work_hours_per_week",
			Message: "weekly work hours must not be less than daily work hours",
		})
	}

	if _, err := time.Parse("15:04", s.WorkStartTime); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "work_start_time",
			Message: "work start time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Location resolves TimeZone, falling back to UTC.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
